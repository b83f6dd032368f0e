package coupon

import (
	"testing"
	"time"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func activeCoupon(c Coupon) Coupon {
	if c.ExpiresAt.IsZero() {
		c.ExpiresAt = time.Now().Add(24 * time.Hour)
	}
	c.IsActive = true
	return c
}

func TestValidate_PercentageCappedByMaxDiscount(t *testing.T) {
	repo := NewInMemoryRepository([]Coupon{activeCoupon(Coupon{
		Code: "HALF", DiscountType: TypePercentage, DiscountValue: 50, MaxDiscount: ptrFloat(100),
	})})
	s := NewService(repo)

	discount, err := s.Validate("HALF", 1000, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discount != 100 {
		t.Fatalf("expected discount capped at 100, got %v", discount)
	}
}

func TestValidate_FixedClampedToSubtotal(t *testing.T) {
	repo := NewInMemoryRepository([]Coupon{activeCoupon(Coupon{
		Code: "BIG", DiscountType: TypeFixed, DiscountValue: 2000,
	})})
	s := NewService(repo)

	discount, err := s.Validate("BIG", 500, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discount != 500 {
		t.Fatalf("expected discount clamped to subtotal 500, got %v", discount)
	}
}

func TestValidate_RuleOrder(t *testing.T) {
	now := time.Now()
	repo := NewInMemoryRepository([]Coupon{
		{Code: "EXPIRED", DiscountType: TypeFixed, DiscountValue: 10, IsActive: true, ExpiresAt: now.Add(-time.Hour)},
		{Code: "INACTIVE", DiscountType: TypeFixed, DiscountValue: 10, IsActive: false, ExpiresAt: now.Add(time.Hour)},
		activeCoupon(Coupon{Code: "SPENT", DiscountType: TypeFixed, DiscountValue: 10, UsageLimit: ptrInt(5), UsedCount: 5}),
		activeCoupon(Coupon{Code: "MIN500", DiscountType: TypeFixed, DiscountValue: 10, MinOrderAmount: 500}),
	})
	s := NewService(repo)

	cases := []struct {
		code     string
		subtotal float64
		reason   string
	}{
		{"MISSING", 1000, "invalid or expired coupon"},
		{"EXPIRED", 1000, "invalid or expired coupon"},
		{"INACTIVE", 1000, "invalid or expired coupon"},
		{"SPENT", 1000, "coupon usage limit reached"},
		{"MIN500", 100, "minimum order amount required"},
	}
	for _, tc := range cases {
		_, err := s.Validate(tc.code, tc.subtotal, now)
		if err == nil {
			t.Fatalf("%s: expected rejection", tc.code)
		}
		if apperr.ReasonOf(err) != tc.reason {
			t.Fatalf("%s: expected reason %q, got %q", tc.code, tc.reason, apperr.ReasonOf(err))
		}
	}
}

func TestValidate_DoesNotIncrementUsage(t *testing.T) {
	repo := NewInMemoryRepository([]Coupon{activeCoupon(Coupon{
		Code: "KEEP", DiscountType: TypeFixed, DiscountValue: 50, UsageLimit: ptrInt(1),
	})})
	s := NewService(repo)

	for i := 0; i < 3; i++ {
		if _, err := s.Validate("KEEP", 1000, time.Now()); err != nil {
			t.Fatalf("validation %d failed: %v", i, err)
		}
	}
	c, _ := repo.GetByCode("KEEP")
	if c.UsedCount != 0 {
		t.Fatalf("validation must not consume usage, used=%d", c.UsedCount)
	}
}

func TestRedeem_ConsumesExactlyOnePerCall(t *testing.T) {
	repo := NewInMemoryRepository([]Coupon{activeCoupon(Coupon{
		Code: "ONCE", DiscountType: TypeFixed, DiscountValue: 50, UsageLimit: ptrInt(1),
	})})
	s := NewService(repo)

	if err := s.Redeem("ONCE"); err != nil {
		t.Fatalf("first redeem failed: %v", err)
	}
	if err := s.Redeem("ONCE"); err != ErrLimitExhausted {
		t.Fatalf("expected limit exhausted on second redeem, got %v", err)
	}
	c, _ := repo.GetByCode("ONCE")
	if c.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", c.UsedCount)
	}
}

func TestValidate_CaseInsensitiveCode(t *testing.T) {
	repo := NewInMemoryRepository([]Coupon{activeCoupon(Coupon{
		Code: "FEST10", DiscountType: TypePercentage, DiscountValue: 10,
	})})
	s := NewService(repo)

	discount, err := s.Validate("fest10", 1000, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discount != 100 {
		t.Fatalf("expected 100, got %v", discount)
	}
}
