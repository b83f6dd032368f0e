package coupon

import (
	"strings"
	"time"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/pricing"
)

var (
	errInvalidOrExpired = apperr.New(apperr.Validation, "invalid or expired coupon")
	errLimitReached     = apperr.New(apperr.Validation, "coupon usage limit reached")
	errMinOrderAmount   = apperr.New(apperr.Validation, "minimum order amount required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Validate checks the code against the rules, in order, first failure wins,
// and returns the discount for the given subtotal. It never touches
// used_count; pre-checkout validation must have no side effects.
func (s *Service) Validate(code string, subtotal float64, now time.Time) (float64, error) {
	c, err := s.repo.GetByCode(normalizeCode(code))
	if err != nil {
		return 0, errInvalidOrExpired
	}
	if !c.IsActive || !c.ExpiresAt.After(now) {
		return 0, errInvalidOrExpired
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return 0, errLimitReached
	}
	if c.MinOrderAmount > 0 && subtotal < c.MinOrderAmount {
		return 0, errMinOrderAmount
	}

	var discount float64
	if c.DiscountType == TypePercentage {
		discount = subtotal * c.DiscountValue / 100
		if c.MaxDiscount != nil && discount > *c.MaxDiscount {
			discount = *c.MaxDiscount
		}
	} else {
		discount = c.DiscountValue
	}

	// a discount can never exceed the subtotal it applies to
	if discount > subtotal {
		discount = subtotal
	}
	return pricing.Round2(discount), nil
}

// Redeem consumes one usage slot. Order creation calls this exactly once per
// applied coupon, after Validate has passed.
func (s *Service) Redeem(code string) error {
	return s.repo.IncrementUsage(normalizeCode(code))
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *Service) List() ([]Coupon, error) {
	return s.repo.List()
}

func (s *Service) Create(c Coupon) (Coupon, error) {
	c.Code = normalizeCode(c.Code)
	if c.Code == "" {
		return Coupon{}, apperr.New(apperr.Validation, "coupon code is required")
	}
	if c.DiscountType != TypePercentage && c.DiscountType != TypeFixed {
		return Coupon{}, apperr.New(apperr.Validation, "discount type must be percentage or fixed")
	}
	if c.DiscountValue < 0 {
		return Coupon{}, apperr.New(apperr.Validation, "discount value must not be negative")
	}
	if c.ExpiresAt.IsZero() {
		return Coupon{}, apperr.New(apperr.Validation, "expiry date is required")
	}
	c.UsedCount = 0
	c.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
