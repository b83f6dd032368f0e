package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/order"
	"github.com/novarajewels/jewellery-backend/internal/user"
)

const testSecret = "test-key-secret"

type fakeProcessor struct {
	payment  Payment
	fetchErr error
	fetches  int
	creates  int
	mu       sync.Mutex
}

func (f *fakeProcessor) CreateOrder(int64, string, string) (string, error) {
	f.mu.Lock()
	f.creates++
	f.mu.Unlock()
	return "order_rzp_1", nil
}

func (f *fakeProcessor) FetchPayment(string) (Payment, error) {
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()
	return f.payment, f.fetchErr
}

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func pendingOrder(t *testing.T, total float64) (*Service, *order.InMemoryRepository, order.Order, *fakeProcessor) {
	t.Helper()
	repo := order.NewInMemoryRepository(nil)
	seed, err := repo.Create(order.Order{
		UserID: 7, TotalAmount: total,
		PaymentStatus: order.PaymentPending, OrderStatus: order.StatusPending,
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	orders := order.NewService(repo, nil, nil, nil, zap.NewNop().Sugar())
	proc := &fakeProcessor{payment: Payment{Status: "captured", AmountPaise: Paise(total), Method: "upi"}}
	return NewService(orders, proc, nil, testSecret, zap.NewNop().Sugar()), repo, seed, proc
}

func buyer() user.Actor { return user.Actor{ID: 7} }

func TestCreateGatewayOrder_OwnerOnly(t *testing.T) {
	s, _, seed, proc := pendingOrder(t, 970.00)

	// a stranger must learn nothing about the order, not even its total
	_, err := s.CreateGatewayOrder(user.Actor{ID: 99}, seed.ID)
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected forbidden for another user's order, got %v", err)
	}
	if proc.creates != 0 {
		t.Fatal("no gateway order may be opened for another user's order")
	}

	gw, err := s.CreateGatewayOrder(buyer(), seed.ID)
	if err != nil {
		t.Fatalf("owner checkout failed: %v", err)
	}
	if gw.AmountPaise != 97000 || gw.GatewayOrderID != "order_rzp_1" {
		t.Fatalf("unexpected gateway order: %+v", gw)
	}
}

func TestCreateGatewayOrder_AdminMayActForCustomer(t *testing.T) {
	s, _, seed, _ := pendingOrder(t, 500)

	if _, err := s.CreateGatewayOrder(user.Actor{ID: 1, IsAdmin: true}, seed.ID); err != nil {
		t.Fatalf("admin checkout failed: %v", err)
	}
}

func TestCreateGatewayOrder_PendingOnly(t *testing.T) {
	s, repo, seed, _ := pendingOrder(t, 500)
	if ok, err := repo.TransitionPayment(seed.ID, order.PaymentCompleted, order.StatusConfirmed, order.PaymentInfo{}); err != nil || !ok {
		t.Fatalf("seed transition: ok=%v err=%v", ok, err)
	}

	_, err := s.CreateGatewayOrder(buyer(), seed.ID)
	if apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("expected conflict for a paid order, got %v", err)
	}
}

func TestVerify_SucceedsOnceThenConflicts(t *testing.T) {
	s, repo, seed, _ := pendingOrder(t, 1620.00)
	req := VerifyRequest{
		OrderID:          seed.ID,
		GatewayOrderID:   "order_rzp_1",
		GatewayPaymentID: "pay_abc",
		GatewaySignature: sign("order_rzp_1", "pay_abc"),
	}

	verified, err := s.Verify(buyer(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verified.PaymentStatus != order.PaymentCompleted || verified.OrderStatus != order.StatusConfirmed {
		t.Fatalf("expected completed/confirmed, got %s/%s", verified.PaymentStatus, verified.OrderStatus)
	}
	if verified.PaymentInfo.GatewayPaymentID != "pay_abc" {
		t.Fatalf("gateway correlation not recorded: %+v", verified.PaymentInfo)
	}

	if _, err := s.Verify(buyer(), req); apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("expected conflict on replay, got %v", err)
	}

	stored, _ := repo.GetByID(seed.ID)
	if stored.PaymentInfo.PaidAt == nil {
		t.Fatal("expected paid timestamp")
	}
}

func TestVerify_RejectsBadSignatureWithoutGatewayCall(t *testing.T) {
	s, repo, seed, proc := pendingOrder(t, 1620.00)

	_, err := s.Verify(buyer(), VerifyRequest{
		OrderID:          seed.ID,
		GatewayOrderID:   "order_rzp_1",
		GatewayPaymentID: "pay_abc",
		GatewaySignature: "deadbeef",
	})
	if apperr.KindOf(err) != apperr.Integrity || apperr.ReasonOf(err) != "payment signature invalid" {
		t.Fatalf("expected signature rejection, got %v", err)
	}
	if proc.fetches != 0 {
		t.Fatal("forged signature must not reach the gateway")
	}
	stored, _ := repo.GetByID(seed.ID)
	if stored.PaymentStatus != order.PaymentPending {
		t.Fatalf("order must stay pending, got %s", stored.PaymentStatus)
	}
}

func TestVerify_AmountMismatchLeavesOrderPending(t *testing.T) {
	s, repo, seed, proc := pendingOrder(t, 1620.00)
	proc.payment.AmountPaise = 100 // gateway saw a different charge

	_, err := s.Verify(buyer(), VerifyRequest{
		OrderID:          seed.ID,
		GatewayOrderID:   "order_rzp_1",
		GatewayPaymentID: "pay_abc",
		GatewaySignature: sign("order_rzp_1", "pay_abc"),
	})
	if apperr.ReasonOf(err) != "payment amount mismatch" {
		t.Fatalf("expected amount mismatch, got %v", err)
	}
	stored, _ := repo.GetByID(seed.ID)
	if stored.PaymentStatus != order.PaymentPending {
		t.Fatal("mismatched payment must not complete the order")
	}
}

func TestVerify_UncapturedPaymentRejected(t *testing.T) {
	s, _, seed, proc := pendingOrder(t, 500)
	proc.payment.Status = "failed"

	_, err := s.Verify(buyer(), VerifyRequest{
		OrderID:          seed.ID,
		GatewayOrderID:   "order_rzp_1",
		GatewayPaymentID: "pay_abc",
		GatewaySignature: sign("order_rzp_1", "pay_abc"),
	})
	if apperr.ReasonOf(err) != "payment not completed" {
		t.Fatalf("expected uncaptured rejection, got %v", err)
	}
}

func TestVerify_GatewayOutageIsExternal(t *testing.T) {
	s, repo, seed, proc := pendingOrder(t, 500)
	proc.fetchErr = apperr.New(apperr.External, "payment verification unavailable")

	_, err := s.Verify(buyer(), VerifyRequest{
		OrderID:          seed.ID,
		GatewayOrderID:   "order_rzp_1",
		GatewayPaymentID: "pay_abc",
		GatewaySignature: sign("order_rzp_1", "pay_abc"),
	})
	if apperr.KindOf(err) != apperr.External {
		t.Fatalf("expected external error, got %v", err)
	}
	stored, _ := repo.GetByID(seed.ID)
	if stored.PaymentStatus != order.PaymentPending {
		t.Fatal("outage must leave the order retryable")
	}
}

func TestVerify_BypassNeedsBothPrivilegeAndPrefix(t *testing.T) {
	s, _, seed, proc := pendingOrder(t, 500)

	// privileged actor with a sandbox payment id skips the gateway entirely
	verified, err := s.Verify(user.Actor{ID: 7, IsPrivileged: true}, VerifyRequest{
		OrderID:          seed.ID,
		GatewayPaymentID: "pay_test_123",
	})
	if err != nil {
		t.Fatalf("bypass failed: %v", err)
	}
	if verified.PaymentInfo.Method != "test-bypass" {
		t.Fatalf("expected bypass marker, got %q", verified.PaymentInfo.Method)
	}
	if verified.PaymentInfo.GatewayOrderID != "order_test_bypass" {
		t.Fatalf("expected synthesized gateway order id, got %q", verified.PaymentInfo.GatewayOrderID)
	}
	if proc.fetches != 0 {
		t.Fatal("bypass must not call the gateway")
	}

	// unprivileged actor with the same id goes through the full gate
	s2, _, seed2, _ := pendingOrder(t, 500)
	_, err = s2.Verify(user.Actor{ID: 7}, VerifyRequest{
		OrderID:          seed2.ID,
		GatewayPaymentID: "pay_test_123",
		GatewaySignature: "deadbeef",
	})
	if apperr.ReasonOf(err) != "payment signature invalid" {
		t.Fatalf("unprivileged bypass attempt must fail the gate, got %v", err)
	}

	// privileged actor with a real payment id gets no shortcut either
	s3, _, seed3, _ := pendingOrder(t, 500)
	_, err = s3.Verify(user.Actor{ID: 7, IsPrivileged: true}, VerifyRequest{
		OrderID:          seed3.ID,
		GatewayPaymentID: "pay_real",
		GatewaySignature: "deadbeef",
	})
	if apperr.ReasonOf(err) != "payment signature invalid" {
		t.Fatalf("real payment id must go through the gate, got %v", err)
	}
}

func TestVerify_ForbiddenForOtherUsers(t *testing.T) {
	s, _, seed, _ := pendingOrder(t, 500)

	_, err := s.Verify(user.Actor{ID: 99}, VerifyRequest{
		OrderID:          seed.ID,
		GatewayOrderID:   "order_rzp_1",
		GatewayPaymentID: "pay_abc",
		GatewaySignature: sign("order_rzp_1", "pay_abc"),
	})
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestVerify_ConcurrentAttemptsHaveOneWinner(t *testing.T) {
	s, _, seed, _ := pendingOrder(t, 500)
	req := VerifyRequest{
		OrderID:          seed.ID,
		GatewayOrderID:   "order_rzp_1",
		GatewayPaymentID: "pay_abc",
		GatewaySignature: sign("order_rzp_1", "pay_abc"),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Verify(buyer(), req); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one winning verification, got %d", wins)
	}
}

func TestReportFailure_PendingOnly(t *testing.T) {
	s, _, seed, _ := pendingOrder(t, 500)

	updated, err := s.ReportFailure(buyer(), FailureRequest{
		OrderID: seed.ID, ErrorCode: "BAD_REQUEST_ERROR", ErrorDescription: "card declined",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PaymentStatus != order.PaymentFailed || updated.OrderStatus != order.StatusCancelled {
		t.Fatalf("expected failed/cancelled, got %s/%s", updated.PaymentStatus, updated.OrderStatus)
	}
	if updated.PaymentInfo.ErrorCode != "BAD_REQUEST_ERROR" {
		t.Fatalf("failure details not recorded: %+v", updated.PaymentInfo)
	}

	// a second callback finds the order no longer pending
	if _, err := s.ReportFailure(buyer(), FailureRequest{OrderID: seed.ID}); apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("expected conflict for non-pending order, got %v", err)
	}
}

func TestPaise(t *testing.T) {
	cases := []struct {
		amount float64
		paise  int64
	}{
		{1620.00, 162000},
		{970.00, 97000},
		{0.01, 1},
		{99.999, 10000},
	}
	for _, tc := range cases {
		if got := Paise(tc.amount); got != tc.paise {
			t.Fatalf("Paise(%v) = %d, want %d", tc.amount, got, tc.paise)
		}
	}
}
