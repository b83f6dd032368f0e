package notify

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/order"
)

type recordingSink struct {
	name   string
	events []Event
	err    error
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Send(_ context.Context, e Event) error {
	s.events = append(s.events, e)
	return s.err
}

func TestDispatch_FansOutPastFailures(t *testing.T) {
	broken := &recordingSink{name: "broken", err: errors.New("smtp down")}
	healthy := &recordingSink{name: "healthy"}
	s := NewService(zap.NewNop().Sugar(), broken, healthy)

	s.OrderCreated(order.Order{OrderNumber: "abc-123"})

	if len(broken.events) != 1 || len(healthy.events) != 1 {
		t.Fatalf("every sink must see the event, got %d/%d", len(broken.events), len(healthy.events))
	}
	if healthy.events[0].Kind != KindOrderCreated {
		t.Fatalf("expected %s, got %s", KindOrderCreated, healthy.events[0].Kind)
	}
}

func TestSummary(t *testing.T) {
	o := order.Order{
		OrderNumber:  "abc-123",
		CustomerName: "Asha",
		TotalAmount:  1620.00,
		Items:        []order.Item{{ProductID: 1, Quantity: 1, UnitPrice: 1620.00}},
		PaymentInfo:  order.PaymentInfo{Method: "upi", ErrorDescription: "card declined"},
	}

	cases := []struct {
		kind string
		want string
	}{
		{KindOrderCreated, "New order abc-123 from Asha: 1 item(s), total ₹1620.00"},
		{KindPaymentCompleted, "Payment received for order abc-123: ₹1620.00 via upi"},
		{KindPaymentFailed, "Payment failed for order abc-123: card declined"},
	}
	for _, tc := range cases {
		if got := Summary(Event{Kind: tc.kind, Order: o}); got != tc.want {
			t.Fatalf("Summary(%s) = %q, want %q", tc.kind, got, tc.want)
		}
	}
}
