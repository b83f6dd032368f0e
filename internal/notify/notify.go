package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/order"
)

// Event kinds published on the order lifecycle.
const (
	KindOrderCreated     = "order.created"
	KindPaymentCompleted = "payment.completed"
	KindPaymentFailed    = "payment.failed"
)

type Event struct {
	Kind  string      `json:"kind"`
	Order order.Order `json:"order"`
}

// Sink delivers one event to one channel (email, telegram, a broker). A
// failing sink never affects the others.
type Sink interface {
	Name() string
	Send(ctx context.Context, e Event) error
}

// Service fans events out to every configured sink. Callers invoke it off
// the request path; per-sink failures are logged and swallowed.
type Service struct {
	sinks   []Sink
	timeout time.Duration
	log     *zap.SugaredLogger
}

func NewService(log *zap.SugaredLogger, sinks ...Sink) *Service {
	return &Service{sinks: sinks, timeout: 15 * time.Second, log: log}
}

func (s *Service) dispatch(e Event) {
	for _, sink := range s.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		if err := sink.Send(ctx, e); err != nil {
			s.log.Warnw("notification delivery failed",
				"sink", sink.Name(), "kind", e.Kind, "orderNumber", e.Order.OrderNumber, "error", err)
		}
		cancel()
	}
}

func (s *Service) OrderCreated(o order.Order) {
	s.dispatch(Event{Kind: KindOrderCreated, Order: o})
}

func (s *Service) PaymentCompleted(o order.Order) {
	s.dispatch(Event{Kind: KindPaymentCompleted, Order: o})
}

func (s *Service) PaymentFailed(o order.Order) {
	s.dispatch(Event{Kind: KindPaymentFailed, Order: o})
}

// Summary renders the one-line human text used by chat and email subjects.
func Summary(e Event) string {
	switch e.Kind {
	case KindOrderCreated:
		return fmt.Sprintf("New order %s from %s: %d item(s), total ₹%.2f",
			e.Order.OrderNumber, e.Order.CustomerName, len(e.Order.Items), e.Order.TotalAmount)
	case KindPaymentCompleted:
		return fmt.Sprintf("Payment received for order %s: ₹%.2f via %s",
			e.Order.OrderNumber, e.Order.TotalAmount, e.Order.PaymentInfo.Method)
	case KindPaymentFailed:
		return fmt.Sprintf("Payment failed for order %s: %s",
			e.Order.OrderNumber, e.Order.PaymentInfo.ErrorDescription)
	default:
		return fmt.Sprintf("Order %s updated", e.Order.OrderNumber)
	}
}
