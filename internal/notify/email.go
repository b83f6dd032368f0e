package notify

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// EmailSink mails the store inbox on every event and the customer on
// payment outcomes.
type EmailSink struct {
	dialer     *gomail.Dialer
	from       string
	storeInbox string
}

func NewEmailSink(host string, port int, username, password, from, storeInbox string) *EmailSink {
	return &EmailSink{
		dialer:     gomail.NewDialer(host, port, username, password),
		from:       from,
		storeInbox: storeInbox,
	}
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) Send(_ context.Context, e Event) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.recipients(e)...)
	m.SetHeader("Subject", Summary(e))
	m.SetBody("text/plain", body(e))
	return s.dialer.DialAndSend(m)
}

func (s *EmailSink) recipients(e Event) []string {
	if e.Kind == KindOrderCreated {
		return []string{s.storeInbox}
	}
	if e.Order.Email != "" {
		return []string{s.storeInbox, e.Order.Email}
	}
	return []string{s.storeInbox}
}

func body(e Event) string {
	var b strings.Builder
	b.WriteString(Summary(e))
	b.WriteString("\n\n")
	for _, it := range e.Order.Items {
		fmt.Fprintf(&b, "  %dx %s @ ₹%.2f\n", it.Quantity, it.Name, it.UnitPrice)
	}
	fmt.Fprintf(&b, "\nSubtotal: ₹%.2f\n", e.Order.Subtotal)
	if e.Order.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -₹%.2f\n", e.Order.Discount)
	}
	if e.Order.DeliveryCharge > 0 {
		fmt.Fprintf(&b, "Delivery: ₹%.2f\n", e.Order.DeliveryCharge)
	}
	fmt.Fprintf(&b, "Total: ₹%.2f\n", e.Order.TotalAmount)
	return b.String()
}
