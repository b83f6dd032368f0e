package payment

import (
	razorpay "github.com/razorpay/razorpay-go"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

// Payment is the gateway's view of a captured payment, reduced to the
// fields the verification gate checks.
type Payment struct {
	ID          string
	Status      string
	AmountPaise int64
	Method      string
}

// Processor abstracts the payment gateway; satisfied by RazorpayProcessor.
type Processor interface {
	CreateOrder(amountPaise int64, currency, receipt string) (string, error)
	FetchPayment(paymentID string) (Payment, error)
}

type RazorpayProcessor struct {
	client *razorpay.Client
}

func NewRazorpayProcessor(keyID, keySecret string) *RazorpayProcessor {
	return &RazorpayProcessor{client: razorpay.NewClient(keyID, keySecret)}
}

func (p *RazorpayProcessor) CreateOrder(amountPaise int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	created, err := p.client.Order.Create(data, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.External, "payment gateway unavailable", err)
	}
	id, _ := created["id"].(string)
	if id == "" {
		return "", apperr.New(apperr.External, "payment gateway unavailable")
	}
	return id, nil
}

func (p *RazorpayProcessor) FetchPayment(paymentID string) (Payment, error) {
	fetched, err := p.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return Payment{}, apperr.Wrap(apperr.External, "payment verification unavailable", err)
	}

	out := Payment{ID: paymentID}
	out.Status, _ = fetched["status"].(string)
	out.Method, _ = fetched["method"].(string)
	// razorpay encodes amounts as JSON numbers; both forms show up in practice
	switch amount := fetched["amount"].(type) {
	case float64:
		out.AmountPaise = int64(amount)
	case int64:
		out.AmountPaise = amount
	case int:
		out.AmountPaise = int64(amount)
	}
	return out, nil
}
