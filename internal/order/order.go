package order

import "time"

// Payment status values. Only the payment gate moves an order out of
// PaymentPending.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Order status values.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Item is an order line. UnitPrice is the sale price snapshotted at order
// creation; it is never recomputed afterwards, which is what makes placed
// orders price-immutable while the silver rate keeps moving.
type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"itemName,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// Charge is an operator-added line such as a packing fee.
type Charge struct {
	Name   string  `json:"chargeName"`
	Amount float64 `json:"chargeAmount"`
}

// ShippingAddress is the structured delivery address captured at checkout.
type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// PaymentInfo is the opaque record of gateway correlation written by the
// payment gate on transition; the rest of the system never interprets it.
type PaymentInfo struct {
	GatewayOrderID   string     `json:"gatewayOrderId,omitempty"`
	GatewayPaymentID string     `json:"gatewayPaymentId,omitempty"`
	GatewaySignature string     `json:"gatewaySignature,omitempty"`
	Method           string     `json:"paymentMethod,omitempty"`
	AmountPaid       float64    `json:"amountPaid,omitempty"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`
	ErrorCode        string     `json:"errorCode,omitempty"`
	ErrorDescription string     `json:"errorDescription,omitempty"`
	FailedAt         *time.Time `json:"failedAt,omitempty"`
}

type Order struct {
	ID              int             `json:"orderId"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          int             `json:"userId"`
	CustomerName    string          `json:"customerName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`

	Items             []Item   `json:"items"`
	AdditionalCharges []Charge `json:"additionalCharges"`
	DeliveryCharge    float64  `json:"deliveryCharge"`
	Subtotal          float64  `json:"subtotal"`
	Discount          float64  `json:"discount"`
	CouponCode        *string  `json:"couponCode,omitempty"`
	TotalAmount       float64  `json:"totalAmount"`

	PaymentMethod  string      `json:"paymentMethod"`
	PaymentStatus  string      `json:"paymentStatus"`
	OrderStatus    string      `json:"orderStatus"`
	PaymentInfo    PaymentInfo `json:"paymentInfo,omitempty"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
	Notes          string      `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

var paymentMethods = map[string]bool{
	"cod": true, "upi": true, "card": true, "netbanking": true,
	"wallet": true, "razorpay": true,
}

var orderStatuses = map[string]bool{
	StatusPending: true, StatusConfirmed: true, StatusProcessing: true,
	StatusShipped: true, StatusDelivered: true, StatusCancelled: true,
}
