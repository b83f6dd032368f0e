package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/product"
)

// Catalog is the slice of the product service order creation needs;
// satisfied by *product.Service.
type Catalog interface {
	GetByID(id int) (product.Product, error)
	LivePrice(ctx context.Context, p product.Product) (float64, error)
	IncrementOrdered(id int, by int)
}

// Coupons is satisfied by *coupon.Service.
type Coupons interface {
	Validate(code string, subtotal float64, now time.Time) (float64, error)
	Redeem(code string) error
}

// Notifier receives order lifecycle events. Dispatch must not block order
// creation; implementations are called from a goroutine.
type Notifier interface {
	OrderCreated(o Order)
}

type Service struct {
	repo     Repository
	catalog  Catalog
	coupons  Coupons
	notifier Notifier
	log      *zap.SugaredLogger
}

func NewService(repo Repository, catalog Catalog, coupons Coupons, notifier Notifier, log *zap.SugaredLogger) *Service {
	return &Service{repo: repo, catalog: catalog, coupons: coupons, notifier: notifier, log: log}
}

type ItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type CreateRequest struct {
	CustomerName    string          `json:"customerName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []ItemRequest   `json:"items"`
	CouponCode      string          `json:"couponCode"`
	DeliveryCharge  float64         `json:"deliveryCharge"`
	PaymentMethod   string          `json:"paymentMethod"`
}

func validateCreate(req CreateRequest) error {
	if req.CustomerName == "" || req.Email == "" || req.Phone == "" {
		return apperr.New(apperr.Validation, "customer name, email and phone are required")
	}
	if req.ShippingAddress.Address == "" {
		return apperr.New(apperr.Validation, "shipping address is required")
	}
	if len(req.Items) == 0 {
		return apperr.New(apperr.Validation, "order must contain at least one item")
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return apperr.New(apperr.Validation, "item quantity must be at least 1")
		}
	}
	if !paymentMethods[req.PaymentMethod] {
		return apperr.New(apperr.Validation, "unsupported payment method")
	}
	if req.DeliveryCharge < 0 {
		return apperr.New(apperr.Validation, "delivery charge must not be negative")
	}
	return nil
}

// Create places an order. Every line's unit price is snapshotted from the
// live pricing engine at this moment; the order never sees a rate change
// again.
func (s *Service) Create(ctx context.Context, userID int, req CreateRequest) (Order, error) {
	if err := validateCreate(req); err != nil {
		return Order{}, err
	}

	items := make([]Item, 0, len(req.Items))
	for _, it := range req.Items {
		p, err := s.catalog.GetByID(it.ProductID)
		if err != nil {
			return Order{}, apperr.New(apperr.NotFound, "item in order not found")
		}
		if !p.InStock {
			return Order{}, apperr.New(apperr.Validation, "item "+p.Name+" is out of stock")
		}
		price, err := s.catalog.LivePrice(ctx, p)
		if err != nil {
			return Order{}, err
		}
		items = append(items, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}

	subtotal, _ := ComposeTotals(items, nil, 0, 0)

	var discount float64
	var couponCode *string
	if req.CouponCode != "" {
		// the stored code must match the coupon table's canonical casing
		code := strings.ToUpper(strings.TrimSpace(req.CouponCode))
		d, err := s.coupons.Validate(code, subtotal, time.Now())
		if err != nil {
			return Order{}, err
		}
		discount = d
		couponCode = &code
	}

	o := Order{
		OrderNumber:     uuid.NewString(),
		UserID:          userID,
		CustomerName:    req.CustomerName,
		Email:           req.Email,
		Phone:           req.Phone,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
		DeliveryCharge:  req.DeliveryCharge,
		Subtotal:        subtotal,
		Discount:        discount,
		CouponCode:      couponCode,
		TotalAmount:     TotalFrom(subtotal, discount, req.DeliveryCharge, nil),
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   PaymentPending,
		OrderStatus:     StatusPending,
	}

	created, err := s.repo.Create(o)
	if err != nil {
		return Order{}, err
	}

	// The guarded increment is the serialization point for the usage limit.
	// A raced-out redemption voids the order instead of overspending the
	// coupon.
	if couponCode != nil {
		if err := s.coupons.Redeem(*couponCode); err != nil {
			if delErr := s.repo.Delete(created.ID); delErr != nil {
				s.log.Errorw("failed to void order after coupon redemption loss",
					"orderId", created.ID, "error", delErr)
			}
			return Order{}, err
		}
	}

	go func() {
		for _, it := range created.Items {
			s.catalog.IncrementOrdered(it.ProductID, it.Quantity)
		}
		if s.notifier != nil {
			s.notifier.OrderCreated(created)
		}
	}()

	return created, nil
}

func (s *Service) Get(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

type UpdateRequest struct {
	OrderStatus       *string   `json:"orderStatus"`
	TrackingNumber    *string   `json:"trackingNumber"`
	Notes             *string   `json:"notes"`
	AdditionalCharges *[]Charge `json:"additionalCharges"`
}

// Update applies operator edits. When charges change the grand total is
// recomputed from the order's stored subtotal and discount, never from
// live catalog prices.
func (s *Service) Update(id int, req UpdateRequest) (Order, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}

	if req.OrderStatus != nil {
		if !orderStatuses[*req.OrderStatus] {
			return Order{}, apperr.New(apperr.Validation, "unknown order status")
		}
		existing.OrderStatus = *req.OrderStatus
	}
	if req.TrackingNumber != nil {
		existing.TrackingNumber = *req.TrackingNumber
	}
	if req.Notes != nil {
		existing.Notes = *req.Notes
	}
	if req.AdditionalCharges != nil {
		for _, ch := range *req.AdditionalCharges {
			if ch.Name == "" || ch.Amount < 0 {
				return Order{}, apperr.New(apperr.Validation, "invalid additional charge")
			}
		}
		existing.AdditionalCharges = *req.AdditionalCharges
	}
	existing.TotalAmount = TotalFrom(existing.Subtotal, existing.Discount,
		existing.DeliveryCharge, existing.AdditionalCharges)

	if err := s.repo.UpdateAdminFields(existing); err != nil {
		return Order{}, err
	}
	return existing, nil
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// TransitionPayment is the only path out of the pending payment state. It
// returns Conflict when another transition already won.
func (s *Service) TransitionPayment(id int, paymentStatus, orderStatus string, info PaymentInfo) (Order, error) {
	transitioned, err := s.repo.TransitionPayment(id, paymentStatus, orderStatus, info)
	if err != nil {
		return Order{}, err
	}
	if !transitioned {
		return Order{}, apperr.New(apperr.Conflict, "order is not awaiting payment")
	}
	return s.repo.GetByID(id)
}
