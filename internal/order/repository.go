package order

import (
	"sync"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.NotFound, "order not found")

type Repository interface {
	Create(o Order) (Order, error)
	GetByID(id int) (Order, error)
	ListAll() ([]Order, error)
	ListByUser(userID int) ([]Order, error)
	// UpdateAdminFields persists operator-editable fields only; money
	// snapshots other than additional charges and total are untouched.
	UpdateAdminFields(o Order) error
	Delete(id int) error
	// TransitionPayment moves the order out of the pending payment state.
	// It reports false when the order was not pending, so concurrent
	// verifications resolve to exactly one winner.
	TransitionPayment(id int, paymentStatus, orderStatus string, info PaymentInfo) (bool, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	repo := &InMemoryRepository{nextID: 1}
	for _, o := range seed {
		repo.Create(o)
	}
	return repo
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o.ID = r.nextID
	r.nextID++
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	// newest first, matching the SQL ordering
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateAdminFields(o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			r.orders[i].OrderStatus = o.OrderStatus
			r.orders[i].TrackingNumber = o.TrackingNumber
			r.orders[i].Notes = o.Notes
			r.orders[i].AdditionalCharges = o.AdditionalCharges
			r.orders[i].TotalAmount = o.TotalAmount
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) TransitionPayment(id int, paymentStatus, orderStatus string, info PaymentInfo) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		if r.orders[i].PaymentStatus != PaymentPending {
			return false, nil
		}
		r.orders[i].PaymentStatus = paymentStatus
		r.orders[i].OrderStatus = orderStatus
		r.orders[i].PaymentInfo = info
		return true, nil
	}
	return false, ErrNotFound
}
