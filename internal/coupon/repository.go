package coupon

import (
	"sync"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

var (
	ErrNotFound       = apperr.New(apperr.NotFound, "coupon not found")
	ErrCodeExists     = apperr.New(apperr.Conflict, "coupon code already exists")
	ErrLimitExhausted = apperr.New(apperr.Conflict, "coupon usage limit reached")
)

type Repository interface {
	GetByCode(code string) (Coupon, error)
	List() ([]Coupon, error)
	Create(c Coupon) (Coupon, error)
	Delete(id int) error
	// IncrementUsage bumps used_count by one, guarded by the usage limit in
	// the same statement. Returns ErrLimitExhausted when the guard fails so
	// concurrent redemptions cannot oversell a coupon.
	IncrementUsage(code string) error
}

type InMemoryRepository struct {
	mu      sync.Mutex
	storage []Coupon
	nextID  int
}

func NewInMemoryRepository(seed []Coupon) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, c := range seed {
		if c.ID == 0 {
			c.ID = r.nextID
		}
		r.storage = append(r.storage, c)
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) GetByCode(code string) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.storage {
		if c.Code == code {
			return c, nil
		}
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) List() ([]Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Coupon, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) Create(c Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.storage {
		if existing.Code == c.Code {
			return Coupon{}, ErrCodeExists
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.storage = append(r.storage, c)
	return c, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) IncrementUsage(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].Code == code {
			if r.storage[i].UsageLimit != nil && r.storage[i].UsedCount >= *r.storage[i].UsageLimit {
				return ErrLimitExhausted
			}
			r.storage[i].UsedCount++
			return nil
		}
	}
	return ErrNotFound
}
