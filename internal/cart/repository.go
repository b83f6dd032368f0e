package cart

import (
	"sync"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.NotFound, "cart item not found")

type Repository interface {
	List(userID int) ([]Item, error)
	// Add merges into an existing line for the same product, otherwise
	// inserts a new one.
	Add(userID, productID, quantity int) error
	SetQuantity(userID, productID, quantity int) error
	Remove(userID, productID int) error
	Clear(userID int) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) List(userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, 0)
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Add(userID, productID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].ProductID == productID {
			r.items[i].Quantity += quantity
			return nil
		}
	}
	r.items = append(r.items, Item{UserID: userID, ProductID: productID, Quantity: quantity})
	return nil
}

func (r *InMemoryRepository) SetQuantity(userID, productID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].ProductID == productID {
			r.items[i].Quantity = quantity
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, it := range r.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}
