package wishlist

import (
	"sync"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

var (
	ErrNotFound      = apperr.New(apperr.NotFound, "wishlist entry not found")
	ErrAlreadyListed = apperr.New(apperr.Conflict, "item already wishlisted")
)

// Repository stores the wishlist as a set per user; adding an entry twice
// fails with ErrAlreadyListed.
type Repository interface {
	List(userID int) ([]int, error)
	Add(userID, productID int) error
	Remove(userID, productID int) error
}

type key struct{ userID, productID int }

type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[key]int // insertion order for stable listing
	next    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{entries: make(map[key]int)}
}

func (r *InMemoryRepository) List(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type pair struct{ order, productID int }
	pairs := make([]pair, 0)
	for k, ord := range r.entries {
		if k.userID == userID {
			pairs = append(pairs, pair{ord, k.productID})
		}
	}
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j].order < pairs[j-1].order; j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}
	out := make([]int, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.productID)
	}
	return out, nil
}

func (r *InMemoryRepository) Add(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{userID, productID}
	if _, exists := r.entries[k]; exists {
		return ErrAlreadyListed
	}
	r.entries[k] = r.next
	r.next++
	return nil
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{userID, productID}
	if _, exists := r.entries[k]; !exists {
		return ErrNotFound
	}
	delete(r.entries, k)
	return nil
}
