package review

import (
	"sync"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

var (
	ErrNotFound        = apperr.New(apperr.NotFound, "review not found")
	ErrAlreadyReviewed = apperr.New(apperr.Conflict, "product already reviewed")
)

type Repository interface {
	ListByProduct(productID int) ([]Review, error)
	GetByID(id int) (Review, error)
	Create(r Review) (Review, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews []Review
	nextID  int
}

func NewInMemoryRepository(seed []Review) *InMemoryRepository {
	repo := &InMemoryRepository{nextID: 1}
	for _, rv := range seed {
		repo.Create(rv)
	}
	return repo
}

func (r *InMemoryRepository) ListByProduct(productID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Review, 0)
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].ProductID == productID {
			out = append(out, r.reviews[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rv := range r.reviews {
		if rv.ID == id {
			return rv, nil
		}
	}
	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) Create(rv Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.ProductID == rv.ProductID && existing.UserID == rv.UserID {
			return Review{}, ErrAlreadyReviewed
		}
	}
	rv.ID = r.nextID
	r.nextID++
	r.reviews = append(r.reviews, rv)
	return rv, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
