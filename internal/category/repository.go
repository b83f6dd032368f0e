package category

import (
	"sync"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

var (
	ErrNotFound   = apperr.New(apperr.NotFound, "category not found")
	ErrSlugExists = apperr.New(apperr.Conflict, "category already exists")
)

type Repository interface {
	List() ([]Category, error)
	GetBySlug(slug string) (Category, error)
	Create(c Category) (Category, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu         sync.RWMutex
	categories []Category
	nextID     int
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	repo := &InMemoryRepository{nextID: 1}
	for _, c := range seed {
		repo.Create(c)
	}
	return repo
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(slug string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return Category{}, ErrSlugExists
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
