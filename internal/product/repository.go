package product

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

var (
	ErrNotFound   = apperr.New(apperr.NotFound, "product not found")
	ErrCodeExists = apperr.New(apperr.Conflict, "product code already exists")
)

type Repository interface {
	List(f Filter) ([]Product, error)
	GetByID(id int) (Product, error)
	GetByCode(code string) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
	Random(limit int) ([]Product, error)

	// Counter bumps are fire-and-forget side effects; failures are logged
	// by callers, never surfaced.
	IncrementViews(id int) error
	IncrementOrdered(id int, by int) error
	IncrementWishlisted(id int, by int) error
}

// InMemoryRepository backs tests and local seeding.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, p := range seed {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		r.storage = append(r.storage, p)
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func matches(p Product, f Filter) bool {
	if f.Category != "" && f.Category != "all" && p.Category != f.Category {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Code), needle) {
			return false
		}
	}
	return true
}

func (r *InMemoryRepository) List(f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range r.storage {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetByCode(code string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.Code == code {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.storage {
		if existing.Code == p.Code {
			return Product{}, ErrCodeExists
		}
	}
	p.ID = r.nextID
	r.nextID++
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.storage {
		if existing.Code == p.Code && existing.ID != id {
			return Product{}, ErrCodeExists
		}
	}
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
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

func (r *InMemoryRepository) Random(limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) IncrementViews(id int) error {
	return r.bump(id, func(p *Product) { p.Views++ })
}

func (r *InMemoryRepository) IncrementOrdered(id int, by int) error {
	return r.bump(id, func(p *Product) { p.OrdersCount += by })
}

func (r *InMemoryRepository) IncrementWishlisted(id int, by int) error {
	return r.bump(id, func(p *Product) { p.WishlistedCount += by })
}

func (r *InMemoryRepository) bump(id int, fn func(*Product)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			fn(&r.storage[i])
			return nil
		}
	}
	return ErrNotFound
}
