package carousel

import (
	"sort"
	"sync"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.NotFound, "slide not found")

type Repository interface {
	List(activeOnly bool) ([]Slide, error)
	GetByID(id int) (Slide, error)
	Create(s Slide) (Slide, error)
	Update(s Slide) error
	Delete(id int) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	slides []Slide
	nextID int
}

func NewInMemoryRepository(seed []Slide) *InMemoryRepository {
	repo := &InMemoryRepository{nextID: 1}
	for _, s := range seed {
		repo.Create(s)
	}
	return repo
}

func (r *InMemoryRepository) List(activeOnly bool) ([]Slide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Slide, 0, len(r.slides))
	for _, s := range r.slides {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Slide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.slides {
		if s.ID == id {
			return s, nil
		}
	}
	return Slide{}, ErrNotFound
}

func (r *InMemoryRepository) Create(s Slide) (Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.nextID
	r.nextID++
	r.slides = append(r.slides, s)
	return s, nil
}

func (r *InMemoryRepository) Update(s Slide) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.slides {
		if r.slides[i].ID == s.ID {
			r.slides[i] = s
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.slides {
		if r.slides[i].ID == id {
			r.slides = append(r.slides[:i], r.slides[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
