package rate

import (
	"sort"
	"sync"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

var ErrNoRate = apperr.New(apperr.NotFound, "no silver rate recorded")

type Repository interface {
	// Latest returns the newest entry by CapturedAt, or ErrNoRate when the
	// log is empty.
	Latest() (Rate, error)
	// Insert appends a new entry. The log is append-only; there is no
	// update or delete.
	Insert(r Rate) (Rate, error)
	// History returns up to limit entries, newest first.
	History(limit int) ([]Rate, error)
}

// InMemoryRepository backs tests and local runs without Postgres.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []Rate
	nextID  int
}

func NewInMemoryRepository(seed []Rate) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, e := range seed {
		if e.ID == 0 {
			e.ID = r.nextID
		}
		r.entries = append(r.entries, e)
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) Latest() (Rate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.entries) == 0 {
		return Rate{}, ErrNoRate
	}
	latest := r.entries[0]
	for _, e := range r.entries[1:] {
		// ties go to the later insert, matching the SQL id tiebreak
		if !e.CapturedAt.Before(latest.CapturedAt) {
			latest = e
		}
	}
	return latest, nil
}

func (r *InMemoryRepository) Insert(entry Rate) (Rate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *InMemoryRepository) History(limit int) ([]Rate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rate, len(r.entries))
	copy(out, r.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].CapturedAt.After(out[j].CapturedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
