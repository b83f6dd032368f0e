package wishlist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/product"
)

type fakeCatalog struct {
	mu         sync.Mutex
	products   map[int]product.Product
	prices     map[int]float64
	wishlisted map[int]int
}

func (f *fakeCatalog) GetByID(id int) (product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) LivePrice(_ context.Context, p product.Product) (float64, error) {
	return f.prices[p.ID], nil
}

func (f *fakeCatalog) IncrementWishlisted(id, by int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.wishlisted == nil {
		f.wishlisted = map[int]int{}
	}
	f.wishlisted[id] += by
}

func (f *fakeCatalog) wishlistedCount(id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wishlisted[id]
}

func waitForCount(t *testing.T, f *fakeCatalog, id, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if f.wishlistedCount(id) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("wishlisted count for %d never reached %d, got %d", id, want, f.wishlistedCount(id))
}

func testService() (*Service, *fakeCatalog) {
	catalog := &fakeCatalog{
		products: map[int]product.Product{1: {ID: 1, Name: "Silver Ring", InStock: true}},
		prices:   map[int]float64{1: 1620.00},
	}
	return NewService(NewInMemoryRepository(), catalog), catalog
}

func TestAdd_SetSemantics(t *testing.T) {
	s, catalog := testService()

	if err := s.Add(7, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := s.Add(7, 1); apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("expected conflict on duplicate, got %v", err)
	}
	if err := s.Add(7, 42); apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}

	// exactly one bump despite the duplicate attempt
	waitForCount(t, catalog, 1, 1)
}

func TestRemove_DecrementsCounter(t *testing.T) {
	s, catalog := testService()

	if err := s.Add(7, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	waitForCount(t, catalog, 1, 1)

	if err := s.Remove(7, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	waitForCount(t, catalog, 1, 0)

	if err := s.Remove(7, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double remove, got %v", err)
	}
}

func TestList_ServesLivePrices(t *testing.T) {
	s, catalog := testService()
	if err := s.Add(7, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items, err := s.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].StoredFinalPrice != 1620.00 {
		t.Fatalf("expected live price on wishlist item, got %+v", items)
	}

	catalog.prices[1] = 1700.00
	items, _ = s.List(context.Background(), 7)
	if items[0].StoredFinalPrice != 1700.00 {
		t.Fatalf("wishlist must track the live price, got %v", items[0].StoredFinalPrice)
	}
}
