package cart

import (
	"context"
	"testing"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/product"
)

type fakeCatalog struct {
	products map[int]product.Product
	prices   map[int]float64
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

func testService() (*Service, *fakeCatalog) {
	catalog := &fakeCatalog{
		products: map[int]product.Product{
			1: {ID: 1, Name: "Silver Ring", Code: "RING-01", InStock: true},
			2: {ID: 2, Name: "Anklet", Code: "ANK-01", InStock: false},
		},
		prices: map[int]float64{1: 1620.00, 2: 500},
	}
	return NewService(NewInMemoryRepository(), catalog), catalog
}

func TestAdd_MergesIntoExistingLine(t *testing.T) {
	s, _ := testService()

	if err := s.Add(7, 1, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := s.Add(7, 1, 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	lines, _, err := s.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAdd_RejectsOutOfStockAndBadQuantity(t *testing.T) {
	s, _ := testService()

	if err := s.Add(7, 2, 1); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected out-of-stock rejection, got %v", err)
	}
	if err := s.Add(7, 1, 0); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected quantity rejection, got %v", err)
	}
	if err := s.Add(7, 99, 1); apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGet_EnrichesWithLivePrices(t *testing.T) {
	s, catalog := testService()
	if err := s.Add(7, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	lines, subtotal, err := s.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].UnitPrice != 1620.00 || lines[0].LineTotal != 3240.00 {
		t.Fatalf("expected live price enrichment, got %+v", lines[0])
	}
	if subtotal != 3240.00 {
		t.Fatalf("expected subtotal 3240.00, got %v", subtotal)
	}

	// the rate moved; the cart follows it on the next read
	catalog.prices[1] = 1700.00
	lines, subtotal, _ = s.Get(context.Background(), 7)
	if lines[0].UnitPrice != 1700.00 || subtotal != 3400.00 {
		t.Fatalf("cart must track the live price, got %+v subtotal %v", lines[0], subtotal)
	}
}

func TestGet_SkipsDeletedProducts(t *testing.T) {
	s, catalog := testService()
	if err := s.Add(7, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	delete(catalog.products, 1)

	lines, subtotal, err := s.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 || subtotal != 0 {
		t.Fatalf("deleted products must drop out of the cart view, got %d lines", len(lines))
	}
}

func TestSetQuantityRemoveClear(t *testing.T) {
	s, _ := testService()
	if err := s.Add(7, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := s.SetQuantity(7, 1, 5); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if err := s.SetQuantity(7, 1, 0); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected quantity rejection, got %v", err)
	}
	if err := s.SetQuantity(7, 42, 2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Remove(7, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := s.Remove(7, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double remove, got %v", err)
	}

	_ = s.Add(7, 1, 1)
	if err := s.Clear(7); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	lines, _, _ := s.Get(context.Background(), 7)
	if len(lines) != 0 {
		t.Fatal("cart must be empty after clear")
	}
}
