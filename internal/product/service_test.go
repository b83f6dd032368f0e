package product

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/rate"
)

func testRates(pricePerGram float64) *rate.Service {
	repo := rate.NewInMemoryRepository([]rate.Rate{
		{PricePerGram: pricePerGram, Source: rate.SourceManual, CapturedAt: time.Now().UTC()},
	})
	return rate.NewService(repo, nil)
}

func weightedSeed() []Product {
	return []Product{{
		ID:               1,
		Name:             "Silver Anklet",
		Code:             "ANK-001",
		Category:         "anklets",
		BasePrice:        500,
		Weight:           Weight{NetWeight: 10},
		MakingChargeRate: 50,
		StoredFinalPrice: 999.99, // stale on purpose; must never be served
		InStock:          true,
		Images:           []string{"https://img.test/anklet.jpg"},
	}}
}

func TestList_ServesLivePriceNotStoredSnapshot(t *testing.T) {
	s := NewService(NewInMemoryRepository(weightedSeed()), testRates(80), zap.NewNop().Sugar())

	products, ratePerGram, err := s.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratePerGram != 80 {
		t.Fatalf("expected rate 80, got %v", ratePerGram)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	// 500 + 10*80 + 50*10 = 1800 -> 1620.00; the stale 999.99 must be gone
	if products[0].StoredFinalPrice != 1620.00 {
		t.Fatalf("expected live price 1620.00, got %v", products[0].StoredFinalPrice)
	}
}

func TestGetAndList_AgreeOnPrice(t *testing.T) {
	s := NewService(NewInMemoryRepository(weightedSeed()), testRates(152), zap.NewNop().Sugar())

	listed, _, err := s.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	single, _, err := s.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listed[0].StoredFinalPrice != single.StoredFinalPrice {
		t.Fatalf("catalog and detail disagree: %v vs %v",
			listed[0].StoredFinalPrice, single.StoredFinalPrice)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil), testRates(152), zap.NewNop().Sugar())
	_, _, err := s.Get(context.Background(), 99)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreate_RejectsDuplicateCode(t *testing.T) {
	s := NewService(NewInMemoryRepository(weightedSeed()), testRates(152), zap.NewNop().Sugar())

	_, err := s.Create(context.Background(), Product{
		Name:      "Another Anklet",
		Code:      "ank-001", // lower case must still collide
		BasePrice: 100,
		Images:    []string{"https://img.test/x.jpg"},
	})
	if apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("expected conflict for duplicate code, got %v", err)
	}
}

func TestCreate_ImageCountBounds(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil), testRates(152), zap.NewNop().Sugar())

	_, err := s.Create(context.Background(), Product{Name: "Ring", Code: "RNG-1", BasePrice: 100})
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected validation error for zero images, got %v", err)
	}

	tooMany := make([]string, MaxImages+1)
	for i := range tooMany {
		tooMany[i] = "https://img.test/x.jpg"
	}
	_, err = s.Create(context.Background(), Product{Name: "Ring", Code: "RNG-1", BasePrice: 100, Images: tooMany})
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected validation error for six images, got %v", err)
	}
}

func TestCreate_SnapshotsFinalPrice(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil), testRates(80), zap.NewNop().Sugar())

	created, err := s.Create(context.Background(), Product{
		Name:             "Silver Chain",
		Code:             "chn-7",
		BasePrice:        500,
		Weight:           Weight{NetWeight: 10},
		MakingChargeRate: 50,
		Images:           []string{"https://img.test/chain.jpg"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Code != "CHN-7" {
		t.Fatalf("expected upper-cased code, got %q", created.Code)
	}
	if created.StoredFinalPrice != 1620.00 {
		t.Fatalf("expected snapshot 1620.00, got %v", created.StoredFinalPrice)
	}
}

func TestList_Filters(t *testing.T) {
	outOfStock := false
	seed := weightedSeed()
	seed = append(seed, Product{
		ID: 2, Name: "Gold Plated Ring", Code: "RNG-2", Category: "rings",
		BasePrice: 900, InStock: false, Images: []string{"https://img.test/r.jpg"},
	})
	s := NewService(NewInMemoryRepository(seed), testRates(152), zap.NewNop().Sugar())

	byCategory, _, _ := s.List(context.Background(), Filter{Category: "rings"})
	if len(byCategory) != 1 || byCategory[0].ID != 2 {
		t.Fatalf("category filter failed: %+v", byCategory)
	}

	bySearch, _, _ := s.List(context.Background(), Filter{Search: "anklet"})
	if len(bySearch) != 1 || bySearch[0].ID != 1 {
		t.Fatalf("search filter failed: %+v", bySearch)
	}

	byStock, _, _ := s.List(context.Background(), Filter{InStock: &outOfStock})
	if len(byStock) != 1 || byStock[0].ID != 2 {
		t.Fatalf("stock filter failed: %+v", byStock)
	}
}
