package product

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/pricing"
	"github.com/novarajewels/jewellery-backend/internal/rate"
)

// RateSource yields the current silver rate; satisfied by *rate.Service.
type RateSource interface {
	GetLatest(ctx context.Context) (rate.Rate, error)
}

type Service struct {
	repo  Repository
	rates RateSource
	log   *zap.SugaredLogger
}

func NewService(repo Repository, rates RateSource, log *zap.SugaredLogger) *Service {
	return &Service{repo: repo, rates: rates, log: log}
}

// materialize overwrites the served price with the engine output at the
// current rate. The stored snapshot is never trusted for weighted products.
func materialize(p Product, ratePerGram float64) Product {
	p.StoredFinalPrice = pricing.FinalPrice(p.PriceInput(), ratePerGram)
	return p
}

// List returns the filtered catalog with live prices and the rate they were
// computed at.
func (s *Service) List(ctx context.Context, f Filter) ([]Product, float64, error) {
	current, err := s.rates.GetLatest(ctx)
	if err != nil {
		return nil, 0, err
	}
	products, err := s.repo.List(f)
	if err != nil {
		return nil, 0, err
	}
	for i := range products {
		products[i] = materialize(products[i], current.PricePerGram)
	}
	return products, current.PricePerGram, nil
}

// Get returns a single product at the live price. The view counter bump is a
// fire-and-forget side effect; it must never block or fail the read.
func (s *Service) Get(ctx context.Context, id int) (Product, float64, error) {
	current, err := s.rates.GetLatest(ctx)
	if err != nil {
		return Product{}, 0, err
	}
	p, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, 0, err
	}

	go func() {
		if err := s.repo.IncrementViews(id); err != nil {
			s.log.Debugw("view count bump failed", "productId", id, "error", err)
		}
	}()

	return materialize(p, current.PricePerGram), current.PricePerGram, nil
}

// LivePrice computes the current sale price of a product; order creation
// snapshots this value.
func (s *Service) LivePrice(ctx context.Context, p Product) (float64, error) {
	current, err := s.rates.GetLatest(ctx)
	if err != nil {
		return 0, err
	}
	return pricing.FinalPrice(p.PriceInput(), current.PricePerGram), nil
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Random(ctx context.Context, limit int) ([]Product, error) {
	if limit <= 0 || limit > 20 {
		limit = 8
	}
	current, err := s.rates.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.Random(limit)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i] = materialize(products[i], current.PricePerGram)
	}
	return products, nil
}

func validate(p Product) error {
	if p.Name == "" {
		return apperr.New(apperr.Validation, "item name is required")
	}
	if p.Code == "" {
		return apperr.New(apperr.Validation, "item code is required")
	}
	if p.BasePrice < 0 {
		return apperr.New(apperr.Validation, "base price must not be negative")
	}
	if p.Weight.NetWeight < 0 || p.Weight.GrossWeight < 0 || p.Weight.SilverWeight < 0 {
		return apperr.New(apperr.Validation, "weights must not be negative")
	}
	if p.MakingChargeRate < 0 {
		return apperr.New(apperr.Validation, "making charge rate must not be negative")
	}
	if len(p.Images) == 0 {
		return apperr.New(apperr.Validation, "at least one product image is required")
	}
	if len(p.Images) > MaxImages {
		return apperr.New(apperr.Validation, "maximum 5 images allowed per product")
	}
	return nil
}

func normalize(p Product) Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
	if p.Category == "" {
		p.Category = "all"
	}
	return p
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	p = normalize(p)
	if err := validate(p); err != nil {
		return Product{}, err
	}
	if _, err := s.repo.GetByCode(p.Code); err == nil {
		return Product{}, ErrCodeExists
	}

	current, err := s.rates.GetLatest(ctx)
	if err != nil {
		return Product{}, err
	}
	p.StoredFinalPrice = pricing.FinalPrice(p.PriceInput(), current.PricePerGram)

	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Create(p)
}

func (s *Service) Update(ctx context.Context, id int, p Product) (Product, error) {
	p = normalize(p)
	if err := validate(p); err != nil {
		return Product{}, err
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}

	current, err := s.rates.GetLatest(ctx)
	if err != nil {
		return Product{}, err
	}
	p.StoredFinalPrice = pricing.FinalPrice(p.PriceInput(), current.PricePerGram)

	p.Views = existing.Views
	p.OrdersCount = existing.OrdersCount
	p.WishlistedCount = existing.WishlistedCount
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) (Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	if err := s.repo.Delete(id); err != nil {
		return Product{}, err
	}
	return existing, nil
}

func (s *Service) IncrementOrdered(id int, by int) {
	if err := s.repo.IncrementOrdered(id, by); err != nil {
		s.log.Debugw("orders count bump failed", "productId", id, "error", err)
	}
}

func (s *Service) IncrementWishlisted(id int, by int) {
	if err := s.repo.IncrementWishlisted(id, by); err != nil {
		s.log.Debugw("wishlisted count bump failed", "productId", id, "error", err)
	}
}
