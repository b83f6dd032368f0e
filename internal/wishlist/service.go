package wishlist

import (
	"context"

	"github.com/novarajewels/jewellery-backend/internal/product"
)

// Catalog is satisfied by *product.Service.
type Catalog interface {
	GetByID(id int) (product.Product, error)
	LivePrice(ctx context.Context, p product.Product) (float64, error)
	IncrementWishlisted(id int, by int)
}

type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// Add wishlists a product. The popularity counter bump is fire and forget;
// a duplicate add conflicts and bumps nothing.
func (s *Service) Add(userID, productID int) error {
	if _, err := s.catalog.GetByID(productID); err != nil {
		return err
	}
	if err := s.repo.Add(userID, productID); err != nil {
		return err
	}
	go s.catalog.IncrementWishlisted(productID, 1)
	return nil
}

func (s *Service) Remove(userID, productID int) error {
	if err := s.repo.Remove(userID, productID); err != nil {
		return err
	}
	go s.catalog.IncrementWishlisted(productID, -1)
	return nil
}

// List returns the wishlisted products with live prices. Deleted products
// drop out silently.
func (s *Service) List(ctx context.Context, userID int) ([]product.Product, error) {
	ids, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}

	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.catalog.GetByID(id)
		if err != nil {
			continue
		}
		price, err := s.catalog.LivePrice(ctx, p)
		if err != nil {
			return nil, err
		}
		p.StoredFinalPrice = price
		out = append(out, p)
	}
	return out, nil
}
