package cart

import (
	"context"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/pricing"
	"github.com/novarajewels/jewellery-backend/internal/product"
)

// Catalog is the product lookup the cart needs; satisfied by
// *product.Service.
type Catalog interface {
	GetByID(id int) (product.Product, error)
	LivePrice(ctx context.Context, p product.Product) (float64, error)
}

type Service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// Add puts quantity units of a product in the user's cart, merging into an
// existing line. Out-of-stock products cannot be added.
func (s *Service) Add(userID, productID, quantity int) error {
	if quantity < 1 {
		return apperr.New(apperr.Validation, "quantity must be at least 1")
	}
	p, err := s.catalog.GetByID(productID)
	if err != nil {
		return err
	}
	if !p.InStock {
		return apperr.New(apperr.Validation, "item "+p.Name+" is out of stock")
	}
	return s.repo.Add(userID, productID, quantity)
}

func (s *Service) SetQuantity(userID, productID, quantity int) error {
	if quantity < 1 {
		return apperr.New(apperr.Validation, "quantity must be at least 1")
	}
	return s.repo.SetQuantity(userID, productID, quantity)
}

func (s *Service) Remove(userID, productID int) error {
	return s.repo.Remove(userID, productID)
}

func (s *Service) Clear(userID int) error {
	return s.repo.Clear(userID)
}

// Get returns the cart enriched with catalog details and live prices, plus
// the running subtotal. Lines whose product has been deleted are skipped.
func (s *Service) Get(ctx context.Context, userID int) ([]Line, float64, error) {
	items, err := s.repo.List(userID)
	if err != nil {
		return nil, 0, err
	}

	lines := make([]Line, 0, len(items))
	var subtotal float64
	for _, it := range items {
		p, err := s.catalog.GetByID(it.ProductID)
		if err != nil {
			continue
		}
		price, err := s.catalog.LivePrice(ctx, p)
		if err != nil {
			return nil, 0, err
		}
		line := Line{
			ProductID: p.ID,
			Name:      p.Name,
			Code:      p.Code,
			Images:    p.Images,
			InStock:   p.InStock,
			Quantity:  it.Quantity,
			UnitPrice: price,
			LineTotal: pricing.Round2(price * float64(it.Quantity)),
		}
		lines = append(lines, line)
		subtotal += price * float64(it.Quantity)
	}
	return lines, pricing.Round2(subtotal), nil
}
