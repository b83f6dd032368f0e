package review

import (
	"strings"
	"time"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/pricing"
	"github.com/novarajewels/jewellery-backend/internal/product"
	"github.com/novarajewels/jewellery-backend/internal/user"
)

// Catalog is satisfied by *product.Service; reviews only attach to products
// that exist.
type Catalog interface {
	GetByID(id int) (product.Product, error)
}

// Users resolves the display name stamped on a review; satisfied by
// *user.Service.
type Users interface {
	GetByID(id int) (user.User, error)
}

type Service struct {
	repo    Repository
	catalog Catalog
	users   Users
}

func NewService(repo Repository, catalog Catalog, users Users) *Service {
	return &Service{repo: repo, catalog: catalog, users: users}
}

// ListByProduct returns a product's reviews and their average rating,
// rounded to two decimals.
func (s *Service) ListByProduct(productID int) ([]Review, float64, error) {
	reviews, err := s.repo.ListByProduct(productID)
	if err != nil {
		return nil, 0, err
	}
	if len(reviews) == 0 {
		return reviews, 0, nil
	}
	var sum float64
	for _, rv := range reviews {
		sum += float64(rv.Rating)
	}
	return reviews, pricing.Round2(sum / float64(len(reviews))), nil
}

func (s *Service) Create(rv Review) (Review, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return Review{}, apperr.New(apperr.Validation, "rating must be between 1 and 5")
	}
	rv.Comment = strings.TrimSpace(rv.Comment)
	if _, err := s.catalog.GetByID(rv.ProductID); err != nil {
		return Review{}, err
	}
	if rv.UserName == "" {
		if u, err := s.users.GetByID(rv.UserID); err == nil {
			rv.UserName = u.Name
		}
	}
	rv.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(rv)
}

// Delete removes a review; only its author or an admin may do so, which the
// caller asserts by passing allowAny.
func (s *Service) Delete(id, userID int, allowAny bool) error {
	rv, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !allowAny && rv.UserID != userID {
		return apperr.New(apperr.Forbidden, "not your review")
	}
	return s.repo.Delete(id)
}
