package rate

import (
	"context"
	"time"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/pricing"
)

const defaultHistoryLimit = 30

type Service struct {
	repo  Repository
	cache *Cache
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetLatest returns the current silver rate. When nothing has ever been
// recorded it seeds the default entry and returns it, so callers always get
// a usable rate.
func (s *Service) GetLatest(ctx context.Context) (Rate, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	latest, err := s.repo.Latest()
	if err == ErrNoRate {
		seeded, seedErr := s.repo.Insert(Rate{
			PricePerGram: DefaultPricePerGram,
			Source:       SourceManual,
			Currency:     "INR",
			CapturedAt:   time.Now().UTC(),
		})
		if seedErr != nil {
			return Rate{}, seedErr
		}
		s.cache.Set(ctx, seeded)
		return seeded, nil
	}
	if err != nil {
		return Rate{}, err
	}

	s.cache.Set(ctx, latest)
	return latest, nil
}

// Record appends a new rate entry. Manual admin updates and the automatic
// refresher both come through here, so both get the same validation.
func (s *Service) Record(ctx context.Context, pricePerGram float64, source string) (Rate, error) {
	if pricePerGram <= 0 {
		return Rate{}, apperr.New(apperr.Validation, "invalid rate: price per gram must be positive")
	}
	if source != SourceManual && source != SourceAutomatic {
		return Rate{}, apperr.New(apperr.Validation, "invalid rate source")
	}

	created, err := s.repo.Insert(Rate{
		PricePerGram: pricing.Round2(pricePerGram),
		Source:       source,
		Currency:     "INR",
		CapturedAt:   time.Now().UTC(),
	})
	if err != nil {
		return Rate{}, err
	}

	s.cache.Invalidate(ctx)
	return created, nil
}

func (s *Service) History(limit int) ([]Rate, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.repo.History(limit)
}
