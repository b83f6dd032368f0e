package carousel

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/imagestore"
)

type Service struct {
	repo   Repository
	images imagestore.Store
	log    *zap.SugaredLogger
}

func NewService(repo Repository, images imagestore.Store, log *zap.SugaredLogger) *Service {
	return &Service{repo: repo, images: images, log: log}
}

// List serves the public carousel: active slides in sort order.
func (s *Service) List() ([]Slide, error) {
	return s.repo.List(true)
}

func (s *Service) ListAll() ([]Slide, error) {
	return s.repo.List(false)
}

func validate(sl Slide) error {
	if strings.TrimSpace(sl.Title) == "" {
		return apperr.New(apperr.Validation, "slide title is required")
	}
	if sl.ImageURL == "" {
		return apperr.New(apperr.Validation, "slide image is required")
	}
	return nil
}

func (s *Service) Create(sl Slide) (Slide, error) {
	if err := validate(sl); err != nil {
		return Slide{}, err
	}
	sl.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(sl)
}

func (s *Service) Update(id int, sl Slide) (Slide, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Slide{}, err
	}
	sl.ID = id
	sl.CreatedAt = existing.CreatedAt
	if sl.ImageURL == "" {
		sl.ImageURL = existing.ImageURL
	}
	if err := validate(sl); err != nil {
		return Slide{}, err
	}
	if err := s.repo.Update(sl); err != nil {
		return Slide{}, err
	}
	return sl, nil
}

// Delete removes the slide and then cleans up its image; image cleanup is
// best effort.
func (s *Service) Delete(ctx context.Context, id int) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if s.images != nil && existing.ImageURL != "" {
		if err := s.images.Delete(ctx, existing.ImageURL); err != nil {
			s.log.Warnw("slide image cleanup failed", "slideId", id, "error", err)
		}
	}
	return nil
}
