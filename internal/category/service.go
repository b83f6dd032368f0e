package category

import (
	"strings"
	"time"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Category, error) {
	return s.repo.List()
}

func (s *Service) Create(c Category) (Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return Category{}, apperr.New(apperr.Validation, "category name is required")
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	c.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// Slugify lowercases and dashes a display name into a URL-safe slug.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
