package category

import (
	"testing"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Rings", "rings"},
		{"Silver Anklets", "silver-anklets"},
		{"  Toe Rings & Bands  ", "toe-rings-bands"},
		{"925", "925"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreate_DerivesSlugAndRejectsDuplicates(t *testing.T) {
	s := NewService(NewInMemoryRepository(nil))

	created, err := s.Create(Category{Name: "Silver Anklets"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Slug != "silver-anklets" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}

	if _, err := s.Create(Category{Name: "Silver Anklets"}); apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := s.Create(Category{Name: "   "}); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
