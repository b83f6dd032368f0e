package carousel

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/imagestore"
)

func testService() (*Service, *imagestore.InMemory) {
	images := imagestore.NewInMemory()
	return NewService(NewInMemoryRepository(nil), images, zap.NewNop().Sugar()), images
}

func TestList_OnlyActiveInSortOrder(t *testing.T) {
	s, _ := testService()

	for _, sl := range []Slide{
		{Title: "Second", ImageURL: "https://img.test/2.jpg", SortOrder: 2, IsActive: true},
		{Title: "Hidden", ImageURL: "https://img.test/x.jpg", SortOrder: 0, IsActive: false},
		{Title: "First", ImageURL: "https://img.test/1.jpg", SortOrder: 1, IsActive: true},
	} {
		if _, err := s.Create(sl); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	slides, err := s.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("expected 2 active slides, got %d", len(slides))
	}
	if slides[0].Title != "First" || slides[1].Title != "Second" {
		t.Fatalf("wrong ordering: %s, %s", slides[0].Title, slides[1].Title)
	}
}

func TestCreate_RequiresTitleAndImage(t *testing.T) {
	s, _ := testService()

	if _, err := s.Create(Slide{ImageURL: "https://img.test/1.jpg"}); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected validation error without title, got %v", err)
	}
	if _, err := s.Create(Slide{Title: "Sale"}); apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected validation error without image, got %v", err)
	}
}

func TestDelete_CleansUpImage(t *testing.T) {
	s, images := testService()

	created, err := s.Create(Slide{Title: "Sale", ImageURL: "https://img.test/sale.jpg", IsActive: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := s.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(images.Deleted) != 1 || images.Deleted[0] != "https://img.test/sale.jpg" {
		t.Fatalf("expected image cleanup, got %v", images.Deleted)
	}
	if err := s.Delete(context.Background(), created.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
