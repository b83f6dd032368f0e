package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "item_name", "item_code", "description", "category", "base_price",
		"net_weight", "gross_weight", "silver_weight", "making_charge_rate",
		"final_price", "in_stock", "delivery_type", "views", "orders_count",
		"wishlisted_count", "images", "created_at", "updated_at",
	})
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().AddRow(
		7, "Silver Anklet", "ANK-001", "daily wear", "anklets", 500.0,
		10.0, 12.5, 10.0, 50.0,
		1620.0, true, "ready-to-ship", 3, 1,
		2, "{https://img.test/a.jpg}", "t", "u",
	)
	mock.ExpectQuery("FROM products").WithArgs(7).WillReturnRows(rows)

	p, err := repo.GetByID(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Code != "ANK-001" || p.Weight.NetWeight != 10 {
		t.Fatalf("unexpected product %+v", p)
	}
	if len(p.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(p.Images))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products").WithArgs(99).WillReturnRows(productRows())

	if _, err := repo.GetByID(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresList_WithFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().AddRow(
		1, "Silver Ring", "RNG-1", "", "rings", 300.0,
		0.0, 0.0, 0.0, 0.0,
		270.0, true, "", 0, 0,
		0, "{https://img.test/r.jpg}", "t", "u",
	)
	mock.ExpectQuery("category = \\$1").WithArgs("rings", true).WillReturnRows(rows)

	inStock := true
	out, err := repo.List(Filter{Category: "rings", InStock: &inStock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Code != "RNG-1" {
		t.Fatalf("unexpected result %+v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresIncrementViews(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("views = views \\+ 1").WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.IncrementViews(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
