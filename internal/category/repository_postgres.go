package category

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery = `
		SELECT id, name, slug, image, created_at
		FROM categories
		ORDER BY name ASC
	`
	getCategoryBySlugQuery = `
		SELECT id, name, slug, image, created_at
		FROM categories
		WHERE slug = $1
	`
	insertCategoryQuery = `
		INSERT INTO categories (name, slug, image, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCategory(row interface{ Scan(...any) error }) (Category, error) {
	var c Category
	var image sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &image, &c.CreatedAt); err != nil {
		return Category{}, err
	}
	c.Image = image.String
	return c, nil
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetBySlug(slug string) (Category, error) {
	c, err := scanCategory(r.db.QueryRow(getCategoryBySlugQuery, slug))
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(c Category) (Category, error) {
	err := r.db.QueryRow(insertCategoryQuery, c.Name, c.Slug, c.Image, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			return Category{}, ErrSlugExists
		}
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteCategoryQuery, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
