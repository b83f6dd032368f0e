package review

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listReviewsQuery = `
		SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
	`
	getReviewQuery = `
		SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE id = $1
	`
	insertReviewQuery = `
		INSERT INTO reviews (product_id, user_id, user_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	deleteReviewQuery = `DELETE FROM reviews WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanReview(row interface{ Scan(...any) error }) (Review, error) {
	var rv Review
	var comment sql.NullString
	err := row.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.UserName,
		&rv.Rating, &comment, &rv.CreatedAt)
	if err != nil {
		return Review{}, err
	}
	rv.Comment = comment.String
	return rv, nil
}

func (r *PostgresRepository) ListByProduct(productID int) ([]Review, error) {
	rows, err := r.db.Query(listReviewsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			continue
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Review, error) {
	rv, err := scanReview(r.db.QueryRow(getReviewQuery, id))
	if err == sql.ErrNoRows {
		return Review{}, ErrNotFound
	}
	if err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) Create(rv Review) (Review, error) {
	// unique (product_id, user_id) enforces one review per buyer
	err := r.db.QueryRow(insertReviewQuery, rv.ProductID, rv.UserID,
		rv.UserName, rv.Rating, rv.Comment, rv.CreatedAt).Scan(&rv.ID)
	if err != nil {
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			return Review{}, ErrAlreadyReviewed
		}
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteReviewQuery, id)
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
