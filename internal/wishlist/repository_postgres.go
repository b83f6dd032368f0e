package wishlist

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listWishlistQuery = `
		SELECT product_id FROM wishlist_items
		WHERE user_id = $1
		ORDER BY added_at ASC
	`
	addWishlistQuery = `
		INSERT INTO wishlist_items (user_id, product_id, added_at)
		VALUES ($1, $2, NOW())
	`
	removeWishlistQuery = `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]int, error) {
	rows, err := r.db.Query(listWishlistQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int, 0)
	for rows.Next() {
		var productID int
		if err := rows.Scan(&productID); err != nil {
			continue
		}
		out = append(out, productID)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(userID, productID int) error {
	// the unique constraint on (user_id, product_id) enforces set semantics
	_, err := r.db.Exec(addWishlistQuery, userID, productID)
	if err != nil {
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			return ErrAlreadyListed
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) Remove(userID, productID int) error {
	res, err := r.db.Exec(removeWishlistQuery, userID, productID)
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
