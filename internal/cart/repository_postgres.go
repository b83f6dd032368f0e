package cart

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCartQuery = `
		SELECT user_id, product_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at ASC
	`

	// merge-on-add lives in the statement; two concurrent adds of the same
	// product both land as increments
	addCartQuery = `
		INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	setQuantityQuery = `
		UPDATE cart_items SET quantity = $3
		WHERE user_id = $1 AND product_id = $2
	`

	removeCartQuery = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	clearCartQuery = `DELETE FROM cart_items WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]Item, error) {
	rows, err := r.db.Query(listCartQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.UserID, &it.ProductID, &it.Quantity); err != nil {
			continue
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(userID, productID, quantity int) error {
	_, err := r.db.Exec(addCartQuery, userID, productID, quantity)
	return err
}

func (r *PostgresRepository) SetQuantity(userID, productID, quantity int) error {
	res, err := r.db.Exec(setQuantityQuery, userID, productID, quantity)
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

func (r *PostgresRepository) Remove(userID, productID int) error {
	res, err := r.db.Exec(removeCartQuery, userID, productID)
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

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(clearCartQuery, userID)
	return err
}
