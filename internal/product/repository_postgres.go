package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `
	id, item_name, item_code, description, category, base_price,
	net_weight, gross_weight, silver_weight, making_charge_rate,
	final_price, in_stock, delivery_type, views, orders_count,
	wishlisted_count, images, created_at, updated_at
`

const (
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	getProductByCodeQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE item_code = $1
	`
	insertProductQuery = `
		INSERT INTO products (
			item_name, item_code, description, category, base_price,
			net_weight, gross_weight, silver_weight, making_charge_rate,
			final_price, in_stock, delivery_type, images, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`
	updateProductQuery = `
		UPDATE products
		SET item_name = $1,
			item_code = $2,
			description = $3,
			category = $4,
			base_price = $5,
			net_weight = $6,
			gross_weight = $7,
			silver_weight = $8,
			making_charge_rate = $9,
			final_price = $10,
			in_stock = $11,
			delivery_type = $12,
			images = $13,
			updated_at = $14
		WHERE id = $15
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
	randomProductQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY random()
		LIMIT $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var description, deliveryType sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.Code, &description, &p.Category, &p.BasePrice,
		&p.Weight.NetWeight, &p.Weight.GrossWeight, &p.Weight.SilverWeight,
		&p.MakingChargeRate, &p.StoredFinalPrice, &p.InStock, &deliveryType,
		&p.Views, &p.OrdersCount, &p.WishlistedCount, pq.Array(&p.Images),
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	if description.Valid {
		p.Description = description.String
	}
	if deliveryType.Valid {
		p.DeliveryType = deliveryType.String
	}
	return p, nil
}

func (r *PostgresRepository) List(f Filter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	conds := []string{}
	args := []any{}

	if f.Category != "" && f.Category != "all" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.InStock != nil {
		args = append(args, *f.InStock)
		conds = append(conds, fmt.Sprintf("in_stock = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(item_name ILIKE $%d OR item_code ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) GetByCode(code string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByCodeQuery, code))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Code, p.Description, p.Category, p.BasePrice,
		p.Weight.NetWeight, p.Weight.GrossWeight, p.Weight.SilverWeight,
		p.MakingChargeRate, p.StoredFinalPrice, p.InStock, p.DeliveryType,
		pq.Array(p.Images), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, ErrCodeExists
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Name, p.Code, p.Description, p.Category, p.BasePrice,
		p.Weight.NetWeight, p.Weight.GrossWeight, p.Weight.SilverWeight,
		p.MakingChargeRate, p.StoredFinalPrice, p.InStock, p.DeliveryType,
		pq.Array(p.Images), p.UpdatedAt, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, ErrCodeExists
		}
		return Product{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
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

func (r *PostgresRepository) Random(limit int) ([]Product, error) {
	rows, err := r.db.Query(randomProductQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) IncrementViews(id int) error {
	_, err := r.db.Exec(`UPDATE products SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) IncrementOrdered(id int, by int) error {
	_, err := r.db.Exec(`UPDATE products SET orders_count = orders_count + $1 WHERE id = $2`, by, id)
	return err
}

func (r *PostgresRepository) IncrementWishlisted(id int, by int) error {
	_, err := r.db.Exec(`UPDATE products SET wishlisted_count = wishlisted_count + $1 WHERE id = $2`, by, id)
	return err
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	// pgx stdlib reports the SQLSTATE in the message
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
