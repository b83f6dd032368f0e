package coupon

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getCouponByCodeQuery = `
		SELECT id, code, discount_type, discount_value, min_order_amount,
		       max_discount, expires_at, is_active, usage_limit, used_count,
		       description, created_at
		FROM coupons
		WHERE code = $1
	`
	listCouponsQuery = `
		SELECT id, code, discount_type, discount_value, min_order_amount,
		       max_discount, expires_at, is_active, usage_limit, used_count,
		       description, created_at
		FROM coupons
		ORDER BY created_at DESC
	`
	insertCouponQuery = `
		INSERT INTO coupons (code, discount_type, discount_value, min_order_amount,
		                     max_discount, expires_at, is_active, usage_limit,
		                     used_count, description, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,0,$9,$10)
		RETURNING id
	`
	deleteCouponQuery = `DELETE FROM coupons WHERE id = $1`

	// The limit guard lives in the same statement as the increment, so two
	// concurrent redemptions of the last slot cannot both succeed.
	incrementUsageQuery = `
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE code = $1
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoupon(row rowScanner) (Coupon, error) {
	var c Coupon
	var maxDiscount sql.NullFloat64
	var usageLimit sql.NullInt64
	var description sql.NullString
	err := row.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue,
		&c.MinOrderAmount, &maxDiscount, &c.ExpiresAt, &c.IsActive,
		&usageLimit, &c.UsedCount, &description, &c.CreatedAt)
	if err != nil {
		return Coupon{}, err
	}
	if maxDiscount.Valid {
		c.MaxDiscount = &maxDiscount.Float64
	}
	if usageLimit.Valid {
		limit := int(usageLimit.Int64)
		c.UsageLimit = &limit
	}
	if description.Valid {
		c.Description = description.String
	}
	return c, nil
}

func (r *PostgresRepository) GetByCode(code string) (Coupon, error) {
	c, err := scanCoupon(r.db.QueryRow(getCouponByCodeQuery, code))
	if err == sql.ErrNoRows {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		return Coupon{}, err
	}
	return c, nil
}

func (r *PostgresRepository) List() ([]Coupon, error) {
	rows, err := r.db.Query(listCouponsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Coupon, 0)
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(c Coupon) (Coupon, error) {
	err := r.db.QueryRow(insertCouponQuery,
		c.Code, c.DiscountType, c.DiscountValue, c.MinOrderAmount,
		c.MaxDiscount, c.ExpiresAt, c.IsActive, c.UsageLimit,
		c.Description, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			return Coupon{}, ErrCodeExists
		}
		return Coupon{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteCouponQuery, id)
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

func (r *PostgresRepository) IncrementUsage(code string) error {
	res, err := r.db.Exec(incrementUsageQuery, code)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// either the code is gone or the guard failed; distinguish for the caller
		if _, err := r.GetByCode(code); err != nil {
			return err
		}
		return ErrLimitExhausted
	}
	return nil
}
