package order

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const orderColumns = `id, order_number, user_id, customer_name, email, phone,
	       shipping_address, items, additional_charges, delivery_charge,
	       subtotal, discount, coupon_code, total_amount, payment_method,
	       payment_status, order_status, payment_info, tracking_number,
	       notes, created_at, updated_at`

const (
	getOrderByIDQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	listAllOrdersQuery = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`

	listUserOrdersQuery = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	insertOrderQuery = `
		INSERT INTO orders (order_number, user_id, customer_name, email, phone,
		                    shipping_address, items, additional_charges, delivery_charge,
		                    subtotal, discount, coupon_code, total_amount, payment_method,
		                    payment_status, order_status, payment_info, tracking_number,
		                    notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,NOW(),NOW())
		RETURNING id
	`

	updateOrderAdminQuery = `
		UPDATE orders
		SET order_status = $2, tracking_number = $3, notes = $4,
		    additional_charges = $5, total_amount = $6, updated_at = NOW()
		WHERE id = $1
	`

	deleteOrderQuery = `DELETE FROM orders WHERE id = $1`

	// The pending guard is part of the statement itself; whichever of two
	// concurrent verifications runs second matches zero rows.
	transitionPaymentQuery = `
		UPDATE orders
		SET payment_status = $2, order_status = $3, payment_info = $4, updated_at = NOW()
		WHERE id = $1 AND payment_status = 'pending'
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var address, items, charges, info []byte
	var couponCode, tracking, notes sql.NullString
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerName, &o.Email,
		&o.Phone, &address, &items, &charges, &o.DeliveryCharge,
		&o.Subtotal, &o.Discount, &couponCode, &o.TotalAmount, &o.PaymentMethod,
		&o.PaymentStatus, &o.OrderStatus, &info, &tracking,
		&notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return Order{}, err
	}
	if len(charges) > 0 {
		if err := json.Unmarshal(charges, &o.AdditionalCharges); err != nil {
			return Order{}, err
		}
	}
	if len(info) > 0 {
		if err := json.Unmarshal(info, &o.PaymentInfo); err != nil {
			return Order{}, err
		}
	}
	if couponCode.Valid {
		o.CouponCode = &couponCode.String
	}
	o.TrackingNumber = tracking.String
	o.Notes = notes.String
	return o, nil
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	address, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return Order{}, err
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, err
	}
	charges, err := json.Marshal(o.AdditionalCharges)
	if err != nil {
		return Order{}, err
	}
	info, err := json.Marshal(o.PaymentInfo)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(insertOrderQuery,
		o.OrderNumber, o.UserID, o.CustomerName, o.Email, o.Phone,
		address, items, charges, o.DeliveryCharge,
		o.Subtotal, o.Discount, o.CouponCode, o.TotalAmount, o.PaymentMethod,
		o.PaymentStatus, o.OrderStatus, info, o.TrackingNumber, o.Notes,
	).Scan(&o.ID)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.list(listAllOrdersQuery)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.list(listUserOrdersQuery, userID)
}

func (r *PostgresRepository) list(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			continue
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateAdminFields(o Order) error {
	charges, err := json.Marshal(o.AdditionalCharges)
	if err != nil {
		return err
	}

	res, err := r.db.Exec(updateOrderAdminQuery,
		o.ID, o.OrderStatus, o.TrackingNumber, o.Notes, charges, o.TotalAmount)
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

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteOrderQuery, id)
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

func (r *PostgresRepository) TransitionPayment(id int, paymentStatus, orderStatus string, info PaymentInfo) (bool, error) {
	encoded, err := json.Marshal(info)
	if err != nil {
		return false, err
	}

	res, err := r.db.Exec(transitionPaymentQuery, id, paymentStatus, orderStatus, encoded)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
