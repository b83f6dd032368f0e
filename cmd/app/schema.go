package main

import "database/sql"

// ensureSchema creates the tables on first boot. Statements are idempotent;
// existing installations are untouched.
func ensureSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			phone TEXT,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			is_privileged BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS silver_rates (
			id SERIAL PRIMARY KEY,
			price_per_gram DOUBLE PRECISION NOT NULL,
			source TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'INR',
			captured_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			item_name TEXT NOT NULL,
			item_code TEXT NOT NULL UNIQUE,
			description TEXT,
			category TEXT NOT NULL DEFAULT 'all',
			base_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			net_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			gross_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			silver_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			making_charge_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			final_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			delivery_type TEXT,
			views INT NOT NULL DEFAULT 0,
			orders_count INT NOT NULL DEFAULT 0,
			wishlisted_count INT NOT NULL DEFAULT 0,
			images TEXT[] NOT NULL DEFAULT '{}',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS coupons (
			id SERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			discount_type TEXT NOT NULL,
			discount_value DOUBLE PRECISION NOT NULL,
			min_order_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			max_discount DOUBLE PRECISION,
			expires_at TIMESTAMPTZ NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			usage_limit INT,
			used_count INT NOT NULL DEFAULT 0,
			description TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			user_id INT NOT NULL,
			customer_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			shipping_address JSONB NOT NULL DEFAULT '{}',
			items JSONB NOT NULL DEFAULT '[]',
			additional_charges JSONB NOT NULL DEFAULT '[]',
			delivery_charge DOUBLE PRECISION NOT NULL DEFAULT 0,
			subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
			discount DOUBLE PRECISION NOT NULL DEFAULT 0,
			coupon_code TEXT,
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL,
			payment_status TEXT NOT NULL DEFAULT 'pending',
			order_status TEXT NOT NULL DEFAULT 'pending',
			payment_info JSONB NOT NULL DEFAULT '{}',
			tracking_number TEXT,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			user_id INT NOT NULL,
			product_id INT NOT NULL,
			quantity INT NOT NULL DEFAULT 1,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS wishlist_items (
			user_id INT NOT NULL,
			product_id INT NOT NULL,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			image TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS carousel_slides (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			subtitle TEXT,
			image_url TEXT NOT NULL,
			link_url TEXT,
			sort_order INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id SERIAL PRIMARY KEY,
			product_id INT NOT NULL,
			user_id INT NOT NULL,
			user_name TEXT NOT NULL DEFAULT '',
			rating INT NOT NULL,
			comment TEXT,
			created_at TEXT,
			UNIQUE (product_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews (product_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
