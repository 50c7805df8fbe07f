package repository

import (
	"context"
	"database/sql"
)

// Schema bootstrap, grouped by dependency order. The orders/payments tables
// are part of the storefront schema but no runtime path writes to them yet.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS guests (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		session_token VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS brands (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		logo_url VARCHAR(1000)
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		parent_id UUID REFERENCES categories(id)
	)`,

	`CREATE TABLE IF NOT EXISTS genders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		label VARCHAR(100) NOT NULL,
		slug VARCHAR(100) NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS colors (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		slug VARCHAR(100) NOT NULL UNIQUE,
		hex_code VARCHAR(7) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sizes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(50) NOT NULL,
		slug VARCHAR(50) NOT NULL UNIQUE,
		sort_order INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS collections (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		category_id UUID NOT NULL REFERENCES categories(id),
		gender_id UUID NOT NULL REFERENCES genders(id),
		brand_id UUID NOT NULL REFERENCES brands(id),
		is_published BOOLEAN NOT NULL DEFAULT FALSE,
		default_variant_id UUID,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS product_variants (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		sku VARCHAR(100) NOT NULL UNIQUE,
		price NUMERIC(10,2) NOT NULL,
		sale_price NUMERIC(10,2),
		color_id UUID NOT NULL REFERENCES colors(id),
		size_id UUID NOT NULL REFERENCES sizes(id),
		in_stock INTEGER NOT NULL DEFAULT 0,
		weight REAL NOT NULL,
		dimensions JSONB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS product_images (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		variant_id UUID REFERENCES product_variants(id) ON DELETE SET NULL,
		url VARCHAR(1000) NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		is_primary BOOLEAN NOT NULL DEFAULT FALSE
	)`,

	`CREATE TABLE IF NOT EXISTS product_collections (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		collection_id UUID NOT NULL REFERENCES collections(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS carts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE SET NULL,
		guest_id VARCHAR(255),
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	// At most one cart per owner; concurrent find-or-create relies on these.
	`CREATE UNIQUE INDEX IF NOT EXISTS carts_user_id_unique
		ON carts(user_id) WHERE user_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS carts_guest_id_unique
		ON carts(guest_id) WHERE guest_id IS NOT NULL`,

	`CREATE TABLE IF NOT EXISTS cart_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		cart_id UUID NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		product_variant_id UUID NOT NULL REFERENCES product_variants(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1)
	)`,

	// One line item per variant per cart; add/merge paths upsert against it.
	`CREATE UNIQUE INDEX IF NOT EXISTS cart_items_cart_variant_unique
		ON cart_items(cart_id, product_variant_id)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		user_id UUID REFERENCES users(id) ON DELETE SET NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		title TEXT,
		comment TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS addresses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		line1 VARCHAR(255) NOT NULL,
		line2 VARCHAR(255),
		city VARCHAR(255) NOT NULL,
		state VARCHAR(255) NOT NULL,
		country VARCHAR(255) NOT NULL,
		postal_code VARCHAR(20) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id),
		status VARCHAR(20) NOT NULL CHECK (status IN ('pending', 'paid', 'shipped', 'delivered', 'cancelled')),
		total_amount NUMERIC(10,2) NOT NULL,
		shipping_address_id UUID NOT NULL REFERENCES addresses(id),
		billing_address_id UUID NOT NULL REFERENCES addresses(id),
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_variant_id UUID NOT NULL REFERENCES product_variants(id),
		quantity INTEGER NOT NULL,
		price_at_purchase NUMERIC(10,2) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		method VARCHAR(20) NOT NULL CHECK (method IN ('stripe', 'paypal', 'cod')),
		status VARCHAR(20) NOT NULL CHECK (status IN ('initiated', 'completed', 'failed')),
		paid_at TIMESTAMP,
		transaction_id VARCHAR(255)
	)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
