package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Foreign keys carry no ON DELETE clause: deleting a referenced row fails with
// SQLSTATE 23503 instead of cascading or orphaning.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS brands (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		catchphrase TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS product_categories (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		price       DOUBLE PRECISION NOT NULL,
		brand_id    BIGINT NOT NULL REFERENCES brands (id),
		description TEXT NOT NULL DEFAULT '',
		category_id BIGINT REFERENCES product_categories (id)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id      BIGSERIAL PRIMARY KEY,
		name    TEXT NOT NULL,
		email   TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers (id),
		items_json  TEXT NOT NULL DEFAULT '{}',
		cost        DOUBLE PRECISION NOT NULL DEFAULT 0,
		ordered_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		status      TEXT NOT NULL DEFAULT 'pending'
	)`,
	`CREATE TABLE IF NOT EXISTS product_reviews (
		id          BIGSERIAL PRIMARY KEY,
		review      TEXT NOT NULL,
		rating      DOUBLE PRECISION NOT NULL,
		product_id  BIGINT NOT NULL REFERENCES products (id),
		customer_id BIGINT REFERENCES customers (id)
	)`,
}

// EnsureSchema creates the storefront tables when they do not exist yet.
func EnsureSchema(ctx context.Context, conn TxBeginner) error {
	return WithTx(ctx, conn, func(tx pgx.Tx) error {
		for i, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("platform/db: schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
