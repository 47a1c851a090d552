package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"capsule-os/logging"
)

// Open opens the Postgres connection pool and checks it with a ping
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().Msg("✓ Database connection established successfully")
	return conn, nil
}

// schemaStatements create the tables the service reads and writes
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		brand       TEXT NOT NULL,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL,
		price       NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		description TEXT NOT NULL DEFAULT '',
		colors      TEXT[] NOT NULL DEFAULT '{}',
		image_url   TEXT,
		link        TEXT,
		metadata    JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE INDEX IF NOT EXISTS idx_products_price ON products (price)`,
	`CREATE TABLE IF NOT EXISTS closet_items (
		id          BIGSERIAL PRIMARY KEY,
		user_id     TEXT NOT NULL,
		brand       TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL,
		color       TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		price       NUMERIC(10,2),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_closet_items_user ON closet_items (user_id)`,
	`CREATE TABLE IF NOT EXISTS product_reviews (
		id     BIGSERIAL PRIMARY KEY,
		brand  TEXT NOT NULL,
		name   TEXT NOT NULL,
		rating NUMERIC(2,1) NOT NULL CHECK (rating >= 0 AND rating <= 5),
		body   TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_product_reviews_brand_name ON product_reviews (lower(brand), lower(name))`,
}

// EnsureSchema creates missing tables and indexes
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
