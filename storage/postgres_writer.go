package storage

import (
	"catalog-scraper/models"
	"catalog-scraper/utils"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	destination TEXT NOT NULL,
	position INT NOT NULL,
	name TEXT NOT NULL,
	current_price NUMERIC(14,2),
	initial_price NUMERIC(14,2),
	discount TEXT NOT NULL,
	reviews TEXT NOT NULL,
	stars TEXT NOT NULL,
	url TEXT NOT NULL,
	scraped_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_destination ON products(destination, scraped_at);
CREATE INDEX IF NOT EXISTS idx_products_current_price ON products(current_price);
`

const insertSQL = `
INSERT INTO products (destination, position, name, current_price, initial_price, discount, reviews, stars, url, scraped_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// PostgresWriter appends each run's products as one snapshot, stamped with
// the same scraped_at and keeping result order in position.
type PostgresWriter struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	now     func() time.Time
}

func NewPostgresWriter(ctx context.Context, databaseURL string) (*PostgresWriter, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	return &PostgresWriter{pool: pool, timeout: 30 * time.Second, now: time.Now}, nil
}

func (w *PostgresWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

func (w *PostgresWriter) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if _, err := w.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Write inserts all products in one transaction. An empty slice is a no-op.
func (w *PostgresWriter) Write(products []models.Product, destination string) error {
	if len(products) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	results := tx.SendBatch(ctx, buildInsertBatch(products, destination, w.now()))
	for i := range products {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	utils.Success("Saved %d products to PostgreSQL (%s)", len(products), destination)
	return nil
}

func buildInsertBatch(products []models.Product, destination string, scrapedAt time.Time) *pgx.Batch {
	batch := &pgx.Batch{}
	for i, p := range products {
		batch.Queue(
			insertSQL,
			destination,
			i+1,
			p.Name,
			p.CurrentPrice,
			p.InitialPrice,
			p.Discount,
			p.Reviews,
			p.Stars,
			p.URL,
			scrapedAt,
		)
	}
	return batch
}
