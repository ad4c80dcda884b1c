package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// metaRepository implements MetaRepository on the product_meta table.
type metaRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMetaRepository creates a new PostgreSQL-backed product attribute store.
func NewMetaRepository(pool *pgxpool.Pool, logger zerolog.Logger) MetaRepository {
	return &metaRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product_meta").Logger(),
	}
}

// Get returns the value stored under key for a product and whether it was found.
func (r *metaRepository) Get(ctx context.Context, productID, key string) (string, bool, error) {
	query := `
		SELECT meta_value
		FROM product_meta
		WHERE product_id = $1 AND meta_key = $2
	`

	var value string
	err := r.pool.QueryRow(ctx, query, productID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		r.logger.Error().
			Err(err).
			Str("product_id", productID).
			Str("meta_key", key).
			Msg("failed to query product meta")
		return "", false, fmt.Errorf("failed to query product meta: %w", err)
	}

	return value, true, nil
}

// Set inserts or replaces the value stored under key for a product.
func (r *metaRepository) Set(ctx context.Context, productID, key, value string) error {
	query := `
		INSERT INTO product_meta (product_id, meta_key, meta_value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_id, meta_key)
		DO UPDATE SET meta_value = EXCLUDED.meta_value, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, productID, key, value); err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", productID).
			Str("meta_key", key).
			Msg("failed to upsert product meta")
		return fmt.Errorf("failed to save product meta: %w", err)
	}

	r.logger.Debug().
		Str("product_id", productID).
		Str("meta_key", key).
		Int("bytes", len(value)).
		Msg("product meta saved")

	return nil
}

// Delete removes the value stored under key for a product.
func (r *metaRepository) Delete(ctx context.Context, productID, key string) error {
	query := `DELETE FROM product_meta WHERE product_id = $1 AND meta_key = $2`

	if _, err := r.pool.Exec(ctx, query, productID, key); err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", productID).
			Str("meta_key", key).
			Msg("failed to delete product meta")
		return fmt.Errorf("failed to delete product meta: %w", err)
	}

	return nil
}
