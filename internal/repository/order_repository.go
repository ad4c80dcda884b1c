package repository

import (
	"context"
	"fmt"

	"bought-tab/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface over the host order tables.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// ListByCustomer returns every order owned by customerID with the given status.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string, status model.OrderStatus) ([]model.OrderRecord, error) {
	query := `
		SELECT id, customer_id, status
		FROM orders
		WHERE customer_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, customerID, string(status))
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", customerID).
			Str("status", string(status)).
			Msg("failed to query customer orders")
		return nil, fmt.Errorf("failed to query customer orders: %w", err)
	}
	defer rows.Close()

	var orders []model.OrderRecord
	for rows.Next() {
		var o model.OrderRecord
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", customerID).
		Str("status", string(status)).
		Int("count", len(orders)).
		Msg("listed customer orders")

	return orders, nil
}

// GetItems returns the line items of an order.
func (r *orderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]model.LineItemRecord, error) {
	query := `
		SELECT id, order_id, product_id, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.LineItemRecord
	for rows.Next() {
		var item model.LineItemRecord
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}
