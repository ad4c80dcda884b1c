package repository

import (
	"context"

	"bought-tab/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines read access to the host product catalogue.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil, nil when the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// OrderRepository defines read access to host orders.
type OrderRepository interface {
	// ListByCustomer returns every order owned by customerID with the given status.
	// The result is not paginated.
	ListByCustomer(ctx context.Context, customerID string, status model.OrderStatus) ([]model.OrderRecord, error)

	// GetItems returns the line items of an order.
	GetItems(ctx context.Context, orderID uuid.UUID) ([]model.LineItemRecord, error)
}

// MetaRepository is the generic per-product attribute store.
type MetaRepository interface {
	// Get returns the value stored under key for a product and whether it was found.
	Get(ctx context.Context, productID, key string) (string, bool, error)

	// Set inserts or replaces the value stored under key for a product.
	Set(ctx context.Context, productID, key, value string) error

	// Delete removes the value stored under key for a product. Missing keys are not an error.
	Delete(ctx context.Context, productID, key string) error
}
