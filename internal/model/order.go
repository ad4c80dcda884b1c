package model

import (
	"github.com/google/uuid"
)

// OrderStatus is the fulfillment status of a host order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
)

// Valid reports whether s is one of the known host statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusOnHold,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded, OrderStatusFailed:
		return true
	}
	return false
}

// OrderRecord is an order row as stored by the host platform.
type OrderRecord struct {
	ID         uuid.UUID `db:"id"`
	CustomerID string    `db:"customer_id"`
	Status     string    `db:"status"`
}

// LineItemRecord is an order line as stored by the host platform.
// ProductID is nil when the host lost the product reference.
type LineItemRecord struct {
	ID        uuid.UUID `db:"id"`
	OrderID   uuid.UUID `db:"order_id"`
	ProductID *string   `db:"product_id"`
	Quantity  int       `db:"quantity"`
}

// Order is the read-only view of a host order used for purchase checks.
type Order struct {
	ID         uuid.UUID
	CustomerID string
	Status     OrderStatus
	Items      []LineItem
}

// LineItem references the product an order line represents.
type LineItem struct {
	ProductID string
}
