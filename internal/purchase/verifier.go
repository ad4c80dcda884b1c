// Package purchase answers whether a viewer has bought any of a set of products.
package purchase

import (
	"context"

	"bought-tab/internal/metrics"
	"bought-tab/internal/model"
	"bought-tab/internal/repository"

	"github.com/rs/zerolog"
)

// Verifier decides whether a viewer owns a completed purchase of a product.
type Verifier interface {
	// HasPurchased reports whether viewer has at least one completed order
	// containing any of productIDs. It never returns an error: any failure
	// to read the order store keeps the content locked.
	HasPurchased(ctx context.Context, viewer model.Viewer, productIDs []string) bool
}

// verifier implements Verifier over the host order store.
type verifier struct {
	orders repository.OrderRepository
	logger zerolog.Logger
}

// NewVerifier creates a purchase verifier reading from orders.
func NewVerifier(orders repository.OrderRepository, logger zerolog.Logger) Verifier {
	return &verifier{
		orders: orders,
		logger: logger.With().Str("component", "purchase_verifier").Logger(),
	}
}

// HasPurchased scans every completed order of the viewer and stops at the first match.
func (v *verifier) HasPurchased(ctx context.Context, viewer model.Viewer, productIDs []string) bool {
	if viewer.IsAnonymous() {
		metrics.PurchaseChecks.WithLabelValues("anonymous").Inc()
		return false
	}

	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	if len(wanted) == 0 {
		metrics.PurchaseChecks.WithLabelValues("empty").Inc()
		return false
	}

	logger := v.logger.With().Str("customer_id", viewer.CustomerID).Logger()

	records, err := v.orders.ListByCustomer(ctx, viewer.CustomerID, model.OrderStatusCompleted)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list completed orders, treating as not purchased")
		metrics.PurchaseChecks.WithLabelValues("error").Inc()
		return false
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Msg("purchase check cancelled")
			metrics.PurchaseChecks.WithLabelValues("error").Inc()
			return false
		}

		if model.OrderStatus(record.Status) != model.OrderStatusCompleted {
			continue
		}

		items, err := v.orders.GetItems(ctx, record.ID)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("order_id", record.ID.String()).
				Msg("skipping order whose items could not be loaded")
			metrics.SkippedRecords.WithLabelValues("order").Inc()
			continue
		}

		order, dropped := ToOrder(record, items)
		if dropped > 0 {
			logger.Warn().
				Str("order_id", record.ID.String()).
				Int("dropped", dropped).
				Msg("skipping line items without a product reference")
			metrics.SkippedRecords.WithLabelValues("line_item").Add(float64(dropped))
		}

		for _, item := range order.Items {
			if _, ok := wanted[item.ProductID]; ok {
				logger.Debug().
					Str("order_id", order.ID.String()).
					Str("product_id", item.ProductID).
					Msg("purchase found")
				metrics.PurchaseChecks.WithLabelValues("purchased").Inc()
				return true
			}
		}
	}

	logger.Debug().
		Int("orders", len(records)).
		Strs("product_ids", productIDs).
		Msg("no completed purchase found")
	metrics.PurchaseChecks.WithLabelValues("not_purchased").Inc()
	return false
}
