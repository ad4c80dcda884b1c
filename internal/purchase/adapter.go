package purchase

import "bought-tab/internal/model"

// ToOrder translates a host order record and its line items into a model.Order.
// Line items without a product reference are dropped; the count of dropped
// items is returned so callers can report malformed host data.
func ToOrder(record model.OrderRecord, items []model.LineItemRecord) (model.Order, int) {
	order := model.Order{
		ID:         record.ID,
		CustomerID: record.CustomerID,
		Status:     model.OrderStatus(record.Status),
		Items:      make([]model.LineItem, 0, len(items)),
	}

	dropped := 0
	for _, item := range items {
		if item.ProductID == nil || *item.ProductID == "" {
			dropped++
			continue
		}
		order.Items = append(order.Items, model.LineItem{ProductID: *item.ProductID})
	}

	return order, dropped
}
