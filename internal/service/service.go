package service

import (
	"context"

	"bought-tab/internal/model"
)

// ProductService defines read operations on the host catalogue.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// TabService assembles the product page tab list for a viewer.
type TabService interface {
	// ProductTabs renders every tab of a product as seen by viewer.
	ProductTabs(ctx context.Context, productID string, viewer model.Viewer) ([]model.RenderedTab, error)
}

// TabBuilder renders the tab list of a product. Satisfied by *tab.Registry.
type TabBuilder interface {
	Build(ctx context.Context, product model.Product, viewer model.Viewer) []model.RenderedTab
}
