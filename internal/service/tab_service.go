package service

import (
	"context"

	"bought-tab/internal/model"

	"github.com/rs/zerolog"
)

type tabService struct {
	products ProductService
	builder  TabBuilder
	logger   zerolog.Logger
}

// NewTabService creates a tab service resolving products through products.
func NewTabService(products ProductService, builder TabBuilder, logger zerolog.Logger) TabService {
	return &tabService{
		products: products,
		builder:  builder,
		logger:   logger.With().Str("service", "tab").Logger(),
	}
}

func (s *tabService) ProductTabs(ctx context.Context, productID string, viewer model.Viewer) ([]model.RenderedTab, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	tabs := s.builder.Build(ctx, *product, viewer)

	s.logger.Debug().
		Str("product_id", productID).
		Bool("anonymous", viewer.IsAnonymous()).
		Int("tabs", len(tabs)).
		Msg("rendered product tabs")

	return tabs, nil
}
