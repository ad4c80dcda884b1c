package tab

import (
	"context"

	"bought-tab/internal/config"
	"bought-tab/internal/content"
	"bought-tab/internal/metrics"
	"bought-tab/internal/model"
	"bought-tab/internal/purchase"

	"github.com/rs/zerolog"
)

// BoughtKey is the tab key of the purchase-gated tab.
const BoughtKey = "bought_product_tab"

// BoughtTab adds a tab whose body is only shown to viewers who bought the product.
type BoughtTab struct {
	content     content.Store
	verifier    purchase.Verifier
	title       string
	priority    int
	placeholder string
	logger      zerolog.Logger
}

// NewBoughtTab creates the provider. Empty settings fall back to the defaults.
func NewBoughtTab(store content.Store, verifier purchase.Verifier, cfg config.TabConfig, logger zerolog.Logger) *BoughtTab {
	b := &BoughtTab{
		content:     store,
		verifier:    verifier,
		title:       cfg.Title,
		priority:    cfg.Priority,
		placeholder: cfg.Placeholder,
		logger:      logger.With().Str("component", "bought_tab").Logger(),
	}
	if b.title == "" {
		b.title = config.DefaultTabTitle
	}
	if b.priority == 0 {
		b.priority = config.DefaultTabPriority
	}
	if b.placeholder == "" {
		b.placeholder = config.DefaultTabPlaceholder
	}
	return b
}

func (b *BoughtTab) Name() string { return BoughtKey }

// Filter adds the bought tab when the product has content. A content lookup
// failure hides the tab for this request.
func (b *BoughtTab) Filter(ctx context.Context, tc TabContext, tabs model.TabList) model.TabList {
	body, err := b.content.Get(ctx, tc.Product.ID)
	if err != nil {
		b.logger.Error().Err(err).Str("product_id", tc.Product.ID).Msg("failed to load tab content, hiding tab")
		return tabs
	}
	if body == "" {
		return tabs
	}

	if tabs == nil {
		tabs = model.TabList{}
	}

	productID := tc.Product.ID
	viewer := tc.Viewer
	tabs[BoughtKey] = model.Tab{
		Title:    b.title,
		Priority: b.priority,
		Render: func(ctx context.Context) (string, error) {
			if b.verifier.HasPurchased(ctx, viewer, []string{productID}) {
				metrics.TabRenders.WithLabelValues("unlocked").Inc()
				return body, nil
			}
			metrics.TabRenders.WithLabelValues("locked").Inc()
			return b.placeholder, nil
		},
	}
	return tabs
}

// TabManagerAllowed keeps tab managers away from the bought tab.
func (b *BoughtTab) TabManagerAllowed(key string) bool {
	return key != BoughtKey
}
