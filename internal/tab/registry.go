// Package tab builds the extensible product tab list shown on product pages.
package tab

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"bought-tab/internal/metrics"
	"bought-tab/internal/model"

	"github.com/rs/zerolog"
)

// TabContext is what providers see while filtering the tab list.
type TabContext struct {
	Product model.Product
	Viewer  model.Viewer
}

// Provider contributes to or rewrites the tab list for a product page.
type Provider interface {
	Name() string
	Filter(ctx context.Context, tc TabContext, tabs model.TabList) model.TabList
}

// TabManagerPolicy is implemented by providers that forbid a tab-management
// extension from removing or reordering the tabs they own.
type TabManagerPolicy interface {
	TabManagerAllowed(key string) bool
}

// Registry runs providers in registration order and renders the result.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	logger    zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		logger: logger.With().Str("component", "tab_registry").Logger(),
	}
}

// Register appends a provider. Registering the same provider twice is a no-op.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.providers {
		if existing.Name() == p.Name() {
			r.logger.Warn().Str("provider", p.Name()).Msg("provider already registered")
			return
		}
	}
	r.providers = append(r.providers, p)
}

// Build filters the tab list through every provider and renders each tab.
// Tabs are returned by ascending priority, ties broken by key. A tab whose
// render callback fails is left out.
func (r *Registry) Build(ctx context.Context, product model.Product, viewer model.Viewer) []model.RenderedTab {
	r.mu.RLock()
	providers := slices.Clone(r.providers)
	r.mu.RUnlock()

	tc := TabContext{Product: product, Viewer: viewer}
	tabs := model.TabList{}
	for _, p := range providers {
		tabs = p.Filter(ctx, tc, tabs)
		if tabs == nil {
			tabs = model.TabList{}
		}
	}

	rendered := make([]model.RenderedTab, 0, len(tabs))
	for key, t := range tabs {
		if t.Render == nil {
			continue
		}
		body, err := t.Render(ctx)
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("tab", key).
				Str("product_id", product.ID).
				Msg("tab render failed, omitting tab")
			metrics.TabRenderFailures.WithLabelValues(key).Inc()
			continue
		}
		rendered = append(rendered, model.RenderedTab{
			Key:      key,
			Title:    t.Title,
			Priority: t.Priority,
			Content:  body,
			Managed:  managedAllowed(providers, key),
		})
	}

	slices.SortFunc(rendered, func(a, b model.RenderedTab) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})

	return rendered
}

// ManagedTabAllowed reports whether a tab-management extension may manage key.
func (r *Registry) ManagedTabAllowed(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return managedAllowed(r.providers, key)
}

func managedAllowed(providers []Provider, key string) bool {
	for _, p := range providers {
		if policy, ok := p.(TabManagerPolicy); ok && !policy.TabManagerAllowed(key) {
			return false
		}
	}
	return true
}
