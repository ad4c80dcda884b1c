// Package content stores the bought tab body as a product attribute.
package content

import (
	"context"
	"fmt"
	"strings"

	"bought-tab/internal/cache"
	"bought-tab/internal/model"
	"bought-tab/internal/repository"

	"github.com/rs/zerolog"
)

// MetaKey is the product attribute holding the bought tab content.
const MetaKey = "bought_product_tab_content"

// Identifiers the admin editor binds its field to.
const (
	EditorID  = "bought_product_tab_editor"
	FieldName = "bought_product_tab_input"
)

// Store reads and writes bought tab content.
type Store interface {
	// Get returns the stored content for productID, or "" when none is set.
	Get(ctx context.Context, productID string) (string, error)

	// Editor returns the admin editor payload with the content entity-decoded.
	Editor(ctx context.Context, productID string) (*model.TabEditor, error)

	// Save stores content verbatim. Empty content removes the attribute.
	Save(ctx context.Context, productID, content string) error
}

// editorDecoder reverses the special-character escaping applied by rich text editors.
var editorDecoder = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&#039;", "'",
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
)

// DecodeForEditor decodes &amp; &quot; &#039; &lt; and &gt; in a single pass.
// Other entities are left untouched.
func DecodeForEditor(s string) string {
	return editorDecoder.Replace(s)
}

type store struct {
	meta     repository.MetaRepository
	products repository.ProductRepository
	cache    *cache.LRU
	maxBytes int
	logger   zerolog.Logger
}

// NewStore creates a Store backed by the product attribute table.
// cache may be nil to disable read caching; maxBytes <= 0 disables the size limit.
func NewStore(
	meta repository.MetaRepository,
	products repository.ProductRepository,
	lru *cache.LRU,
	maxBytes int,
	logger zerolog.Logger,
) Store {
	return &store{
		meta:     meta,
		products: products,
		cache:    lru,
		maxBytes: maxBytes,
		logger:   logger.With().Str("service", "tab_content").Logger(),
	}
}

func (s *store) Get(ctx context.Context, productID string) (string, error) {
	if s.cache != nil {
		if value, ok := s.cache.Get(productID); ok {
			return value, nil
		}
	}

	value, _, err := s.meta.Get(ctx, productID, MetaKey)
	if err != nil {
		return "", fmt.Errorf("failed to load tab content: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(productID, value)
	}

	return value, nil
}

func (s *store) Editor(ctx context.Context, productID string) (*model.TabEditor, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	value, _, err := s.meta.Get(ctx, productID, MetaKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load tab content: %w", err)
	}

	return &model.TabEditor{
		ProductID: productID,
		Content:   DecodeForEditor(value),
		EditorID:  EditorID,
		FieldName: FieldName,
	}, nil
}

func (s *store) Save(ctx context.Context, productID, content string) error {
	if s.maxBytes > 0 && len(content) > s.maxBytes {
		s.logger.Warn().
			Str("product_id", productID).
			Int("bytes", len(content)).
			Int("max_bytes", s.maxBytes).
			Msg("rejecting oversized tab content")
		return model.ErrContentTooLarge
	}

	if err := s.ensureProduct(ctx, productID); err != nil {
		return err
	}

	if s.cache != nil {
		defer s.cache.Delete(productID)
	}

	if content == "" {
		if err := s.meta.Delete(ctx, productID, MetaKey); err != nil {
			return fmt.Errorf("failed to clear tab content: %w", err)
		}
		s.logger.Info().Str("product_id", productID).Msg("tab content cleared")
		return nil
	}

	if err := s.meta.Set(ctx, productID, MetaKey, content); err != nil {
		return fmt.Errorf("failed to save tab content: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID).
		Int("bytes", len(content)).
		Msg("tab content saved")

	return nil
}

func (s *store) ensureProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return model.ErrProductNotFound
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	return nil
}
