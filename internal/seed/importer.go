package seed

import (
	"context"
	"errors"
	"fmt"

	"bought-tab/internal/content"
	"bought-tab/internal/metrics"
	"bought-tab/internal/model"

	"github.com/rs/zerolog"
)

// Result summarises an import run.
type Result struct {
	Imported int
	Skipped  int
}

// Importer saves seed records through the content store.
type Importer struct {
	loader Loader
	store  content.Store
	logger zerolog.Logger
}

// NewImporter creates an importer reading with loader and writing to store.
func NewImporter(loader Loader, store content.Store, logger zerolog.Logger) *Importer {
	return &Importer{
		loader: loader,
		store:  store,
		logger: logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Import loads path and saves every record. Records rejected by the store
// (unknown product, oversized content) are skipped; any other store failure
// aborts the run.
func (i *Importer) Import(ctx context.Context, path string) (Result, error) {
	batch, err := i.loader.Load(ctx, path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load seed file: %w", err)
	}

	result := Result{Skipped: batch.Malformed}
	metrics.SeedRecords.WithLabelValues("skipped").Add(float64(batch.Malformed))

	for _, rec := range batch.Records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := i.store.Save(ctx, rec.ProductID, rec.Content); err != nil {
			var domainErr *model.DomainError
			if errors.As(err, &domainErr) {
				i.logger.Warn().
					Str("product_id", rec.ProductID).
					Str("code", domainErr.Code).
					Msg("skipping seed record")
				result.Skipped++
				metrics.SeedRecords.WithLabelValues("skipped").Inc()
				continue
			}
			return result, fmt.Errorf("failed to import content for product %s: %w", rec.ProductID, err)
		}

		result.Imported++
		metrics.SeedRecords.WithLabelValues("imported").Inc()
	}

	i.logger.Info().
		Str("path", path).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("seed import finished")

	return result, nil
}
