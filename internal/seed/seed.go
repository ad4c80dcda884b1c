// Package seed bulk-imports bought tab content from gzipped JSON-lines files
// stored locally or in S3.
package seed

import (
	"context"

	"bought-tab/internal/model"
)

// Batch is the decoded content of one seed file.
type Batch struct {
	Records []model.TabContentRecord
	// Malformed counts lines that could not be decoded or had no product id.
	Malformed int
}

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped JSON-lines seed file.
	Load(ctx context.Context, path string) (*Batch, error)
}
