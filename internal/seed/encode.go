package seed

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"bought-tab/internal/model"
)

// Encode writes records as gzipped JSON lines readable by the loaders.
func Encode(w io.Writer, records []model.TabContentRecord) error {
	gzipWriter := gzip.NewWriter(w)
	encoder := json.NewEncoder(gzipWriter)
	encoder.SetEscapeHTML(false)

	for _, rec := range records {
		if err := encoder.Encode(rec); err != nil {
			gzipWriter.Close()
			return fmt.Errorf("failed to encode seed record %s: %w", rec.ProductID, err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip stream: %w", err)
	}
	return nil
}
