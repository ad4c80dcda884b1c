package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"bought-tab/internal/model"

	"github.com/rs/zerolog"
)

// maxLineBytes bounds a single seed record.
const maxLineBytes = 4 * 1024 * 1024

// decode reads gzipped JSON lines of {"product_id": "...", "content": "..."}.
// Blank lines are ignored; undecodable lines are counted as malformed.
func decode(ctx context.Context, r io.Reader, logger zerolog.Logger) (*Batch, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	batch := &Batch{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec model.TabContentRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			logger.Warn().Err(err).Int("line", lineNo).Msg("skipping undecodable seed line")
			batch.Malformed++
			continue
		}
		if rec.ProductID == "" {
			logger.Warn().Int("line", lineNo).Msg("skipping seed line without product_id")
			batch.Malformed++
			continue
		}

		batch.Records = append(batch.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}

	return batch, nil
}
