package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"bought-tab/internal/model"
	"bought-tab/internal/seed"
)

// Writes a sample tab content seed for local development.
// Product 42 carries the bonus guide, product 43 has no content and
// therefore never shows the bought tab.
func main() {
	dataDir := "data/seeds"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	records := []model.TabContentRecord{
		{ProductID: "5", Content: "Download link: https://downloads.example.com/5"},
		{ProductID: "9", Content: "Setup notes &amp; serial number are in your account page."},
		{ProductID: "42", Content: "Bonus guide: chapters 1-12 with worked examples."},
		{ProductID: "43", Content: ""},
	}

	path := filepath.Join(dataDir, "bought_tab.jsonl.gz")

	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	if err := seed.Encode(file, records); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}

	fmt.Printf("Created %s with %d records\n", path, len(records))
	fmt.Println("\nImport it with SEED_FILE=" + path)
}
