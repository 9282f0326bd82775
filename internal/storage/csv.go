package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"pricewatch/internal/models"
)

// WriteCSV rewrites the CSV export with the fixed column header followed by
// one row per snapshot.
func WriteCSV(path string, rows []models.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export %s: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(models.CSVColumns); err != nil {
		f.Close()

		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		if err := w.Write(row.CSVRecord()); err != nil {
			f.Close()

			return fmt.Errorf("failed to write CSV row for %s: %w", row.Model, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()

		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export %s: %w", path, err)
	}

	return nil
}
