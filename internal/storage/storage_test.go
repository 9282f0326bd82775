package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pricewatch/internal/models"
)

func sampleRows() []models.Snapshot {
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	return []models.Snapshot{
		{
			Timestamp:  ts,
			Source:     models.DefaultSource,
			Model:      "iphone_15",
			Title:      "iPhone 15",
			SKU:        "IP15-128",
			Currency:   models.DefaultCurrency,
			Price:      decimal.RequireFromString("799.00"),
			ProductURL: "https://example.com/iphone-15.html",
			ImageURL:   "https://example.com/img/iphone-15.png",
			ImagePath:  "docs/images/iphone_15.png",
		},
		{
			Timestamp:  ts,
			Source:     models.DefaultSource,
			Model:      "iphone_16",
			Title:      "iPhone 16",
			Currency:   models.DefaultCurrency,
			Price:      decimal.RequireFromString("899"),
			ProductURL: "https://example.com/iphone-16.html",
			ImageURL:   "https://example.com/img/iphone-16.png",
		},
	}
}

func TestReadJSONIfExists_MissingFile(t *testing.T) {
	rows, err := ReadJSONIfExists(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("ReadJSONIfExists returned unexpected error: %v", err)
	}

	if len(rows) != 0 {
		t.Fatalf("Expected empty history for missing file, got %d rows", len(rows))
	}
}

func TestReadJSONIfExists_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadJSONIfExists(path); err == nil {
		t.Fatal("Expected error for malformed dataset, got nil")
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prices.json")
	rows := sampleRows()

	if err := WriteJSON(path, rows, true); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	got, err := ReadJSONIfExists(path)
	if err != nil {
		t.Fatalf("ReadJSONIfExists failed: %v", err)
	}

	if len(got) != len(rows) {
		t.Fatalf("Round trip returned %d rows, want %d", len(got), len(rows))
	}

	for i := range rows {
		if !got[i].Timestamp.Equal(rows[i].Timestamp) {
			t.Errorf("row %d timestamp = %v, want %v", i, got[i].Timestamp, rows[i].Timestamp)
		}

		if !got[i].Price.Equal(rows[i].Price) {
			t.Errorf("row %d price = %s, want %s", i, got[i].Price, rows[i].Price)
		}

		if got[i].Model != rows[i].Model || got[i].SKU != rows[i].SKU {
			t.Errorf("row %d identity fields changed: %+v", i, got[i])
		}
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prices.csv")

	if err := WriteCSV(path, sampleRows()); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV back: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d records", len(records))
	}

	for i, col := range models.CSVColumns {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	if records[1][2] != "iphone_15" {
		t.Errorf("first data row = %v", records[1])
	}

	price, err := decimal.NewFromString(records[1][6])
	if err != nil || !price.Equal(decimal.RequireFromString("799")) {
		t.Errorf("exported price = %q, want value 799 (err=%v)", records[1][6], err)
	}
}
