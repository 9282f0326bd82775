// Package models defines the data records shared across the monitor pipeline.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Defaults applied when the catalog configuration leaves them out.
const (
	DefaultSource   = "github_pages_catalog"
	DefaultCurrency = "EUR"
)

// Snapshot is one scrape of one tracked product at one point in time.
// Every snapshot of the same run shares the run timestamp. Once a snapshot
// has been merged into history it is never mutated.
type Snapshot struct {
	Timestamp  time.Time       `json:"timestamp"`
	Source     string          `json:"source"`
	Model      string          `json:"model"`
	Title      string          `json:"title"`
	SKU        string          `json:"sku,omitempty"`
	Currency   string          `json:"currency"`
	Price      decimal.Decimal `json:"price_eur"`
	ProductURL string          `json:"product_url"`
	ImageURL   string          `json:"image_url"`
	ImagePath  string          `json:"image_path,omitempty"`
}

// CSVColumns is the fixed column order of the CSV export.
var CSVColumns = []string{
	"timestamp",
	"source",
	"model",
	"title",
	"sku",
	"currency",
	"price_eur",
	"product_url",
	"image_url",
	"image_path",
}

// CSVRecord returns the snapshot fields in CSVColumns order.
func (s Snapshot) CSVRecord() []string {
	return []string{
		s.Timestamp.UTC().Format(time.RFC3339Nano),
		s.Source,
		s.Model,
		s.Title,
		s.SKU,
		s.Currency,
		s.Price.String(),
		s.ProductURL,
		s.ImageURL,
		s.ImagePath,
	}
}
