// Package report renders the static HTML report from the price history.
package report

import (
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pricewatch/internal/models"
	"pricewatch/internal/storage"
)

// HistoryRow is one snapshot of a model's series, pre-formatted for the
// template.
type HistoryRow struct {
	When  string
	Price string
}

// ModelHistory is one tracked model's snapshots ordered by capture time.
type ModelHistory struct {
	Model string
	Rows  []HistoryRow
}

// LatestEntry is a model's most recent snapshot plus its price delta against
// the previous snapshot, when one exists.
type LatestEntry struct {
	models.Snapshot
	Delta        *decimal.Decimal
	PriceDisplay string
	DeltaDisplay string
	ImageFile    string
}

// Context is the data handed to the report template.
type Context struct {
	ByModel     []ModelHistory
	Latest      []LatestEntry
	LastUpdated string
}

// PrepareContext groups the history per model and computes the latest state.
// Model groups are ordered lexicographically so rendering is deterministic.
func PrepareContext(rows []models.Snapshot) Context {
	grouped := make(map[string][]models.Snapshot)
	for _, r := range rows {
		grouped[r.Model] = append(grouped[r.Model], r)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}

	sort.Strings(names)

	var (
		ctx         Context
		lastUpdated time.Time
	)

	for _, name := range names {
		series := grouped[name]
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Timestamp.Before(series[j].Timestamp)
		})

		hist := ModelHistory{Model: name, Rows: make([]HistoryRow, 0, len(series))}
		for _, s := range series {
			hist.Rows = append(hist.Rows, HistoryRow{
				When:  s.Timestamp.UTC().Format(time.RFC3339),
				Price: s.Price.StringFixed(2) + " " + s.Currency,
			})
		}

		ctx.ByModel = append(ctx.ByModel, hist)

		current := series[len(series)-1]
		entry := LatestEntry{
			Snapshot:     current,
			PriceDisplay: current.Price.StringFixed(2) + " " + current.Currency,
		}

		if len(series) > 1 {
			prev := series[len(series)-2]
			delta := current.Price.Sub(prev.Price).Round(2)
			entry.Delta = &delta
			entry.DeltaDisplay = delta.StringFixed(2)

			if !delta.IsNegative() {
				entry.DeltaDisplay = "+" + entry.DeltaDisplay
			}
		}

		if current.ImagePath != "" {
			entry.ImageFile = filepath.Base(current.ImagePath)
		}

		ctx.Latest = append(ctx.Latest, entry)

		if last := current.Timestamp; last.After(lastUpdated) {
			lastUpdated = last
		}
	}

	if !lastUpdated.IsZero() {
		ctx.LastUpdated = lastUpdated.UTC().Format(time.RFC3339)
	}

	return ctx
}

// Render loads the persisted dataset and writes the HTML report. A styles.css
// next to the template is copied beside the output so the report is
// self-contained.
func Render(jsonPath, outHTML, templatesDir string) error {
	rows, err := storage.ReadJSONIfExists(jsonPath)
	if err != nil {
		return err
	}

	ctx := PrepareContext(rows)

	tpl, err := template.ParseFiles(filepath.Join(templatesDir, "index.html.tmpl"))
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outHTML), 0755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}

	f, err := os.Create(outHTML)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", outHTML, err)
	}

	if err := tpl.Execute(f, ctx); err != nil {
		f.Close()

		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report %s: %w", outHTML, err)
	}

	return copyStylesheet(templatesDir, filepath.Dir(outHTML))
}

func copyStylesheet(templatesDir, outDir string) error {
	css, err := os.ReadFile(filepath.Join(templatesDir, "styles.css"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read stylesheet: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, "styles.css"), css, 0644); err != nil {
		return fmt.Errorf("failed to copy stylesheet: %w", err)
	}

	return nil
}
