// Package formatter renders terminal summaries of the tracked catalog.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"pricewatch/internal/report"
)

const columnGap = "  "

// LatestTable renders the latest price per model as an aligned text table.
// Column widths use display width so titles with wide or combining runes
// still line up.
func LatestTable(entries []report.LatestEntry) string {
	rows := [][]string{{"MODEL", "TITLE", "PRICE", "DELTA"}}

	for _, e := range entries {
		delta := e.DeltaDisplay
		if delta == "" {
			delta = "-"
		}

		rows = append(rows, []string{e.Model, e.Title, e.PriceDisplay, delta})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	for idx, row := range rows {
		writeRow(&b, row, widths)

		if idx == 0 {
			rule := make([]string, len(widths))
			for i, w := range widths {
				rule[i] = strings.Repeat("-", w)
			}

			writeRow(&b, rule, widths)
		}
	}

	return b.String()
}

func writeRow(b *strings.Builder, row []string, widths []int) {
	for i, cell := range row {
		if i > 0 {
			b.WriteString(columnGap)
		}

		b.WriteString(cell)

		// No padding after the last column.
		if i < len(row)-1 {
			if gap := widths[i] - runewidth.StringWidth(cell); gap > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
		}
	}

	b.WriteString("\n")
}
