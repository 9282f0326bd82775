// Package history folds freshly fetched snapshots into the persisted dataset.
package history

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pricewatch/internal/models"
)

// identity is the tuple that decides duplicate status. Payload fields (title,
// sku, URLs) are deliberately excluded: two snapshots that agree on this tuple
// are the same observation even if a site revised its display text.
type identity struct {
	timestamp string
	source    string
	model     string
	price     string
}

// Merge combines previously persisted snapshots with newly fetched ones,
// drops exact repeats of the (timestamp, source, model, price) identity, and
// returns the result ordered by timestamp then model. The first occurrence of
// an identity wins; later repeats are discarded together with their payload
// fields. Merge is total over well-formed input and idempotent over its own
// output.
func Merge(existing, incoming []models.Snapshot) []models.Snapshot {
	combined := make([]models.Snapshot, 0, len(existing)+len(incoming))
	combined = append(combined, existing...)
	combined = append(combined, incoming...)

	seen := make(map[identity]struct{}, len(combined))
	out := make([]models.Snapshot, 0, len(combined))

	for _, s := range combined {
		key := identityOf(s)
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		out = append(out, s)
	}

	// Map iteration order never reaches the result: the output is built in
	// input order and then sorted unconditionally. The stable sort keeps
	// input order for snapshots that tie on both timestamp and model, i.e.
	// simultaneous observations with differing prices.
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Timestamp.Compare(out[j].Timestamp); c != 0 {
			return c < 0
		}

		return out[i].Model < out[j].Model
	})

	return out
}

func identityOf(s models.Snapshot) identity {
	return identity{
		timestamp: s.Timestamp.UTC().Format(time.RFC3339Nano),
		source:    s.Source,
		model:     s.Model,
		price:     canonicalPrice(s.Price),
	}
}

// canonicalPrice renders a price so that value-equal decimals key equally.
// decimal.Decimal keeps the parsed exponent, so "799,00" and "799" would
// otherwise stringify as "799.00" vs "799" and dodge the duplicate check.
func canonicalPrice(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}

	return s
}
