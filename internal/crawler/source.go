package crawler

import (
	"time"

	"pricewatch/internal/models"
)

// Source produces the snapshots for one monitor execution. Implementations
// stamp every snapshot with the provided run timestamp so all products of a
// run share the same capture instant.
type Source interface {
	// Name returns the adapter identifier recorded on every snapshot.
	Name() string

	// Fetch returns one snapshot per tracked product.
	Fetch(now time.Time) ([]models.Snapshot, error)
}
