package normalizer

import (
	"errors"
	"fmt"
	"net/url"

	"pricewatch/internal/models"
)

// Snapshot validation errors.
var (
	ErrMissingModel  = errors.New("model is required")
	ErrMissingTitle  = errors.New("title is required")
	ErrMissingSource = errors.New("source is required")
	ErrNegativePrice = errors.New("price must be non-negative")
	ErrInvalidURL    = errors.New("url must be a well-formed absolute URL")
)

// Validator checks snapshots before they enter the merge step. Malformed
// records must never reach the merger, which assumes well-formed input.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a single snapshot against the record invariants.
func (v *Validator) Validate(s models.Snapshot) error {
	if s.Model == "" {
		return ErrMissingModel
	}

	if s.Title == "" {
		return ErrMissingTitle
	}

	if s.Source == "" {
		return ErrMissingSource
	}

	if s.Price.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativePrice, s.Price)
	}

	for _, raw := range []string{s.ProductURL, s.ImageURL} {
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
		}
	}

	return nil
}

// ValidateBatch checks every snapshot of a fetched batch and reports the
// first violation with its position and model.
func (v *Validator) ValidateBatch(rows []models.Snapshot) error {
	for i, s := range rows {
		if err := v.Validate(s); err != nil {
			return fmt.Errorf("snapshot[%d] (%s): %w", i, s.Model, err)
		}
	}

	return nil
}
