// Package normalizer converts raw catalog fields into validated snapshot values.
package normalizer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseError indicates price text with no interpretable numeric content. It
// carries the original input for diagnostics.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse price from %q", e.Input)
}

// ParsePrice converts strings like "799,00 €", "999 €" or "1.099,99 €" into a
// decimal value. The catalog locale uses '.' only as a thousands mark and ','
// as the decimal mark; a non-breaking space may separate the amount from the
// currency symbol.
func ParsePrice(text string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '€' || unicode.IsSpace(r) {
			return -1
		}

		return r
	}, text)

	// Thousands marks must go before the decimal comma so "1.099,99"
	// becomes "1099.99" rather than an ambiguous "1.099.99".
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	var digits strings.Builder

	for _, r := range cleaned {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}

	cleaned = digits.String()
	if cleaned == "" {
		return decimal.Decimal{}, &ParseError{Input: text}
	}

	price, err := decimal.NewFromString(cleaned)
	if err != nil || price.IsNegative() {
		return decimal.Decimal{}, &ParseError{Input: text}
	}

	return price, nil
}
