package normalizer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePrice_ValidInputs(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"799,00 €", "799.00"},
		{"999 €", "999"},
		{"1.099,99 €", "1099.99"},
		{"799,00\u00a0€", "799.00"},
		{"  12,50 € ", "12.50"},
		{"0,99 €", "0.99"},
		{"1.234.567,89 €", "1234567.89"},
		{"42", "42"},
	}

	for _, tc := range cases {
		got, err := ParsePrice(tc.input)
		if err != nil {
			t.Errorf("ParsePrice(%q) returned unexpected error: %v", tc.input, err)

			continue
		}

		want := decimal.RequireFromString(tc.want)
		if !got.Equal(want) {
			t.Errorf("ParsePrice(%q) = %s, want %s", tc.input, got, want)
		}
	}
}

func TestParsePrice_NoRounding(t *testing.T) {
	got, err := ParsePrice("10,999 €")
	if err != nil {
		t.Fatalf("ParsePrice returned unexpected error: %v", err)
	}

	if !got.Equal(decimal.RequireFromString("10.999")) {
		t.Errorf("ParsePrice kept no extra precision: got %s, want 10.999", got)
	}
}

func TestParsePrice_Invalid(t *testing.T) {
	for _, input := range []string{"free", "", "€", "   ", "n/a"} {
		_, err := ParsePrice(input)
		if err == nil {
			t.Errorf("ParsePrice(%q) expected error, got nil", input)

			continue
		}

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("ParsePrice(%q) error is %T, want *ParseError", input, err)

			continue
		}

		if parseErr.Input != input {
			t.Errorf("ParseError.Input = %q, want %q", parseErr.Input, input)
		}
	}
}
