package currency_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildpass/flightsearch/pkg/currency"
)

// TestFormatUSD verifies display formatting, including thousands
// separators, cent rounding, and negative amounts.
func TestFormatUSD(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{59, "$59.00"},
		{99.5, "$99.50"},
		{1234.56, "$1,234.56"},
		{1234567.89, "$1,234,567.89"},
		{19.999, "$20.00"},
		{-42.5, "-$42.50"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, currency.FormatUSD(tc.amount), "amount %v", tc.amount)
	}
}
