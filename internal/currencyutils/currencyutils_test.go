package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain amount", "1500.50", "1500.50"},
		{"indian grouping", "1,23,456.78", "123456.78"},
		{"western grouping", "123,456.78", "123456.78"},
		{"rupee symbol", "₹500.00", "500.00"},
		{"minus prefix", "-250.75", "-250.75"},
		{"parenthesized negative", "(250.75)", "-250.75"},
		{"trailing DR marker", "500.00 DR", "500.00"},
		{"trailing CR marker", "1,000.00 CR", "1000.00"},
		{"integer", "42", "42"},
		{"empty string", "", "0"},
		{"garbage", "n/a", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tc.expected)
			assert.NoError(t, err)
			assert.True(t, ParseAmount(tc.input).Equal(expected),
				"got %s", ParseAmount(tc.input))
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"round half up", "7.625", "7.63"},
		{"round half away from zero negative", "-7.625", "-7.63"},
		{"round to nearest", "84.7457", "84.75"},
		{"exact", "100.00", "100"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, _ := decimal.NewFromString(tc.input)
			expected, _ := decimal.NewFromString(tc.expected)
			assert.True(t, Round2(in).Equal(expected), "got %s", Round2(in))
		})
	}
}
