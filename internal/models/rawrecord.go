package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/currencyutils"
)

// RawRecord is a single tabular row keyed by its header names, the common
// currency of spreadsheet, CSV and JSON ingestion. Marketplace exports are
// inconsistent about column names, so all access goes through alias lists
// where the first present alias wins.
type RawRecord map[string]string

// First returns the value of the first alias present with a non-empty value.
func (r RawRecord) First(aliases ...string) string {
	for _, alias := range aliases {
		if v, ok := r[alias]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Amount resolves the first present alias and parses it as a monetary value.
// Missing or malformed values yield zero.
func (r RawRecord) Amount(aliases ...string) decimal.Decimal {
	return currencyutils.ParseAmount(r.First(aliases...))
}

// Int resolves the first present alias as an integer, falling back to def for
// missing or malformed values.
func (r RawRecord) Int(def int, aliases ...string) int {
	v := r.First(aliases...)
	if v == "" {
		return def
	}
	// Tolerate values exported as "2.0"
	if idx := strings.IndexByte(v, '.'); idx > 0 {
		v = v[:idx]
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
