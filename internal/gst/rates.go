package gst

import "github.com/shopspring/decimal"

// hsnRates maps the first four digits of an HSN code to its GST rate. This is
// a working approximation of the common slabs, not the authoritative
// statutory table; unmapped codes fall back to the standard 18% rate.
var hsnRates = map[string]int{
	// 0% - essential goods
	"0101": 0, "0102": 0, "0201": 0, "0401": 0, "0701": 0, "0702": 0,
	"0713": 0, "1001": 0, "1006": 0, "1101": 0, "1901": 0,

	// 5% - basic necessities
	"0402": 5, "0403": 5, "0901": 5, "0902": 5, "1702": 5,
	"1905": 5, "2201": 5, "2501": 5, "4901": 5, "4902": 5,

	// 12% - standard processed goods
	"1704": 12, "1806": 12, "2009": 12, "2101": 12, "2104": 12,
	"3304": 12, "3305": 12, "3401": 12, "4016": 12, "4819": 12,
	"8443": 12, "8471": 12,

	// 18% - standard rate
	"2106": 18, "3808": 18, "3917": 18, "3923": 18, "3926": 18,
	"6109": 18, "6110": 18, "6204": 18, "6205": 18, "6206": 18,
	"6403": 18, "6404": 18, "8414": 18, "8415": 18, "8418": 18,
	"8450": 18, "8508": 18, "8509": 18, "8516": 18, "8517": 18,
	"8518": 18, "8519": 18, "8523": 18, "8528": 18, "9403": 18,
	"9404": 18, "9503": 18, "9504": 18, "9505": 18,

	// 28% - luxury goods
	"2402": 28, "2403": 28, "3303": 28, "8703": 28, "8711": 28,
	"9401": 28,
}

// DefaultRate is the standard GST slab applied when an HSN code is unmapped.
var DefaultRate = decimal.NewFromInt(18)

// Slabs lists the nominal GST rate slabs. Adapters may still emit other
// observed values from explicit rate columns; the slabs are not hard-enforced.
var Slabs = []int{0, 5, 12, 18, 28}

// ResolveRate looks up the GST rate for an HSN code using its first four
// digits. Unmapped or short codes resolve to DefaultRate. The result is an
// approximation and must not be treated as legally authoritative.
func ResolveRate(hsnCode string) decimal.Decimal {
	return ResolveRateWith(nil, hsnCode)
}

// ResolveRateWith resolves an HSN rate, consulting user-supplied overrides
// before the built-in table. Overrides are keyed by 4-digit HSN prefix.
func ResolveRateWith(overrides map[string]decimal.Decimal, hsnCode string) decimal.Decimal {
	if len(hsnCode) < 4 {
		return DefaultRate
	}
	prefix := hsnCode[:4]
	if rate, ok := overrides[prefix]; ok {
		return rate
	}
	if rate, ok := hsnRates[prefix]; ok {
		return decimal.NewFromInt(int64(rate))
	}
	return DefaultRate
}

// IsSlabRate reports whether a rate is one of the nominal GST slabs.
func IsSlabRate(rate decimal.Decimal) bool {
	for _, slab := range Slabs {
		if rate.Equal(decimal.NewFromInt(int64(slab))) {
			return true
		}
	}
	return false
}
