// Package platform contains the marketplace adapters that map raw tabular
// rows onto canonical transactions. One adapter exists per supported
// marketplace plus a generic fallback; selection happens through the Platform
// enum so the dispatch is exhaustiveness-checked at compile time instead of
// living in a runtime map.
//
// Adapters never fail on a malformed row. Missing or invalid fields are
// substituted with defaults and recorded per-field in Result.Defaulted, so a
// strict caller can filter post-hoc without changing ingestion semantics.
package platform

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/models"
	"github.com/Finempire/Ecommerce-GST-App/internal/states"
)

// Platform identifies the marketplace a file was exported from.
type Platform string

const (
	Amazon        Platform = "Amazon"
	Flipkart      Platform = "Flipkart"
	Meesho        Platform = "Meesho"
	Myntra        Platform = "Myntra"
	Paytm         Platform = "Paytm"
	BankStatement Platform = "Bank Statement"
	Generic       Platform = "Generic E-commerce"
)

// genericAliases are marketplaces without a dedicated adapter; their exports
// are close enough to the generic column conventions.
var genericAliases = map[string]bool{
	"Glowroad": true,
	"Jio Mart": true,
	"LimeRoad": true,
	"Snapdeal": true,
	"Shop 101": true,
}

// FromLabel maps a user-declared platform label onto a Platform. Unknown
// labels fall back to Generic.
func FromLabel(label string) Platform {
	switch Platform(label) {
	case Amazon, Flipkart, Meesho, Myntra, Paytm, BankStatement, Generic:
		return Platform(label)
	}
	if genericAliases[label] {
		return Generic
	}
	return Generic
}

// Options carries the per-job adapter configuration.
type Options struct {
	// SellerStateCode is the seller's registered jurisdiction, used for the
	// interstate/intrastate decision.
	SellerStateCode string

	// RateOverrides are user-supplied HSN-to-rate overrides keyed by 4-digit
	// HSN prefix, layered over the built-in rate table.
	RateOverrides map[string]decimal.Decimal

	// Now supplies the clock for date defaulting; nil means time.Now.
	Now func() time.Time
}

func (o Options) sellerState() string {
	if o.SellerStateCode == "" {
		return states.DefaultCode
	}
	return o.SellerStateCode
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Result pairs an adapted transaction with the names of the fields that had
// to be defaulted because the source row was missing or malformed.
type Result struct {
	Transaction models.Transaction
	Defaulted   []string
}

// Adapter converts raw rows from one marketplace's export format into
// canonical transactions. Implementations return exactly one Result per
// input row; rows are never dropped.
type Adapter interface {
	Platform() Platform
	Adapt(rows []models.RawRecord) []Result
}

// ForPlatform returns the adapter for a platform. Generic and its aliases,
// and any unknown platform, get the generic e-commerce adapter; Myntra
// exports use the generic column conventions under their own label.
func ForPlatform(p Platform, opts Options) Adapter {
	switch p {
	case Amazon:
		return &amazonAdapter{opts: opts}
	case Flipkart:
		return &flipkartAdapter{opts: opts}
	case Meesho:
		return &meeshoAdapter{opts: opts}
	case Paytm:
		return &paytmAdapter{opts: opts}
	case BankStatement:
		return &bankRowAdapter{opts: opts}
	case Myntra:
		return &genericAdapter{opts: opts, label: Myntra}
	case Generic:
		return &genericAdapter{opts: opts, label: Generic}
	default:
		return &genericAdapter{opts: opts, label: Generic}
	}
}
