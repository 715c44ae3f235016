package platform

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/dateutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/gst"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
	"github.com/Finempire/Ecommerce-GST-App/internal/states"
)

// tracker records which fields of a transaction had to be defaulted while
// adapting a row.
type tracker struct {
	defaulted []string
}

func (t *tracker) mark(field string) {
	t.defaulted = append(t.defaulted, field)
}

// orderReference resolves the order id aliases, generating a synthetic
// reference when none is present. Synthetic references are not
// round-trippable to the source file.
func (t *tracker) orderReference(row models.RawRecord, aliases ...string) string {
	if ref := row.First(aliases...); ref != "" {
		return ref
	}
	t.mark("order_reference")
	return uuid.NewString()
}

// date resolves and canonicalizes the transaction date, defaulting to the
// adapter clock when absent or unparseable.
func (t *tracker) date(row models.RawRecord, opts Options, aliases ...string) string {
	raw := row.First(aliases...)
	if raw == "" {
		t.mark("occurred_at")
		return opts.now().Format(dateutils.LayoutISO)
	}
	parsed, ok := dateutils.TryParse(raw)
	if !ok {
		t.mark("occurred_at")
		return opts.now().Format(dateutils.LayoutISO)
	}
	return parsed.Format(dateutils.LayoutISO)
}

// text resolves a text field, substituting the placeholder when every alias
// is absent.
func (t *tracker) text(row models.RawRecord, field, placeholder string, aliases ...string) string {
	if v := row.First(aliases...); v != "" {
		return v
	}
	t.mark(field)
	return placeholder
}

// quantity resolves the quantity aliases, defaulting to 1.
func (t *tracker) quantity(row models.RawRecord, aliases ...string) int {
	q := row.Int(0, aliases...)
	if q < 1 {
		t.mark("quantity")
		return 1
	}
	return q
}

// gross resolves the gross amount aliases; missing or malformed amounts
// yield a zero-amount transaction rather than dropping the row.
func (t *tracker) gross(row models.RawRecord, aliases ...string) decimal.Decimal {
	raw := row.First(aliases...)
	if raw == "" {
		t.mark("gross_amount")
		return decimal.Zero
	}
	amount := row.Amount(aliases...)
	if amount.IsNegative() {
		t.mark("gross_amount")
		return decimal.Zero
	}
	return amount
}

// stateCode resolves the buyer's jurisdiction from a shipping-state column,
// defaulting to the registry default when the column is absent.
func (t *tracker) stateCode(row models.RawRecord, aliases ...string) string {
	raw := row.First(aliases...)
	if raw == "" {
		t.mark("jurisdiction_code")
		return states.DefaultCode
	}
	return states.CodeForName(raw)
}

// applyBreakdown decomposes the gross amount and fills the tax fields of a
// transaction.
func applyBreakdown(tx *models.Transaction, rate decimal.Decimal, interState bool) {
	b := gst.Decompose(tx.GrossAmount, rate, interState)
	tx.TaxableValue = b.TaxableValue
	tx.GSTRate = rate
	tx.IGST = b.IGST
	tx.CGST = b.CGST
	tx.SGST = b.SGST
	tx.Cess = b.Cess
}
