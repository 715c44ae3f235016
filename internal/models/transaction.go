// Package models provides the data structures shared by the ingestion
// pipeline, the tax engine and the report renderers.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/dateutils"
)

// Transaction is the canonical, format-agnostic record every ingested row or
// bank statement line is normalized into. Instances are created once by an
// adapter or the bank parser and are immutable afterwards.
type Transaction struct {
	OrderReference string          `csv:"Order ID" json:"order_id"`
	Date           string          `csv:"Date" json:"date"` // YYYY-MM-DD
	Description    string          `csv:"Description" json:"description"`
	ProductName    string          `csv:"Product" json:"product_name,omitempty"`
	SKU            string          `csv:"SKU" json:"sku,omitempty"`
	Quantity       int             `csv:"Quantity" json:"quantity"`
	GrossAmount    decimal.Decimal `csv:"Sale Price" json:"sale_price"`
	TaxableValue   decimal.Decimal `csv:"Taxable Value" json:"taxable_value"`
	GSTRate        decimal.Decimal `csv:"GST Rate" json:"gst_rate"`
	IGST           decimal.Decimal `csv:"IGST" json:"igst"`
	CGST           decimal.Decimal `csv:"CGST" json:"cgst"`
	SGST           decimal.Decimal `csv:"SGST" json:"sgst"`
	Cess           decimal.Decimal `csv:"Cess" json:"cess"`
	HSNCode        string          `csv:"HSN Code" json:"hsn_code"`
	StateCode      string          `csv:"State Code" json:"state_code"`
	Platform       string          `csv:"Platform" json:"platform"`
	CustomerName   string          `csv:"Customer" json:"customer_name,omitempty"`
	CustomerTaxID  string          `csv:"Customer GSTIN" json:"customer_tax_id,omitempty"`
	InvoiceNumber  string          `csv:"Invoice No" json:"invoice_number,omitempty"`
}

// TotalTax returns the sum of all tax components.
func (t *Transaction) TotalTax() decimal.Decimal {
	return t.IGST.Add(t.CGST).Add(t.SGST).Add(t.Cess)
}

// IsInterState reports whether the transaction was taxed as an interstate
// supply. IGST and CGST/SGST are mutually exclusive.
func (t *Transaction) IsInterState() bool {
	return t.IGST.IsPositive()
}

// OccurredAt parses the canonical date. A zero time is returned for
// unparseable dates, which only happens if the field was set outside the
// pipeline.
func (t *Transaction) OccurredAt() time.Time {
	parsed, err := time.Parse(dateutils.LayoutISO, t.Date)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// MonthKey returns the YYYY-MM aggregation key for monthly summaries.
func (t *Transaction) MonthKey() string {
	if len(t.Date) >= 7 {
		return t.Date[:7]
	}
	return t.Date
}
