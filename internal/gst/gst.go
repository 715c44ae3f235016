// Package gst implements the statutory tax breakdown engine: decomposition of
// tax-inclusive amounts into taxable value and IGST or CGST/SGST components,
// HSN rate resolution and the e-commerce operator TCS split.
//
// All monetary results are rounded to 2 decimal places (half away from zero)
// at the point of computation, after each derived quantity, to match the
// reference outputs. The package holds no mutable state and is safe for
// concurrent use.
package gst

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/currencyutils"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Breakdown is the result of decomposing a tax-inclusive gross amount.
// Either IGST is set (interstate) or CGST and SGST are set equally
// (intrastate); never both.
type Breakdown struct {
	TaxableValue decimal.Decimal
	Rate         decimal.Decimal
	IGST         decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	Cess         decimal.Decimal
	TotalTax     decimal.Decimal
	TotalValue   decimal.Decimal
}

// Decompose splits a tax-inclusive gross amount into taxable value and tax
// components at the given percentage rate. Negative gross amounts are
// treated as zero. A zero rate yields taxableValue == gross with zero tax.
func Decompose(gross, ratePercent decimal.Decimal, interState bool) Breakdown {
	if gross.IsNegative() {
		gross = decimal.Zero
	}
	if ratePercent.IsNegative() {
		ratePercent = decimal.Zero
	}

	// rate 0 leaves the divisor at 1
	divisor := one.Add(ratePercent.Div(hundred))
	taxable := currencyutils.Round2(gross.Div(divisor))
	totalTax := currencyutils.Round2(gross.Sub(taxable))

	b := Breakdown{
		TaxableValue: taxable,
		Rate:         ratePercent,
		Cess:         decimal.Zero,
		TotalTax:     totalTax,
		TotalValue:   currencyutils.Round2(taxable.Add(totalTax)),
	}

	if interState {
		b.IGST = totalTax
		b.CGST = decimal.Zero
		b.SGST = decimal.Zero
	} else {
		half := currencyutils.Round2(totalTax.Div(two))
		b.IGST = decimal.Zero
		b.CGST = half
		b.SGST = half
	}

	return b
}

// IsInterState reports whether a supply crosses state lines. The seller code
// is the platform's registered state unless an adapter overrides it.
func IsInterState(sellerCode, buyerCode string) bool {
	return sellerCode != buyerCode
}

// TCSSplit computes the tax collected at source by an e-commerce operator on
// the net value of supplies: 1% IGST interstate, or 0.5% CGST + 0.5% SGST
// intrastate. Used only by the tax-return amendment tables.
func TCSSplit(netValue decimal.Decimal, interState bool) (igst, cgst, sgst decimal.Decimal) {
	if netValue.IsNegative() {
		netValue = decimal.Zero
	}
	if interState {
		igst = currencyutils.Round2(netValue.Mul(decimal.NewFromFloat(0.01)))
		return igst, decimal.Zero, decimal.Zero
	}
	half := currencyutils.Round2(netValue.Mul(decimal.NewFromFloat(0.005)))
	return decimal.Zero, half, half
}

// ReverseCharge computes the breakdown for a B2B purchase from an
// unregistered supplier, where the buyer owes the tax.
func ReverseCharge(purchaseValue, ratePercent decimal.Decimal, sellerCode, buyerCode string) Breakdown {
	return Decompose(purchaseValue, ratePercent, IsInterState(sellerCode, buyerCode))
}

// FinancialYear returns the Indian financial year ("2025-26") containing the
// given date. The year rolls over in April.
func FinancialYear(date time.Time) string {
	year := date.Year()
	if date.Month() >= time.April {
		return fmt.Sprintf("%d-%02d", year, (year+1)%100)
	}
	return fmt.Sprintf("%d-%02d", year-1, year%100)
}

// FinancialPeriod returns the MMYYYY return period for a date.
func FinancialPeriod(date time.Time) string {
	return date.Format("012006")
}
