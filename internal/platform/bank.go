package platform

import (
	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// bankRowAdapter maps tabular bank statement exports (CSV/JSON downloads,
// not scanned PDFs). Bank rows are not supplies, so no tax is decomposed:
// the taxable value equals the amount at a zero rate and the jurisdiction is
// left unresolved.
type bankRowAdapter struct {
	opts Options
}

func (a *bankRowAdapter) Platform() Platform { return BankStatement }

func (a *bankRowAdapter) Adapt(rows []models.RawRecord) []Result {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		var t tracker

		amount := row.Amount("amount", "Amount", "Credit", "Debit")
		if amount.IsNegative() {
			amount = amount.Abs()
		}

		tx := models.Transaction{
			OrderReference: t.orderReference(row, "Reference", "Ref No"),
			Date:           t.date(row, a.opts, "date", "Date", "Transaction Date"),
			Description:    row.First("description", "Narration", "Description"),
			ProductName:    "Bank Transaction",
			Quantity:       1,
			GrossAmount:    amount,
			TaxableValue:   amount,
			GSTRate:        decimal.Zero,
			IGST:           decimal.Zero,
			CGST:           decimal.Zero,
			SGST:           decimal.Zero,
			Cess:           decimal.Zero,
			Platform:       string(BankStatement),
		}

		results = append(results, Result{Transaction: tx, Defaulted: t.defaulted})
	}
	return results
}
