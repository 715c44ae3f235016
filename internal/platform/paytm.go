package platform

import (
	"github.com/Finempire/Ecommerce-GST-App/internal/currencyutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/gst"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// paytmAdapter maps rows from Paytm Mall order exports.
type paytmAdapter struct {
	opts Options
}

func (a *paytmAdapter) Platform() Platform { return Paytm }

func (a *paytmAdapter) Adapt(rows []models.RawRecord) []Result {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		var t tracker

		rate := gst.DefaultRate
		if raw := row.First("GST Rate"); raw != "" {
			rate = currencyutils.ParseAmount(raw)
		}
		stateCode := t.stateCode(row, "State")
		interState := gst.IsInterState(a.opts.sellerState(), stateCode)

		tx := models.Transaction{
			OrderReference: t.orderReference(row, "Order ID", "Transaction ID"),
			Date:           t.date(row, a.opts, "Date", "Order Date"),
			Description:    t.text(row, "description", "Paytm Sale", "Product", "Description"),
			ProductName:    row.First("Product"),
			Quantity:       t.quantity(row, "Qty"),
			GrossAmount:    t.gross(row, "Amount", "Order Value"),
			HSNCode:        row.First("HSN"),
			StateCode:      stateCode,
			Platform:       string(Paytm),
			CustomerName:   row.First("Customer Name"),
		}
		applyBreakdown(&tx, rate, interState)

		results = append(results, Result{Transaction: tx, Defaulted: t.defaulted})
	}
	return results
}
