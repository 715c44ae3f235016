package platform

import (
	"github.com/Finempire/Ecommerce-GST-App/internal/currencyutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/gst"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// flipkartAdapter maps rows from Flipkart settlement and order reports.
// Flipkart exports an explicit GST rate column; the HSN table is only a
// fallback.
type flipkartAdapter struct {
	opts Options
}

func (a *flipkartAdapter) Platform() Platform { return Flipkart }

func (a *flipkartAdapter) Adapt(rows []models.RawRecord) []Result {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		var t tracker

		hsn := row.First("HSN", "HSN Code")
		rate := gst.ResolveRateWith(a.opts.RateOverrides, hsn)
		if raw := row.First("GST Rate"); raw != "" {
			rate = currencyutils.ParseAmount(raw)
		}
		stateCode := t.stateCode(row, "Shipping State", "State")
		interState := gst.IsInterState(a.opts.sellerState(), stateCode)

		tx := models.Transaction{
			OrderReference: t.orderReference(row, "Order ID", "Order Item ID"),
			Date:           t.date(row, a.opts, "Order Date", "Order Creation Date"),
			Description:    t.text(row, "description", "Flipkart Sale", "Product Name", "SKU"),
			ProductName:    row.First("Product Name"),
			SKU:            row.First("SKU"),
			Quantity:       t.quantity(row, "Quantity"),
			GrossAmount:    t.gross(row, "Selling Price", "Order Item Value"),
			HSNCode:        hsn,
			StateCode:      stateCode,
			Platform:       string(Flipkart),
			CustomerName:   row.First("Buyer Name"),
			InvoiceNumber:  row.First("Invoice Number"),
		}
		applyBreakdown(&tx, rate, interState)

		results = append(results, Result{Transaction: tx, Defaulted: t.defaulted})
	}
	return results
}
