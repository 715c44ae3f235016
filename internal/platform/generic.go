package platform

import (
	"github.com/Finempire/Ecommerce-GST-App/internal/currencyutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/gst"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
	"github.com/Finempire/Ecommerce-GST-App/internal/states"
)

// genericAdapter handles marketplaces without a dedicated adapter by probing
// the common column name conventions. Myntra exports also go through here
// under their own label.
type genericAdapter struct {
	opts  Options
	label Platform
}

func (a *genericAdapter) Platform() Platform { return a.label }

func (a *genericAdapter) Adapt(rows []models.RawRecord) []Result {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		var t tracker

		hsn := row.First("HSN", "HSN Code")
		rate := gst.DefaultRate
		if raw := row.First("GST Rate", "Tax Rate", "GST%"); raw != "" {
			rate = currencyutils.ParseAmount(raw)
		} else if hsn != "" {
			rate = gst.ResolveRateWith(a.opts.RateOverrides, hsn)
		}
		stateCode := ""
		if raw := row.First("State", "Ship State"); raw != "" {
			stateCode = states.CodeForName(raw)
		} else if addr := row.First("Shipping Address", "Customer Address", "Address"); addr != "" {
			stateCode = states.CodeFromAddress(addr)
		} else {
			t.mark("jurisdiction_code")
			stateCode = states.DefaultCode
		}
		interState := gst.IsInterState(a.opts.sellerState(), stateCode)

		tx := models.Transaction{
			OrderReference: t.orderReference(row, "Order ID", "OrderID", "Order No"),
			Date:           t.date(row, a.opts, "Date", "Order Date", "Created Date"),
			Description:    t.text(row, "description", "Sale", "Product", "Product Name", "Item", "Description"),
			ProductName:    row.First("Product", "Product Name", "Item"),
			SKU:            row.First("SKU"),
			Quantity:       t.quantity(row, "Quantity", "Qty"),
			GrossAmount:    t.gross(row, "Sale Price", "Selling Price", "Amount", "Order Value", "Item Price"),
			HSNCode:        hsn,
			StateCode:      stateCode,
			Platform:       string(a.label),
			CustomerName:   row.First("Customer", "Customer Name"),
		}
		applyBreakdown(&tx, rate, interState)

		results = append(results, Result{Transaction: tx, Defaulted: t.defaulted})
	}
	return results
}
