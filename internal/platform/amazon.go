package platform

import (
	"github.com/Finempire/Ecommerce-GST-App/internal/gst"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// amazonAdapter maps rows from Amazon seller reports. Amazon exports carry
// lowercase hyphenated column names; older merchant reports use title case.
type amazonAdapter struct {
	opts Options
}

func (a *amazonAdapter) Platform() Platform { return Amazon }

func (a *amazonAdapter) Adapt(rows []models.RawRecord) []Result {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		var t tracker

		hsn := row.First("hsn", "HSN Code")
		rate := gst.ResolveRateWith(a.opts.RateOverrides, hsn)
		stateCode := t.stateCode(row, "ship-state", "State")
		interState := gst.IsInterState(a.opts.sellerState(), stateCode)

		tx := models.Transaction{
			OrderReference: t.orderReference(row, "order-id", "Order ID"),
			Date:           t.date(row, a.opts, "purchase-date", "Order Date"),
			Description:    t.text(row, "description", "Amazon Sale", "product-name", "Product Name"),
			ProductName:    row.First("product-name", "Product Name"),
			SKU:            row.First("sku", "SKU"),
			Quantity:       t.quantity(row, "quantity-purchased", "Qty"),
			GrossAmount:    t.gross(row, "item-price", "Sale Price"),
			HSNCode:        hsn,
			StateCode:      stateCode,
			Platform:       string(Amazon),
			CustomerName:   row.First("buyer-name", "Customer Name"),
		}
		applyBreakdown(&tx, rate, interState)

		results = append(results, Result{Transaction: tx, Defaulted: t.defaulted})
	}
	return results
}
