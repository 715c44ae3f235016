package platform

import (
	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/currencyutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/gst"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// meeshoRate is the default slab for Meesho supplies; the platform is
// dominated by apparel under the 5% rate.
var meeshoRate = decimal.NewFromInt(5)

// meeshoAdapter maps rows from Meesho supplier panel exports.
type meeshoAdapter struct {
	opts Options
}

func (a *meeshoAdapter) Platform() Platform { return Meesho }

func (a *meeshoAdapter) Adapt(rows []models.RawRecord) []Result {
	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		var t tracker

		rate := meeshoRate
		if raw := row.First("GST%", "Tax Rate"); raw != "" {
			rate = currencyutils.ParseAmount(raw)
		}
		stateCode := t.stateCode(row, "State")
		interState := gst.IsInterState(a.opts.sellerState(), stateCode)

		tx := models.Transaction{
			OrderReference: t.orderReference(row, "Order ID", "Sub Order No"),
			Date:           t.date(row, a.opts, "Order Date", "Created At"),
			Description:    t.text(row, "description", "Meesho Sale", "SKU Name", "Product"),
			ProductName:    row.First("SKU Name", "Product"),
			SKU:            row.First("SKU", "SKU Name"),
			Quantity:       t.quantity(row, "Quantity"),
			GrossAmount:    t.gross(row, "Selling Price", "Product Price"),
			HSNCode:        row.First("HSN", "HSN Code"),
			StateCode:      stateCode,
			Platform:       string(Meesho),
			CustomerName:   row.First("Customer Name"),
		}
		applyBreakdown(&tx, rate, interState)

		results = append(results, Result{Transaction: tx, Defaulted: t.defaulted})
	}
	return results
}
