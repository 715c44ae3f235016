package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/dateutils"
	"github.com/Finempire/Ecommerce-GST-App/internal/logging"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// exportRow is the flat CSV layout accountants import into spreadsheets.
// Dates are rendered day first.
type exportRow struct {
	OrderID      string `csv:"Order ID"`
	Date         string `csv:"Date"`
	Platform     string `csv:"Platform"`
	Product      string `csv:"Product"`
	HSNCode      string `csv:"HSN Code"`
	Quantity     int    `csv:"Quantity"`
	SalePrice    string `csv:"Sale Price"`
	TaxableValue string `csv:"Taxable Value"`
	GSTRate      string `csv:"GST Rate"`
	IGST         string `csv:"IGST"`
	CGST         string `csv:"CGST"`
	SGST         string `csv:"SGST"`
	TotalTax     string `csv:"Total Tax"`
	StateCode    string `csv:"State Code"`
}

// ExportCSV renders transactions as the flat 14-column CSV.
func ExportCSV(txs []models.Transaction) (string, error) {
	rows := make([]exportRow, 0, len(txs))
	for _, tx := range txs {
		product := tx.ProductName
		if product == "" {
			product = tx.Description
		}
		rows = append(rows, exportRow{
			OrderID:      tx.OrderReference,
			Date:         tx.OccurredAt().Format(dateutils.LayoutIndian),
			Platform:     tx.Platform,
			Product:      product,
			HSNCode:      tx.HSNCode,
			Quantity:     tx.Quantity,
			SalePrice:    tx.GrossAmount.StringFixed(2),
			TaxableValue: tx.TaxableValue.StringFixed(2),
			GSTRate:      fmt.Sprintf("%s%%", tx.GSTRate.String()),
			IGST:         tx.IGST.StringFixed(2),
			CGST:         tx.CGST.StringFixed(2),
			SGST:         tx.SGST.StringFixed(2),
			TotalTax:     tx.TotalTax().StringFixed(2),
			StateCode:    tx.StateCode,
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("error marshaling export CSV: %w", err)
	}

	log.Info("Rendered export CSV",
		logging.Field{Key: logging.FieldRows, Value: len(rows)})
	return out, nil
}

// Summary is the aggregated JSON report over a transaction set.
type Summary struct {
	GeneratedAt       string            `json:"generated_at"`
	TotalTransactions int               `json:"total_transactions"`
	Totals            SummaryTotals     `json:"totals"`
	GSTRateSummary    []RateSummaryRow  `json:"gst_rate_summary"`
	HSNSummary        []HSNSummaryRow   `json:"hsn_summary"`
	StateSummary      []StateSummaryRow `json:"state_summary"`
	PlatformSummary   []PlatformRow     `json:"platform_summary"`
	MonthlySummary    []MonthlyRow      `json:"monthly_summary"`
	Transactions      []TransactionRow  `json:"transactions"`
}

type SummaryTotals struct {
	SalePrice    json.Number `json:"sale_price"`
	TaxableValue json.Number `json:"taxable_value"`
	IGST         json.Number `json:"igst"`
	CGST         json.Number `json:"cgst"`
	SGST         json.Number `json:"sgst"`
	TotalTax     json.Number `json:"total_tax"`
}

type RateSummaryRow struct {
	Rate             string      `json:"rate"`
	TransactionCount int         `json:"transaction_count"`
	TaxableValue     json.Number `json:"taxable_value"`
	TotalTax         json.Number `json:"total_tax"`
}

type HSNSummaryRow struct {
	HSNCode          string      `json:"hsn_code"`
	TransactionCount int         `json:"transaction_count"`
	TotalQuantity    int         `json:"total_quantity"`
	TaxableValue     json.Number `json:"taxable_value"`
	TotalTax         json.Number `json:"total_tax"`
}

type StateSummaryRow struct {
	StateCode        string      `json:"state_code"`
	StateName        string      `json:"state_name"`
	TransactionCount int         `json:"transaction_count"`
	TaxableValue     json.Number `json:"taxable_value"`
	IGST             json.Number `json:"igst"`
	CGST             json.Number `json:"cgst"`
	SGST             json.Number `json:"sgst"`
}

type PlatformRow struct {
	Platform         string      `json:"platform"`
	TransactionCount int         `json:"transaction_count"`
	TotalSales       json.Number `json:"total_sales"`
	TotalTax         json.Number `json:"total_tax"`
}

type MonthlyRow struct {
	Month            string      `json:"month"`
	TransactionCount int         `json:"transaction_count"`
	TotalSales       json.Number `json:"total_sales"`
	TotalTax         json.Number `json:"total_tax"`
}

type TransactionRow struct {
	OrderID      string      `json:"order_id"`
	Date         string      `json:"date"`
	Description  string      `json:"description"`
	HSNCode      string      `json:"hsn_code"`
	Quantity     int         `json:"quantity"`
	SalePrice    json.Number `json:"sale_price"`
	TaxableValue json.Number `json:"taxable_value"`
	GSTRate      json.Number `json:"gst_rate"`
	IGST         json.Number `json:"igst"`
	CGST         json.Number `json:"cgst"`
	SGST         json.Number `json:"sgst"`
	StateCode    string      `json:"state_code"`
	Platform     string      `json:"platform"`
}

// stateNamer resolves a state code to its display name.
type stateNamer func(code string) string

// SummaryJSON renders the aggregated JSON report: overall totals plus the
// rate, HSN, state, platform and monthly breakdowns, each in its own sort
// order, followed by the normalized transaction rows.
func SummaryJSON(txs []models.Transaction, nameForCode stateNamer, now time.Time) ([]byte, error) {
	summary := Summary{
		GeneratedAt:       now.UTC().Format(time.RFC3339),
		TotalTransactions: len(txs),
		Totals:            buildTotals(txs),
		GSTRateSummary:    buildRateSummary(txs),
		HSNSummary:        buildHSNRows(txs),
		StateSummary:      buildStateRows(txs, nameForCode),
		PlatformSummary:   buildPlatformRows(txs),
		MonthlySummary:    buildMonthlyRows(txs),
		Transactions:      buildTransactionRows(txs),
	}

	log.Info("Rendered summary JSON",
		logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return json.MarshalIndent(summary, "", "  ")
}

func buildTotals(txs []models.Transaction) SummaryTotals {
	var sale, taxable, igst, cgst, sgst decimal.Decimal
	for _, tx := range txs {
		sale = sale.Add(tx.GrossAmount)
		taxable = taxable.Add(tx.TaxableValue)
		igst = igst.Add(tx.IGST)
		cgst = cgst.Add(tx.CGST)
		sgst = sgst.Add(tx.SGST)
	}
	return SummaryTotals{
		SalePrice:    amount(sale),
		TaxableValue: amount(taxable),
		IGST:         amount(igst),
		CGST:         amount(cgst),
		SGST:         amount(sgst),
		TotalTax:     amount(igst.Add(cgst).Add(sgst)),
	}
}

// buildRateSummary groups by GST rate, ascending.
func buildRateSummary(txs []models.Transaction) []RateSummaryRow {
	type bucket struct {
		rate    decimal.Decimal
		count   int
		taxable decimal.Decimal
		tax     decimal.Decimal
	}

	index := make(map[string]*bucket)
	for _, tx := range txs {
		key := tx.GSTRate.String()
		b, ok := index[key]
		if !ok {
			b = &bucket{rate: tx.GSTRate}
			index[key] = b
		}
		b.count++
		b.taxable = b.taxable.Add(tx.TaxableValue)
		b.tax = b.tax.Add(tx.TotalTax())
	}

	buckets := make([]*bucket, 0, len(index))
	for _, b := range index {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].rate.LessThan(buckets[j].rate)
	})

	rows := make([]RateSummaryRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, RateSummaryRow{
			Rate:             b.rate.String() + "%",
			TransactionCount: b.count,
			TaxableValue:     amount(b.taxable),
			TotalTax:         amount(b.tax),
		})
	}
	return rows
}

// buildHSNRows groups by HSN code, highest taxable value first.
func buildHSNRows(txs []models.Transaction) []HSNSummaryRow {
	type bucket struct {
		hsn     string
		count   int
		qty     int
		taxable decimal.Decimal
		tax     decimal.Decimal
	}

	index := make(map[string]*bucket)
	for _, tx := range txs {
		hsn := tx.HSNCode
		if hsn == "" {
			hsn = "UNKNOWN"
		}
		b, ok := index[hsn]
		if !ok {
			b = &bucket{hsn: hsn}
			index[hsn] = b
		}
		b.count++
		b.qty += tx.Quantity
		b.taxable = b.taxable.Add(tx.TaxableValue)
		b.tax = b.tax.Add(tx.TotalTax())
	}

	buckets := make([]*bucket, 0, len(index))
	for _, b := range index {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].taxable.Equal(buckets[j].taxable) {
			return buckets[i].taxable.GreaterThan(buckets[j].taxable)
		}
		return buckets[i].hsn < buckets[j].hsn
	})

	rows := make([]HSNSummaryRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, HSNSummaryRow{
			HSNCode:          b.hsn,
			TransactionCount: b.count,
			TotalQuantity:    b.qty,
			TaxableValue:     amount(b.taxable),
			TotalTax:         amount(b.tax),
		})
	}
	return rows
}

// buildStateRows groups by state code, highest taxable value first.
func buildStateRows(txs []models.Transaction, nameForCode stateNamer) []StateSummaryRow {
	type bucket struct {
		code    string
		count   int
		taxable decimal.Decimal
		igst    decimal.Decimal
		cgst    decimal.Decimal
		sgst    decimal.Decimal
	}

	index := make(map[string]*bucket)
	for _, tx := range txs {
		code := tx.StateCode
		if code == "" {
			code = "UNKNOWN"
		}
		b, ok := index[code]
		if !ok {
			b = &bucket{code: code}
			index[code] = b
		}
		b.count++
		b.taxable = b.taxable.Add(tx.TaxableValue)
		b.igst = b.igst.Add(tx.IGST)
		b.cgst = b.cgst.Add(tx.CGST)
		b.sgst = b.sgst.Add(tx.SGST)
	}

	buckets := make([]*bucket, 0, len(index))
	for _, b := range index {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].taxable.Equal(buckets[j].taxable) {
			return buckets[i].taxable.GreaterThan(buckets[j].taxable)
		}
		return buckets[i].code < buckets[j].code
	})

	rows := make([]StateSummaryRow, 0, len(buckets))
	for _, b := range buckets {
		name := "Unknown"
		if nameForCode != nil {
			name = nameForCode(b.code)
		}
		rows = append(rows, StateSummaryRow{
			StateCode:        b.code,
			StateName:        name,
			TransactionCount: b.count,
			TaxableValue:     amount(b.taxable),
			IGST:             amount(b.igst),
			CGST:             amount(b.cgst),
			SGST:             amount(b.sgst),
		})
	}
	return rows
}

// buildPlatformRows groups by marketplace, highest sales first.
func buildPlatformRows(txs []models.Transaction) []PlatformRow {
	type bucket struct {
		platform string
		count    int
		sales    decimal.Decimal
		tax      decimal.Decimal
	}

	index := make(map[string]*bucket)
	for _, tx := range txs {
		platform := tx.Platform
		if platform == "" {
			platform = "Unknown"
		}
		b, ok := index[platform]
		if !ok {
			b = &bucket{platform: platform}
			index[platform] = b
		}
		b.count++
		b.sales = b.sales.Add(tx.GrossAmount)
		b.tax = b.tax.Add(tx.TotalTax())
	}

	buckets := make([]*bucket, 0, len(index))
	for _, b := range index {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].sales.Equal(buckets[j].sales) {
			return buckets[i].sales.GreaterThan(buckets[j].sales)
		}
		return buckets[i].platform < buckets[j].platform
	})

	rows := make([]PlatformRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, PlatformRow{
			Platform:         b.platform,
			TransactionCount: b.count,
			TotalSales:       amount(b.sales),
			TotalTax:         amount(b.tax),
		})
	}
	return rows
}

// buildMonthlyRows groups by YYYY-MM month key, chronological.
func buildMonthlyRows(txs []models.Transaction) []MonthlyRow {
	type bucket struct {
		month string
		count int
		sales decimal.Decimal
		tax   decimal.Decimal
	}

	index := make(map[string]*bucket)
	for _, tx := range txs {
		month := tx.MonthKey()
		b, ok := index[month]
		if !ok {
			b = &bucket{month: month}
			index[month] = b
		}
		b.count++
		b.sales = b.sales.Add(tx.GrossAmount)
		b.tax = b.tax.Add(tx.TotalTax())
	}

	buckets := make([]*bucket, 0, len(index))
	for _, b := range index {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].month < buckets[j].month
	})

	rows := make([]MonthlyRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, MonthlyRow{
			Month:            b.month,
			TransactionCount: b.count,
			TotalSales:       amount(b.sales),
			TotalTax:         amount(b.tax),
		})
	}
	return rows
}

func buildTransactionRows(txs []models.Transaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, TransactionRow{
			OrderID:      tx.OrderReference,
			Date:         tx.OccurredAt().Format(dateutils.LayoutIndian),
			Description:  tx.Description,
			HSNCode:      tx.HSNCode,
			Quantity:     tx.Quantity,
			SalePrice:    amount(tx.GrossAmount),
			TaxableValue: amount(tx.TaxableValue),
			GSTRate:      rateNumber(tx.GSTRate),
			IGST:         amount(tx.IGST),
			CGST:         amount(tx.CGST),
			SGST:         amount(tx.SGST),
			StateCode:    tx.StateCode,
			Platform:     tx.Platform,
		})
	}
	return rows
}
