package platform

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func testOpts() Options {
	return Options{
		SellerStateCode: "27",
		Now:             func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestFromLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected Platform
	}{
		{"amazon", "Amazon", Amazon},
		{"flipkart", "Flipkart", Flipkart},
		{"meesho", "Meesho", Meesho},
		{"bank statement", "Bank Statement", BankStatement},
		{"glowroad alias", "Glowroad", Generic},
		{"jio mart alias", "Jio Mart", Generic},
		{"snapdeal alias", "Snapdeal", Generic},
		{"unknown", "SomeNewMarketplace", Generic},
		{"empty", "", Generic},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FromLabel(tc.label))
		})
	}
}

func TestForPlatform(t *testing.T) {
	opts := testOpts()
	assert.Equal(t, Amazon, ForPlatform(Amazon, opts).Platform())
	assert.Equal(t, Flipkart, ForPlatform(Flipkart, opts).Platform())
	// Myntra uses the generic conventions under its own label
	assert.Equal(t, Myntra, ForPlatform(Myntra, opts).Platform())
	assert.Equal(t, Generic, ForPlatform(Generic, opts).Platform())
}

func TestAmazonAdapter(t *testing.T) {
	rows := []models.RawRecord{
		{
			"order-id":           "171-0001",
			"purchase-date":      "2025-04-01",
			"product-name":       "Cotton T-Shirt",
			"quantity-purchased": "2",
			"item-price":         "1180",
			"hsn":                "61091000",
			"ship-state":         "Karnataka",
		},
	}

	results := ForPlatform(Amazon, testOpts()).Adapt(rows)
	require.Len(t, results, 1)

	tx := results[0].Transaction
	assert.Empty(t, results[0].Defaulted)
	assert.Equal(t, "171-0001", tx.OrderReference)
	assert.Equal(t, "2025-04-01", tx.Date)
	assert.Equal(t, "Cotton T-Shirt", tx.ProductName)
	assert.Equal(t, 2, tx.Quantity)
	assert.Equal(t, "29", tx.StateCode)
	assert.Equal(t, "Amazon", tx.Platform)

	// 61xx resolves to 18%; Karnataka buyer from a Maharashtra seller is
	// interstate, so the whole tax lands in IGST.
	assert.True(t, tx.GSTRate.Equal(d("18")))
	assert.True(t, tx.TaxableValue.Equal(d("1000")), "taxable = %s", tx.TaxableValue)
	assert.True(t, tx.IGST.Equal(d("180")))
	assert.True(t, tx.CGST.IsZero())
	assert.True(t, tx.SGST.IsZero())
}

func TestAdapterDefaultsMissingFields(t *testing.T) {
	rows := []models.RawRecord{{}}

	results := ForPlatform(Amazon, testOpts()).Adapt(rows)
	require.Len(t, results, 1)

	tx := results[0].Transaction
	assert.NotEmpty(t, tx.OrderReference)
	assert.Equal(t, "2025-06-01", tx.Date)
	assert.Equal(t, "Amazon Sale", tx.Description)
	assert.Equal(t, 1, tx.Quantity)
	assert.True(t, tx.GrossAmount.IsZero())
	assert.Equal(t, "27", tx.StateCode)

	defaulted := results[0].Defaulted
	assert.Contains(t, defaulted, "order_reference")
	assert.Contains(t, defaulted, "occurred_at")
	assert.Contains(t, defaulted, "quantity")
	assert.Contains(t, defaulted, "gross_amount")
	assert.Contains(t, defaulted, "jurisdiction_code")
}

func TestAdapterRowPreservation(t *testing.T) {
	// Every input row yields exactly one result, malformed or not.
	rows := []models.RawRecord{
		{"order-id": "A"},
		{},
		{"item-price": "garbage"},
	}
	results := ForPlatform(Amazon, testOpts()).Adapt(rows)
	assert.Len(t, results, len(rows))
}

func TestGenericAdapterExplicitRate(t *testing.T) {
	rows := []models.RawRecord{
		{
			"Order ID":   "G-1",
			"Date":       "01/04/2025",
			"Product":    "Widget",
			"Quantity":   "1",
			"Sale Price": "118",
			"GST Rate":   "18",
			"State":      "Maharashtra",
		},
	}

	results := ForPlatform(Generic, testOpts()).Adapt(rows)
	require.Len(t, results, 1)

	tx := results[0].Transaction
	// Intrastate sale splits the tax into equal CGST and SGST halves.
	assert.True(t, tx.TaxableValue.Equal(d("100")))
	assert.True(t, tx.IGST.IsZero())
	assert.True(t, tx.CGST.Equal(d("9")))
	assert.True(t, tx.SGST.Equal(d("9")))
}

func TestGenericAdapterHSNFallback(t *testing.T) {
	rows := []models.RawRecord{
		{
			"Order ID":   "G-2",
			"Date":       "2025-04-01",
			"Product":    "Mystery Item",
			"Sale Price": "118",
			"HSN":        "9999",
			"State":      "Delhi",
		},
	}

	results := ForPlatform(Generic, testOpts()).Adapt(rows)
	require.Len(t, results, 1)

	// Unmapped HSN falls back to the standard 18% slab.
	tx := results[0].Transaction
	assert.True(t, tx.GSTRate.Equal(d("18")))
	assert.True(t, tx.IGST.Equal(d("18")))
}

func TestGenericAdapterAddressFallback(t *testing.T) {
	rows := []models.RawRecord{
		{
			"Order ID":         "G-3",
			"Date":             "2025-04-01",
			"Product":          "Kurti",
			"Sale Price":       "118",
			"Shipping Address": "12 Anna Salai, Chennai 600042",
		},
	}

	results := ForPlatform(Generic, testOpts()).Adapt(rows)
	require.Len(t, results, 1)

	// No state column, so the jurisdiction comes out of the address text.
	tx := results[0].Transaction
	assert.Equal(t, "33", tx.StateCode)
	assert.NotContains(t, results[0].Defaulted, "jurisdiction_code")
}

func TestMeeshoAdapterDefaultRate(t *testing.T) {
	rows := []models.RawRecord{
		{
			"Sub Order No":  "M-1",
			"Order Date":    "2025-04-01",
			"SKU Name":      "Saree",
			"Selling Price": "105",
			"State":         "Karnataka",
		},
	}

	results := ForPlatform(Meesho, testOpts()).Adapt(rows)
	require.Len(t, results, 1)

	tx := results[0].Transaction
	assert.True(t, tx.GSTRate.Equal(d("5")), "rate = %s", tx.GSTRate)
	assert.True(t, tx.TaxableValue.Equal(d("100")))
}

func TestBankRowAdapter(t *testing.T) {
	rows := []models.RawRecord{
		{
			"Date":      "01/04/2025",
			"Narration": "NEFT CREDIT",
			"Amount":    "-500.00",
			"Reference": "UTR0001234567",
		},
	}

	results := ForPlatform(BankStatement, testOpts()).Adapt(rows)
	require.Len(t, results, 1)

	tx := results[0].Transaction
	assert.Equal(t, "UTR0001234567", tx.OrderReference)
	// Bank rows are not supplies: amount passes through untaxed.
	assert.True(t, tx.GrossAmount.Equal(d("500.00")))
	assert.True(t, tx.TaxableValue.Equal(d("500.00")))
	assert.True(t, tx.GSTRate.IsZero())
	assert.True(t, tx.IGST.IsZero())
	assert.Equal(t, "Bank Statement", tx.Platform)
}
