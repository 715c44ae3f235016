package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Finempire/Ecommerce-GST-App/internal/models"
	"github.com/Finempire/Ecommerce-GST-App/internal/states"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			OrderReference: "ORD-1",
			Date:           "2025-04-01",
			Description:    "Cotton T-Shirt",
			ProductName:    "Cotton T-Shirt",
			Quantity:       1,
			GrossAmount:    d("118"),
			TaxableValue:   d("100"),
			GSTRate:        d("18"),
			CGST:           d("9"),
			SGST:           d("9"),
			HSNCode:        "6109",
			StateCode:      "27",
			Platform:       "Amazon",
		},
		{
			OrderReference: "ORD-2",
			Date:           "2025-04-02",
			Description:    "Jeans",
			ProductName:    "Jeans",
			Quantity:       2,
			GrossAmount:    d("236"),
			TaxableValue:   d("200"),
			GSTRate:        d("18"),
			IGST:           d("36"),
			HSNCode:        "6204",
			StateCode:      "29",
			Platform:       "Flipkart",
		},
	}
}

func TestExportCSV(t *testing.T) {
	out, err := ExportCSV(sampleTransactions())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"Order ID,Date,Platform,Product,HSN Code,Quantity,Sale Price,Taxable Value,GST Rate,IGST,CGST,SGST,Total Tax,State Code",
		strings.TrimSpace(lines[0]))

	assert.Contains(t, lines[1], "ORD-1")
	assert.Contains(t, lines[1], "01/04/2025")
	assert.Contains(t, lines[1], "18%")
	assert.Contains(t, lines[1], "18.00") // total tax
	assert.Contains(t, lines[2], "36.00")
}

func TestTallyXML(t *testing.T) {
	out, err := TallyXML(sampleTransactions(), "Acme Traders")
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, "<TALLYREQUEST>Import Data</TALLYREQUEST>")
	assert.Contains(t, xml, "<SVCURRENTCOMPANY>Acme Traders</SVCURRENTCOMPANY>")
	assert.Contains(t, xml, `VCHTYPE="Sales"`)
	assert.Contains(t, xml, "<VOUCHERNUMBER>ECOM/2025/00001</VOUCHERNUMBER>")
	assert.Contains(t, xml, "<VOUCHERNUMBER>ECOM/2025/00002</VOUCHERNUMBER>")
	assert.Contains(t, xml, "<DATE>20250401</DATE>")
	assert.Contains(t, xml, "<PARTYLEDGERNAME>Amazon Sales</PARTYLEDGERNAME>")
	assert.Contains(t, xml, "<LEDGERNAME>Sales - E-commerce</LEDGERNAME>")
	// Intrastate voucher books CGST and SGST, never IGST
	assert.Contains(t, xml, "<LEDGERNAME>Output CGST</LEDGERNAME>")
	assert.Contains(t, xml, "<LEDGERNAME>Output IGST</LEDGERNAME>")
	// Party entry is the negative gross
	assert.Contains(t, xml, "<AMOUNT>-118.00</AMOUNT>")
	assert.Contains(t, xml, "<HSNCODE>6109</HSNCODE>")
}

func TestTallyXMLOmitsZeroTaxLegs(t *testing.T) {
	txs := sampleTransactions()[:1] // intrastate only
	out, err := TallyXML(txs, "")
	require.NoError(t, err)

	xml := string(out)
	assert.NotContains(t, xml, "Output IGST")
	assert.Contains(t, xml, "Output CGST")
	assert.Contains(t, xml, "Output SGST")
}

func TestLedgerMastersXML(t *testing.T) {
	out, err := LedgerMastersXML([]string{"Amazon", "Flipkart"})
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, "<REPORTNAME>All Masters</REPORTNAME>")
	assert.Contains(t, xml, `NAME="Amazon Sales"`)
	assert.Contains(t, xml, `NAME="Flipkart Sales"`)
	assert.Contains(t, xml, "<PARENT>Sundry Debtors</PARENT>")
}

func TestGSTR1(t *testing.T) {
	now := time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC)
	out, err := GSTR1(sampleTransactions(), "27ABCDE1234F1Z5", now)
	require.NoError(t, err)

	var data GSTR1Data
	require.NoError(t, json.Unmarshal(out, &data))

	assert.Equal(t, "27ABCDE1234F1Z5", data.GSTIN)
	assert.Equal(t, "042025", data.Period)
	assert.Equal(t, "354.00", data.GrossTurnover.String())
	assert.Empty(t, data.B2B)

	require.Len(t, data.B2CS, 2)
	intra := data.B2CS[0]
	assert.Equal(t, "27", intra.PlaceOfSupply)
	assert.Equal(t, "INTRA", intra.SupplyType)
	assert.Equal(t, "OE", intra.Type)
	assert.Equal(t, "100.00", intra.Taxable.String())
	assert.Equal(t, "9.00", intra.CGST.String())

	inter := data.B2CS[1]
	assert.Equal(t, "29", inter.PlaceOfSupply)
	assert.Equal(t, "INTER", inter.SupplyType)
	assert.Equal(t, "36.00", inter.IGST.String())

	require.Len(t, data.HSN.Data, 2)
	assert.Equal(t, 1, data.HSN.Data[0].Number)
	assert.Equal(t, "6109", data.HSN.Data[0].HSNCode)
	assert.Equal(t, "NOS-NUMBERS", data.HSN.Data[0].UQC)

	require.Len(t, data.Docs.Details, 1)
	docs := data.Docs.Details[0].Docs[0]
	assert.Equal(t, "ECOM/2025/00001", docs.From)
	assert.Equal(t, "ECOM/2025/00002", docs.To)
	assert.Equal(t, 2, docs.Total)
}

func TestGSTR1RoutesRegisteredBuyersToB2B(t *testing.T) {
	txs := sampleTransactions()
	txs[1].CustomerTaxID = "29XYZAB5678C1Z2"
	txs[1].InvoiceNumber = "INV-42"

	out, err := GSTR1(txs, "27ABCDE1234F1Z5", time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var data GSTR1Data
	require.NoError(t, json.Unmarshal(out, &data))

	require.Len(t, data.B2B, 1)
	assert.Equal(t, "29XYZAB5678C1Z2", data.B2B[0].CTIN)
	require.Len(t, data.B2B[0].Invoices, 1)
	assert.Equal(t, "INV-42", data.B2B[0].Invoices[0].Number)
	assert.Equal(t, "02-04-2025", data.B2B[0].Invoices[0].Date)

	// The registered sale left the B2CS buckets
	require.Len(t, data.B2CS, 1)
	assert.Equal(t, "27", data.B2CS[0].PlaceOfSupply)
}

func TestGSTRTable14(t *testing.T) {
	out, err := GSTRTable14(sampleTransactions(), "27OPERATOR1234Z")
	require.NoError(t, err)

	var table Table14
	require.NoError(t, json.Unmarshal(out, &table))

	require.Len(t, table.Ecom, 2)
	assert.Equal(t, "27OPERATOR1234Z", table.Ecom[0].OperatorGSTIN)
	assert.Equal(t, "0.1", table.Ecom[0].DiffPercent.String())
	assert.Equal(t, "ORD-1", table.Ecom[0].Invoice.Number)
	assert.Equal(t, "01-04-2025", table.Ecom[0].Invoice.Date)
}

func TestSummaryJSON(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	out, err := SummaryJSON(sampleTransactions(), states.NameForCode, now)
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, json.Unmarshal(out, &summary))

	assert.Equal(t, 2, summary.TotalTransactions)
	assert.Equal(t, "354.00", summary.Totals.SalePrice.String())
	assert.Equal(t, "300.00", summary.Totals.TaxableValue.String())
	assert.Equal(t, "54.00", summary.Totals.TotalTax.String())

	require.Len(t, summary.GSTRateSummary, 1)
	assert.Equal(t, "18%", summary.GSTRateSummary[0].Rate)
	assert.Equal(t, 2, summary.GSTRateSummary[0].TransactionCount)

	// HSN and state breakdowns sort by taxable value descending
	require.Len(t, summary.HSNSummary, 2)
	assert.Equal(t, "6204", summary.HSNSummary[0].HSNCode)

	require.Len(t, summary.StateSummary, 2)
	assert.Equal(t, "29", summary.StateSummary[0].StateCode)
	assert.Equal(t, "Karnataka", summary.StateSummary[0].StateName)

	require.Len(t, summary.PlatformSummary, 2)
	assert.Equal(t, "Flipkart", summary.PlatformSummary[0].Platform)

	require.Len(t, summary.MonthlySummary, 1)
	assert.Equal(t, "2025-04", summary.MonthlySummary[0].Month)
	assert.Equal(t, 2, summary.MonthlySummary[0].TransactionCount)

	require.Len(t, summary.Transactions, 2)
	assert.Equal(t, "01/04/2025", summary.Transactions[0].Date)
}
