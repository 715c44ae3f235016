package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Finempire/Ecommerce-GST-App/internal/parsererror"
	"github.com/Finempire/Ecommerce-GST-App/internal/platform"
	"github.com/Finempire/Ecommerce-GST-App/internal/store"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func testPipeline(extractor TextExtractor) (*Pipeline, *store.MemoryUploadStore) {
	uploads := store.NewMemoryUploadStore()
	opts := platform.Options{
		SellerStateCode: "27",
		Now:             func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) },
	}
	return NewPipeline(opts, extractor, uploads), uploads
}

const genericCSV = `Order ID,Date,Product,Quantity,Sale Price,GST Rate,State
ORD-1,01/04/2025,T-Shirt,1,118,18,Maharashtra
ORD-2,02/04/2025,Jeans,2,236,18,Maharashtra
ORD-3,03/04/2025,Sample,1,0,18,Maharashtra
`

func TestIngestCSV(t *testing.T) {
	p, _ := testPipeline(nil)

	results, err := p.Ingest(context.Background(), strings.NewReader(genericCSV), "sales.csv", "Generic E-commerce")
	require.NoError(t, err)
	require.Len(t, results, 3)

	expected := []struct {
		taxable string
		cgst    string
	}{
		{"100", "9"},
		{"200", "18"},
		{"0", "0"},
	}

	for i, exp := range expected {
		tx := results[i].Transaction
		assert.True(t, tx.TaxableValue.Equal(d(exp.taxable)), "row %d taxable = %s", i, tx.TaxableValue)
		assert.True(t, tx.CGST.Equal(d(exp.cgst)), "row %d cgst = %s", i, tx.CGST)
		assert.True(t, tx.SGST.Equal(tx.CGST), "row %d sgst", i)
		assert.True(t, tx.IGST.IsZero(), "row %d igst", i)
	}
}

func TestIngestJSON(t *testing.T) {
	p, _ := testPipeline(nil)
	body := `[{"Order ID": "J-1", "Date": "2025-04-01", "Product": "Widget", "Sale Price": 118, "GST Rate": 18, "State": "Karnataka"}]`

	results, err := p.Ingest(context.Background(), strings.NewReader(body), "sales.json", "Generic E-commerce")
	require.NoError(t, err)
	require.Len(t, results, 1)

	tx := results[0].Transaction
	assert.True(t, tx.TaxableValue.Equal(d("100")))
	assert.True(t, tx.IGST.Equal(d("18")))
}

func TestIngestUnsupportedFormat(t *testing.T) {
	p, _ := testPipeline(nil)

	_, err := p.Ingest(context.Background(), strings.NewReader("x"), "report.docx", "Amazon")
	require.Error(t, err)

	var unsupported *parsererror.UnsupportedFormatError
	assert.True(t, errors.As(err, &unsupported))
	assert.Equal(t, ".docx", unsupported.Extension)
}

func TestIngestPDFWithMockExtractor(t *testing.T) {
	mockText := `HDFC BANK LTD
Account Number: 50100123456789
01/04/2025 UPI SALE SETTLEMENT 1180.00 CR 5680.00
`
	p, _ := testPipeline(NewMockTextExtractor(mockText, nil))

	results, err := p.Ingest(context.Background(), strings.NewReader("%PDF-1.4"), "statement.pdf", "")
	require.NoError(t, err)
	require.Len(t, results, 1)

	tx := results[0].Transaction
	assert.Equal(t, "Bank Statement", tx.Platform)
	assert.Equal(t, "999799", tx.HSNCode)
	assert.Equal(t, "27", tx.StateCode)
	assert.Equal(t, "2025-04-01", tx.Date)
	// Settlement credits are booked intrastate at the standard rate.
	assert.True(t, tx.GrossAmount.Equal(d("1180.00")))
	assert.True(t, tx.TaxableValue.Equal(d("1000")), "taxable = %s", tx.TaxableValue)
	assert.True(t, tx.CGST.Equal(d("90")))
	assert.True(t, tx.SGST.Equal(d("90")))
	assert.True(t, tx.IGST.IsZero())
}

func TestIngestPDFEmptyStatementCompletes(t *testing.T) {
	// Extraction worked but the text holds only boilerplate; the job must
	// finish with zero transactions rather than fail.
	mockText := `HDFC BANK LTD
Statement of Account
Opening Balance: 5,000.00
`
	p, uploads := testPipeline(NewMockTextExtractor(mockText, nil))

	uploadID, results, err := p.Process(context.Background(), strings.NewReader("%PDF-1.4"), "empty.pdf", "Bank Statement")
	require.NoError(t, err)
	assert.Empty(t, results)

	upload, err := uploads.Upload(uploadID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusCompleted, upload.Status)
	assert.Equal(t, 0, upload.RowCount)
}

func TestIngestHeaderOnlyCSV(t *testing.T) {
	p, _ := testPipeline(nil)

	_, err := p.Ingest(context.Background(), strings.NewReader("Order ID,Date,Product\n"), "empty.csv", "Amazon")
	require.Error(t, err)

	var validation *parsererror.ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Equal(t, "empty.csv", validation.FilePath)
}

func TestIngestPDFExtractionFailure(t *testing.T) {
	p, _ := testPipeline(NewMockTextExtractor("", errors.New("pdftotext not found")))

	_, err := p.Ingest(context.Background(), strings.NewReader("%PDF-1.4"), "statement.pdf", "")
	require.Error(t, err)

	var extraction *parsererror.ExtractionError
	assert.True(t, errors.As(err, &extraction))
}

func TestProcessLifecycle(t *testing.T) {
	p, uploads := testPipeline(nil)

	uploadID, results, err := p.Process(context.Background(), strings.NewReader(genericCSV), "sales.csv", "Generic E-commerce")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	upload, err := uploads.Upload(uploadID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusCompleted, upload.Status)
	assert.Equal(t, 3, upload.RowCount)

	txs, err := uploads.Transactions(uploadID)
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}

func TestProcessFailureMarksUpload(t *testing.T) {
	p, uploads := testPipeline(nil)

	uploadID, _, err := p.Process(context.Background(), strings.NewReader("x"), "report.docx", "Amazon")
	require.Error(t, err)

	upload, storeErr := uploads.Upload(uploadID)
	require.NoError(t, storeErr)
	assert.Equal(t, store.StatusFailed, upload.Status)
	assert.NotEmpty(t, upload.Error)
}
