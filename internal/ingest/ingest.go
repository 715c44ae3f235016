// Package ingest turns uploaded sales reports and bank statements into
// normalized transactions. It dispatches on file extension, hands tabular
// rows to the matching marketplace adapter and routes PDF statements
// through text extraction and the bank statement parser.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Finempire/Ecommerce-GST-App/internal/bankparser"
	"github.com/Finempire/Ecommerce-GST-App/internal/gst"
	"github.com/Finempire/Ecommerce-GST-App/internal/logging"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
	"github.com/Finempire/Ecommerce-GST-App/internal/parsererror"
	"github.com/Finempire/Ecommerce-GST-App/internal/platform"
	"github.com/Finempire/Ecommerce-GST-App/internal/store"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for the ingest package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Bank statement rows carry no product classification, so they are booked
// under the residual services HSN at the standard rate.
const (
	bankHSNCode = "999799"
	bankGSTRate = 18
)

// Pipeline ingests uploaded files into normalized transactions.
type Pipeline struct {
	Extractor TextExtractor
	Store     store.UploadStore
	Opts      platform.Options
}

// NewPipeline creates an ingest pipeline. A nil extractor defaults to the
// pdftotext-backed implementation.
func NewPipeline(opts platform.Options, extractor TextExtractor, st store.UploadStore) *Pipeline {
	if extractor == nil {
		extractor = NewRealTextExtractor()
	}
	return &Pipeline{
		Extractor: extractor,
		Store:     st,
		Opts:      opts,
	}
}

// Ingest parses the given stream according to the file name's extension and
// returns normalized transactions with their defaulted-field annotations.
// Tabular formats go through the adapter for platformLabel; PDFs are parsed
// as bank statements regardless of the label.
func (p *Pipeline) Ingest(ctx context.Context, r io.Reader, fileName, platformLabel string) ([]platform.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	log.Info("Ingesting file",
		logging.Field{Key: logging.FieldFile, Value: fileName},
		logging.Field{Key: logging.FieldPlatform, Value: platformLabel})

	switch ext {
	case ".csv":
		records, err := readCSV(r)
		if err != nil {
			return nil, wrapReadError(fileName, "csv", err)
		}
		return p.adapt(records, platformLabel), nil

	case ".xlsx", ".xls":
		records, err := readXLSX(r)
		if err != nil {
			return nil, wrapReadError(fileName, "excel", err)
		}
		return p.adapt(records, platformLabel), nil

	case ".json":
		records, err := readJSON(r)
		if err != nil {
			return nil, wrapReadError(fileName, "json", err)
		}
		return p.adapt(records, platformLabel), nil

	case ".pdf":
		return p.ingestPDF(r, fileName)

	default:
		return nil, &parsererror.UnsupportedFormatError{Extension: ext}
	}
}

// wrapReadError distinguishes an empty-but-well-formed file from a malformed
// one. Emptiness is a validation failure; everything else is a parse failure.
func wrapReadError(fileName, field string, err error) error {
	if errors.Is(err, errNoDataRows) {
		return &parsererror.ValidationError{FilePath: fileName, Reason: "file has no data rows"}
	}
	return &parsererror.ParseError{Source: fileName, Field: field, Err: err}
}

func (p *Pipeline) adapt(records []models.RawRecord, platformLabel string) []platform.Result {
	adapter := platform.ForPlatform(platform.FromLabel(platformLabel), p.Opts)
	results := adapter.Adapt(records)

	log.Info("Adapted rows",
		logging.Field{Key: logging.FieldPlatform, Value: string(adapter.Platform())},
		logging.Field{Key: logging.FieldRows, Value: len(results)})
	return results
}

// ingestPDF spools the stream to a temporary file, extracts its text and
// parses it as a bank statement.
func (p *Pipeline) ingestPDF(r io.Reader, fileName string) ([]platform.Result, error) {
	tempFile, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			log.WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tempFile.Name()})
		}
	}()

	if _, err = io.Copy(tempFile, r); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	text, err := p.Extractor.ExtractText(tempFile.Name())
	if err != nil {
		return nil, &parsererror.ExtractionError{FilePath: fileName, Err: err}
	}

	// Extraction succeeded, so the job completes even when the parser
	// recognizes nothing; the worst case is zero transactions.
	statement := bankparser.ParseText(text)

	log.Info("Parsed bank statement",
		logging.Field{Key: logging.FieldFile, Value: fileName},
		logging.Field{Key: "bank", Value: statement.BankName},
		logging.Field{Key: logging.FieldRows, Value: len(statement.Lines)})

	return p.convertBankStatement(statement), nil
}

// convertBankStatement books every statement line as a standard-rated
// intrastate transaction in the seller's own state. Credits and debits
// both flow through; the sign lives in the description for review.
func (p *Pipeline) convertBankStatement(statement *models.BankStatement) []platform.Result {
	results := make([]platform.Result, 0, len(statement.Lines))
	sellerState := p.Opts.SellerStateCode
	if sellerState == "" {
		sellerState = "27"
	}

	for _, line := range statement.Lines {
		amount := line.Amount()
		if !amount.IsPositive() {
			continue
		}

		var defaulted []string
		reference := line.Reference
		if reference == "" {
			reference = uuid.NewString()
			defaulted = append(defaulted, "order_reference")
		}

		description := line.Description
		if description == "" {
			description = "Bank Transaction"
		}

		tx := models.Transaction{
			OrderReference: reference,
			Date:           line.Date,
			Description:    description,
			ProductName:    "Bank Transaction",
			Quantity:       1,
			GrossAmount:    amount,
			HSNCode:        bankHSNCode,
			StateCode:      sellerState,
			Platform:       string(platform.BankStatement),
		}

		breakdown := gst.Decompose(amount, decimal.NewFromInt(bankGSTRate), false)
		tx.TaxableValue = breakdown.TaxableValue
		tx.GSTRate = breakdown.Rate
		tx.IGST = breakdown.IGST
		tx.CGST = breakdown.CGST
		tx.SGST = breakdown.SGST

		results = append(results, platform.Result{Transaction: tx, Defaulted: defaulted})
	}
	return results
}

// Process runs the full upload lifecycle against the pipeline's store:
// the upload is registered, moved to processing, ingested and either
// completed with its transactions recorded or marked failed.
func (p *Pipeline) Process(ctx context.Context, r io.Reader, fileName, platformLabel string) (string, []platform.Result, error) {
	uploadID := uuid.NewString()
	if _, err := p.Store.CreateUpload(uploadID, fileName, platformLabel); err != nil {
		return "", nil, err
	}

	if err := p.Store.UpdateUploadStatus(uploadID, store.StatusProcessing, nil); err != nil {
		return uploadID, nil, err
	}

	results, err := p.Ingest(ctx, r, fileName, platformLabel)
	if err != nil {
		if statusErr := p.Store.UpdateUploadStatus(uploadID, store.StatusFailed, err); statusErr != nil {
			log.WithError(statusErr).Error("Failed to record upload failure",
				logging.Field{Key: logging.FieldUploadID, Value: uploadID})
		}
		return uploadID, nil, err
	}

	txs := make([]models.Transaction, 0, len(results))
	for _, result := range results {
		txs = append(txs, result.Transaction)
	}
	if err := p.Store.RecordTransactions(uploadID, txs); err != nil {
		return uploadID, nil, err
	}
	if err := p.Store.UpdateUploadStatus(uploadID, store.StatusCompleted, nil); err != nil {
		return uploadID, nil, err
	}

	log.Info("Upload processed",
		logging.Field{Key: logging.FieldUploadID, Value: uploadID},
		logging.Field{Key: logging.FieldRows, Value: len(txs)},
		logging.Field{Key: logging.FieldStatus, Value: string(store.StatusCompleted)})
	return uploadID, results, nil
}
