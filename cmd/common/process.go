// Package common holds the file processing helpers shared by the
// subcommands.
package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Finempire/Ecommerce-GST-App/internal/config"
	"github.com/Finempire/Ecommerce-GST-App/internal/ingest"
	"github.com/Finempire/Ecommerce-GST-App/internal/models"
	"github.com/Finempire/Ecommerce-GST-App/internal/platform"
	"github.com/Finempire/Ecommerce-GST-App/internal/store"
)

// LoadTransactions runs the ingest pipeline over the input file and returns
// the normalized transactions. Rows with defaulted fields are logged so the
// operator can review them before filing.
func LoadTransactions(cfg *config.Config, input, platformLabel string, log *logrus.Logger) ([]models.Transaction, error) {
	if input == "" {
		return nil, fmt.Errorf("no input file specified, use --input")
	}

	file, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close input file")
		}
	}()

	rateStore := store.NewRateStore(cfg.Rates.OverridesFile)
	overrides, err := rateStore.LoadRateOverrides()
	if err != nil {
		log.WithError(err).Warn("Ignoring unreadable rate overrides")
		overrides = nil
	}

	opts := platform.Options{
		SellerStateCode: cfg.Seller.StateCode,
		RateOverrides:   overrides,
	}

	uploads := store.NewMemoryUploadStore()
	pipeline := ingest.NewPipeline(opts, &ingest.RealTextExtractor{Tool: cfg.PDF.ExtractTool}, uploads)

	uploadID, results, err := pipeline.Process(context.Background(), file, filepath.Base(input), platformLabel)
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(results))
	for _, result := range results {
		if len(result.Defaulted) > 0 {
			log.WithFields(logrus.Fields{
				"order":     result.Transaction.OrderReference,
				"defaulted": result.Defaulted,
			}).Warn("Row needed defaulted fields")
		}
		txs = append(txs, result.Transaction)
	}

	log.WithFields(logrus.Fields{
		"upload": uploadID,
		"rows":   len(txs),
	}).Info("Input file processed")
	return txs, nil
}

// WriteOutput writes rendered data to the output file, or stdout when no
// path is given.
func WriteOutput(output string, data []byte, log *logrus.Logger) error {
	if output == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(output, data, 0600); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	log.WithField("file", output).Info("Output written")
	return nil
}
