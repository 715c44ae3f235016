// Package summary handles the aggregated JSON report command
package summary

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Finempire/Ecommerce-GST-App/cmd/common"
	"github.com/Finempire/Ecommerce-GST-App/cmd/root"
	"github.com/Finempire/Ecommerce-GST-App/internal/render"
	"github.com/Finempire/Ecommerce-GST-App/internal/states"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Convert a sales report to the aggregated JSON summary",
	Long: `Ingest a marketplace sales report and render the aggregated JSON
summary with rate, HSN, state, platform and monthly breakdowns.`,
	Run: summaryFunc,
}

func summaryFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Summary command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	txs, err := common.LoadTransactions(root.AppConfig, root.SharedFlags.Input, root.SharedFlags.Platform, root.Log)
	if err != nil {
		root.Log.Fatalf("Error processing input: %v", err)
	}

	out, err := render.SummaryJSON(txs, states.NameForCode, time.Now())
	if err != nil {
		root.Log.Fatalf("Error rendering summary JSON: %v", err)
	}

	if err := common.WriteOutput(root.SharedFlags.Output, out, root.Log); err != nil {
		root.Log.Fatalf("Error writing output: %v", err)
	}
	root.Log.Info("Summary completed successfully!")
}
