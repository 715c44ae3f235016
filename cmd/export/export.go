// Package export handles the flat CSV export command
package export

import (
	"github.com/spf13/cobra"

	"github.com/Finempire/Ecommerce-GST-App/cmd/common"
	"github.com/Finempire/Ecommerce-GST-App/cmd/root"
	"github.com/Finempire/Ecommerce-GST-App/internal/render"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a sales report to the flat GST CSV",
	Long: `Ingest a marketplace sales report or bank statement and write the
normalized transactions as the 14-column GST working CSV.`,
	Run: exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Export command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	txs, err := common.LoadTransactions(root.AppConfig, root.SharedFlags.Input, root.SharedFlags.Platform, root.Log)
	if err != nil {
		root.Log.Fatalf("Error processing input: %v", err)
	}

	out, err := render.ExportCSV(txs)
	if err != nil {
		root.Log.Fatalf("Error rendering CSV: %v", err)
	}

	if err := common.WriteOutput(root.SharedFlags.Output, []byte(out), root.Log); err != nil {
		root.Log.Fatalf("Error writing output: %v", err)
	}
	root.Log.Info("Export completed successfully!")
}
