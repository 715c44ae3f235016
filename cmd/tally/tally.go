// Package tally handles Tally voucher export commands
package tally

import (
	"github.com/spf13/cobra"

	"github.com/Finempire/Ecommerce-GST-App/cmd/common"
	"github.com/Finempire/Ecommerce-GST-App/cmd/root"
	"github.com/Finempire/Ecommerce-GST-App/internal/render"
)

var masters bool

// Cmd represents the tally command
var Cmd = &cobra.Command{
	Use:   "tally",
	Short: "Convert a sales report to Tally import XML",
	Long: `Ingest a marketplace sales report and render it as a Tally
"Import Data" envelope with one Sales voucher per transaction.
With --masters the matching Sundry Debtors ledger masters are
emitted instead of vouchers.`,
	Run: tallyFunc,
}

func init() {
	Cmd.Flags().BoolVar(&masters, "masters", false, "Emit ledger masters instead of vouchers")
}

func tallyFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Tally export command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	txs, err := common.LoadTransactions(root.AppConfig, root.SharedFlags.Input, root.SharedFlags.Platform, root.Log)
	if err != nil {
		root.Log.Fatalf("Error processing input: %v", err)
	}

	var out []byte
	if masters {
		seen := make(map[string]bool)
		var platforms []string
		for _, tx := range txs {
			if tx.Platform != "" && !seen[tx.Platform] {
				seen[tx.Platform] = true
				platforms = append(platforms, tx.Platform)
			}
		}
		out, err = render.LedgerMastersXML(platforms)
	} else {
		out, err = render.TallyXML(txs, root.AppConfig.Seller.CompanyName)
	}
	if err != nil {
		root.Log.Fatalf("Error rendering Tally XML: %v", err)
	}

	if err := common.WriteOutput(root.SharedFlags.Output, out, root.Log); err != nil {
		root.Log.Fatalf("Error writing output: %v", err)
	}
	root.Log.Info("Tally export completed successfully!")
}
