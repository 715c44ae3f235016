// Package gstr handles GSTR-1 return export commands
package gstr

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Finempire/Ecommerce-GST-App/cmd/common"
	"github.com/Finempire/Ecommerce-GST-App/cmd/root"
	"github.com/Finempire/Ecommerce-GST-App/internal/render"
)

var (
	gstin         string
	table14       bool
	operatorGSTIN string
)

// Cmd represents the gstr command
var Cmd = &cobra.Command{
	Use:   "gstr",
	Short: "Convert a sales report to GSTR-1 JSON",
	Long: `Ingest a marketplace sales report and render the GSTR-1 return
JSON with B2B, B2CS, HSN and document summary sections. With
--table14 the e-commerce operator TCS annexure is emitted instead.`,
	Run: gstrFunc,
}

func init() {
	Cmd.Flags().StringVar(&gstin, "gstin", "", "Seller GSTIN (defaults to configured seller)")
	Cmd.Flags().BoolVar(&table14, "table14", false, "Emit the e-commerce operator annexure")
	Cmd.Flags().StringVar(&operatorGSTIN, "operator-gstin", "", "E-commerce operator GSTIN for the annexure")
}

func gstrFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("GSTR export command called")
	root.Log.Infof("Input file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	txs, err := common.LoadTransactions(root.AppConfig, root.SharedFlags.Input, root.SharedFlags.Platform, root.Log)
	if err != nil {
		root.Log.Fatalf("Error processing input: %v", err)
	}

	sellerGSTIN := gstin
	if sellerGSTIN == "" {
		sellerGSTIN = root.AppConfig.Seller.GSTIN
	}

	var out []byte
	if table14 {
		out, err = render.GSTRTable14(txs, operatorGSTIN)
	} else {
		out, err = render.GSTR1(txs, sellerGSTIN, time.Now())
	}
	if err != nil {
		root.Log.Fatalf("Error rendering GSTR JSON: %v", err)
	}

	if err := common.WriteOutput(root.SharedFlags.Output, out, root.Log); err != nil {
		root.Log.Fatalf("Error writing output: %v", err)
	}
	root.Log.Info("GSTR export completed successfully!")
}
