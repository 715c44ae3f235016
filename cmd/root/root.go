// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Finempire/Ecommerce-GST-App/internal/bankparser"
	"github.com/Finempire/Ecommerce-GST-App/internal/config"
	"github.com/Finempire/Ecommerce-GST-App/internal/ingest"
	"github.com/Finempire/Ecommerce-GST-App/internal/logging"
	"github.com/Finempire/Ecommerce-GST-App/internal/render"
	"github.com/Finempire/Ecommerce-GST-App/internal/store"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Platform string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig holds the resolved configuration for the current run
	AppConfig *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "gst-app",
		Short: "A CLI tool to normalize e-commerce sales reports and produce GST filings.",
		Long: `gst-app ingests marketplace sales reports and bank statements,
normalizes them into GST-ready transactions and renders Tally import XML,
GSTR-1 JSON and accounting summaries.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to gst-app!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			AppConfig = config.GetGlobalConfig()

			// Set the configured logger for all packages
			adapter := logging.NewLogrusAdapterFromLogger(Log)
			ingest.SetLogger(adapter)
			render.SetLogger(adapter)
			bankparser.SetLogger(adapter)
			store.SetLogger(Log)
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Platform, "platform", "p", "", "Source platform (Amazon, Flipkart, Meesho, Paytm, ...)")
}
