package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "furnitune",
	Short: "Furnitune storefront API",
	Long: `Furnitune serves the storefront data layer over HTTP: catalog, cart,
orders, reviews, wishlist and notifications on a single SQL database.

Running without a subcommand starts the API server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the command line
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(reconcileCmd)
}
