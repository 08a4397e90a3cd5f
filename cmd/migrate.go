package cmd

import (
	"fmt"

	"github.com/furnitune/furnitune-api/config"
	"github.com/spf13/cobra"
)

var seedAfterMigrate bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Creates every table and index that does not exist yet and adds columns
missing from older databases. With --seed the demo catalog is loaded when the
users table is empty.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&seedAfterMigrate, "seed", false, "Load the demo data into an empty database")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.ConnectDatabase(cfg); err != nil {
		return err
	}
	defer config.CloseDatabase()

	db := config.GetDB()
	if err := config.Migrate(db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")

	if seedAfterMigrate {
		if err := config.Seed(db); err != nil {
			return err
		}
	}
	return nil
}
