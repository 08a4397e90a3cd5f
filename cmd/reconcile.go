package cmd

import (
	"fmt"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/services"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute every product's rating from its reviews",
	RunE:  runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := config.Connection()
	if err != nil {
		return err
	}
	defer config.CloseDatabase()

	count, err := services.NewProductService(db).ReconcileRatings()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reconciled ratings for %d products\n", count)
	return nil
}
