package cmd

import (
	"fmt"
	"log"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/routes"
	"github.com/furnitune/furnitune-api/services"
	"github.com/furnitune/furnitune-api/utils"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Println("Starting Furnitune API server...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	// Opens, migrates and (with AUTO_SEED) seeds the database
	if _, err := config.Connection(); err != nil {
		return err
	}
	defer config.CloseDatabase()

	if _, err := services.InitImageServiceFromConfig(cfg); err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}
	utils.UploadDir = cfg.UploadDir

	router := routes.SetupRouter(cfg)

	log.Printf("Server is running on http://localhost:%s", cfg.Port)
	return router.Run(":" + cfg.Port)
}
