/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bcallard/smfdump/pkg/api"
	"github.com/bcallard/smfdump/pkg/archive"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve archived parse runs over HTTP",
	Long: `Serve starts the HTTP API over the local run archive: run
summaries, decoded records per family and subtype, health, and
Prometheus metrics.

Examples:
  smfdump serve --port=8080
  smfdump serve --config=./smfdump.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}

		store, err := archive.Open(cfg.ArchiveDir)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer store.Close()

		cmd.Printf("Serving archive %s on %s:%d\n", cfg.ArchiveDir, cfg.Bind, cfg.Port)
		return api.StartServer(store, api.ServerConfig{
			Bind: cfg.Bind,
			Port: cfg.Port,
		})
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
