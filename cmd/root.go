package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stadt-karlsruhe/geo-assigner/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geo-assigner",
	Short: "Copy properties between intersecting GeoJSON features",
	Long:  "Assigns a property from one set of GeoJSON features to another based on spatial intersection, with a pluggable conflict resolution strategy.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
