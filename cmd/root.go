package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/osmpoi/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "osmpoi",
	Short: "OSM POI and address extractor",
	Long:  "Converts an OpenStreetMap PBF extract into a queryable database of points of interest and street addresses, backfilling missing addresses from the nearest known address point.",
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
