package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/osmpoi/internal/export"
	"github.com/sells-group/osmpoi/internal/extract"
	"github.com/sells-group/osmpoi/internal/model"
	"github.com/sells-group/osmpoi/internal/store"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.osm.pbf>",
	Short: "Extract POIs and addresses from a PBF file",
	Long:  "Runs the two-pass extraction over an OSM PBF extract, enriches POIs with nearest known addresses, and writes the results to the configured store.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			cfg.Store.Path = out
		}
		if dir, _ := cmd.Flags().GetString("json-dir"); dir != "" {
			cfg.Export.JSONDir = dir
		}
		if geojson, _ := cmd.Flags().GetBool("geojson"); geojson {
			cfg.Export.GeoJSON = true
		}

		start := time.Now()
		pois, addresses, err := runExtraction(ctx, args[0])
		if err != nil {
			return err
		}

		if err := persist(ctx, pois, addresses); err != nil {
			return err
		}

		zap.L().Info("extraction complete",
			zap.Int("pois", len(pois)),
			zap.Int("addresses", len(addresses)),
			zap.Duration("total", time.Since(start)))
		fmt.Printf("Extracted %d POIs and %d addresses in %s\n",
			len(pois), len(addresses), time.Since(start).Round(time.Millisecond))
		return nil
	},
}

// runExtraction performs both passes and the enrichment step.
func runExtraction(ctx context.Context, path string) ([]model.PointOfInterest, []model.Address, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	zap.L().Info("pass 1: reading node coordinates", zap.String("input", path))
	coords, err := extract.BuildCoordIndex(ctx, f, cfg.Extract.Procs)
	if err != nil {
		return nil, nil, err
	}

	zap.L().Info("pass 2: extracting POIs and addresses")
	pipeline := extract.NewPipeline(coords, cfg.Extract.Procs)
	if err := pipeline.Run(ctx, f); err != nil {
		return nil, nil, err
	}
	pois := pipeline.POIs()
	enriched := extract.EnrichPOIs(pois, pipeline.Index())

	nodePOIs := 0
	withAddress := 0
	for i := range pois {
		if pois[i].OSMType == model.OriginNode {
			nodePOIs++
		}
		if pois[i].HasAddress() {
			withAddress++
		}
	}
	zap.L().Info("final results",
		zap.Int("pois", len(pois)),
		zap.Int("node_pois", nodePOIs),
		zap.Int("way_pois", len(pois)-nodePOIs),
		zap.Int("addresses", len(pipeline.Addresses())),
		zap.Int("pois_enriched", enriched),
		zap.Int("pois_with_address", withAddress))

	return pois, pipeline.Addresses(), nil
}

// persist writes the collections to the configured store and optional
// document sinks.
func persist(ctx context.Context, pois []model.PointOfInterest, addresses []model.Address) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	if err := st.InsertPOIs(ctx, pois); err != nil {
		return err
	}
	if err := st.InsertAddresses(ctx, addresses); err != nil {
		return err
	}
	if err := st.Optimize(ctx); err != nil {
		return err
	}

	if cfg.Export.JSONDir != "" {
		if err := export.WriteJSON(cfg.Export.JSONDir, pois, addresses); err != nil {
			return err
		}
	}
	if cfg.Export.GeoJSON {
		if err := export.WriteGeoJSON(cfg.Export.GeoJSONPath, pois); err != nil {
			return err
		}
	}
	return nil
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.Path)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func init() {
	extractCmd.Flags().String("out", "", "SQLite output path (overrides store.path)")
	extractCmd.Flags().String("json-dir", "", "directory for JSON document export")
	extractCmd.Flags().Bool("geojson", false, "also write POIs as GeoJSON")
	rootCmd.AddCommand(extractCmd)
}
