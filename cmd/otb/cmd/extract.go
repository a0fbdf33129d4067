package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBIM/internal/metrics"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/bim"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/export"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/importer"
	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/shape"
)

var (
	extractOutput      string
	extractIdentifiers []string
	extractWorkers     int
	extractMetrics     string
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.ifc>",
	Short: "Extract footprints as GeoJSON",
	Long: `Identifies and extracts every shape representation of the site, area, wall,
column, door and stair products and writes the results as a GeoJSON
FeatureCollection. Loops are split on the separator point; Axis and FootPrint
representations become lines, everything else polygons.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file, - for stdout (default from config)")
	extractCmd.Flags().StringSliceVar(&extractIdentifiers, "identifier", nil, "only extract these representation identifiers (e.g. Body,Axis)")
	extractCmd.Flags().IntVarP(&extractWorkers, "workers", "w", 0, "concurrent extractions (default from config)")
	extractCmd.Flags().StringVar(&extractMetrics, "metrics", "", "write Prometheus metrics to this textfile")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("identifier") {
		cfg.Extract.Identifiers = extractIdentifiers
	}
	if extractWorkers > 0 {
		cfg.Extract.Workers = extractWorkers
	}
	if extractOutput != "" {
		cfg.Extract.Output = extractOutput
	}
	if extractMetrics != "" {
		cfg.Metrics.Path = extractMetrics
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	filter, err := cfg.IdentifierFilter()
	if err != nil {
		return err
	}

	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	extractor := shape.NewExtractor(g, shape.WithLogger(logger), shape.WithObserver(collector))
	im := importer.New(extractor,
		importer.WithWorkers(cfg.Extract.Workers),
		importer.WithIdentifiers(filter...),
		importer.WithLogger(logger),
	)

	results, err := im.Run(cmd.Context(), bim.Filter(g).Products())
	if err != nil {
		return err
	}
	summary := importer.Summary(results)
	logger.Info("extraction finished",
		zap.String("file", args[0]),
		zap.Int("representations", len(results)),
		zap.Int("ok", summary["ok"]),
		zap.Int("empty", summary["empty"]),
		zap.Int("absent", summary["absent"]),
	)
	if extent := export.Extent(results); !extent.IsEmpty() {
		logger.Info("model extent",
			zap.Float64("width", extent.Width()),
			zap.Float64("depth", extent.Depth()),
			zap.Float64("height", extent.Height()),
			zap.Stringer("center", extent.Center()),
		)
	}

	if err := writeFeatures(cmd, cfg.Extract.Output, results); err != nil {
		return err
	}
	if cfg.Metrics.Path != "" {
		if err := metrics.WriteFile(cfg.Metrics.Path, reg); err != nil {
			return fmt.Errorf("error writing metrics: %w", err)
		}
	}
	return nil
}

func writeFeatures(cmd *cobra.Command, path string, results []importer.Result) error {
	data, err := json.MarshalIndent(export.FeatureCollection(results), "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding features: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("error writing features: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing features: %w", err)
	}
	return nil
}
