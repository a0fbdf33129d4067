package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBIM/internal/config"
	"github.com/OpenTraceLab/OpenTraceBIM/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Set by the root pre-run hook
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "otb",
	Short: "OpenTraceBIM - IFC shape extraction for map rendering",
	Long: `OpenTraceBIM (otb) reads IFC (STEP physical file) building models, classifies
their shape representations and extracts footprints as point loops.

Examples:
  otb info building.ifc                         # Schema, entity and category counts
  otb identify building.ifc                     # Classify every shape representation
  otb extract building.ifc -o building.geojson  # Export footprints as GeoJSON
  otb extract building.ifc --identifier Body --metrics otb.prom`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the root command and flushes the logger it configured.
func execute() error {
	defer func() {
		// Sync on a console stderr sink fails with EINVAL on Linux.
		_ = logger.Sync()
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	logger, err = logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}
	return nil
}
