// gridcrawl is a grid-based dungeon crawler for the terminal.
//
// Usage:
//
//	gridcrawl [play]       - Play, starting on levels.start
//	gridcrawl levels       - List the levels that load
//	gridcrawl check        - Validate level files, non-zero exit on malformed ones
//
// Global flags:
//
//	--config <path>      - Config file (default: gridcrawl.toml)
//	--levels-dir <dir>   - Load levels from a directory instead of the embedded set
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/samdwyer/gridcrawl/data"
	"github.com/samdwyer/gridcrawl/internal/config"
	"github.com/samdwyer/gridcrawl/internal/level"
	"github.com/samdwyer/gridcrawl/internal/telemetry"
)

var (
	// Global flags
	flagConfig    string
	flagLevelsDir string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridcrawl",
	Short: "Gridcrawl - a grid-based dungeon crawler",
	Long: `Gridcrawl is a turn-by-turn dungeon crawler played on a tile grid.
Step forward, turn in place, and interact with chests and teleporters.

Examples:
  gridcrawl
  gridcrawl play --start level/001.lvl
  gridcrawl levels --levels-dir ./assets
  gridcrawl check --levels-dir ./assets`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath, "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory to load levels from (default: embedded levels)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadConfig reads .env and the config file, then applies flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("levels-dir") {
		cfg.Levels.Dir = flagLevelsDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg, nil
}

// setupTelemetry configures tracing and returns the shutdown function.
// Failure is not fatal; the game still works without observability.
func setupTelemetry(ctx context.Context, logger *log.Logger) func() {
	setupOTelEnv()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, running without tracing", "err", err)
		return func() {}
	}
	return func() {
		if err := shutdown(ctx); err != nil {
			logger.Error("telemetry shutdown failed", "err", err)
		}
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is
// configured and no endpoint was set explicitly.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_GRIDCRAWL_API_KEY")
	if apiKey == "" || os.Getenv(telemetry.EnvEndpoint) != "" {
		return
	}

	dataset := os.Getenv("HONEYCOMB_GRIDCRAWL_DATASET")
	if dataset == "" {
		dataset = "gridcrawl" // default dataset name
	}
	os.Setenv(telemetry.EnvEndpoint, "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

// loadLevels builds the registry from the configured directory, or from the
// embedded levels when none is set.
func loadLevels(ctx context.Context, cfg *config.Config) (*level.Registry, []*level.LoadError, error) {
	fsys := data.FS()
	if cfg.Levels.Dir != "" {
		fsys = os.DirFS(cfg.Levels.Dir)
	}
	return level.LoadDir(ctx, fsys)
}

// newLogger creates the leveled logger used by every subcommand.
func newLogger(cfg *config.Config, w *os.File) (*log.Logger, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridcrawl",
		Level:           lvl,
	}), nil
}
