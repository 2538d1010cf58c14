package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/gridcrawl/internal/game"
	"github.com/samdwyer/gridcrawl/internal/level"
)

var (
	flagStart string
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game (default)",
	Long: `Starts the game on the configured start level.

Controls:
  Up / W      - Move forward
  Left / A    - Turn left
  Right / D   - Turn right
  Down / S    - Turn around
  Space       - Interact with what you face
  Q / Esc     - Quit`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStart, "start", "", "Level to start on (default: levels.start)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload changed level files from --levels-dir")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("start") {
		cfg.Levels.Start = flagStart
	}
	if cmd.Flags().Changed("watch") {
		cfg.Levels.Watch = flagWatch
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// The terminal belongs to the game; logs go to a file.
	logFile, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := newLogger(cfg, logFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	shutdown := setupTelemetry(ctx, logger)
	defer shutdown()

	registry, failures, err := loadLevels(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}
	for _, f := range failures {
		logger.Error("level failed to load", "level", f.Name, "err", f.Err)
	}
	logger.Info("levels loaded", "count", registry.Count(), "failures", len(failures))

	var watcher *level.Watcher
	if cfg.Levels.Watch {
		watcher, err = level.NewWatcher(cfg.Levels.Dir)
		if err != nil {
			return fmt.Errorf("watch levels: %w", err)
		}
		defer watcher.Close()
	}

	g, err := game.New(game.Config{
		Registry:   registry,
		StartLevel: cfg.Levels.Start,
		TickRate:   cfg.Game.TickRate,
		Timing:     cfg.Timing(),
		Watcher:    watcher,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		logger.Error("game error", "err", err)
		return err
	}
	return nil
}
