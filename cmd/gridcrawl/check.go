package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/gridcrawl/internal/level"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate level files",
	Long: `Loads every level and reports malformed files as errors and authoring
problems, such as teleporters into the void, as warnings. Exits non-zero when
any file is malformed or the start level is missing.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	registry, failures, err := loadLevels(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}
	for _, f := range failures {
		logger.Error("malformed level", "level", f.Name, "err", f.Err)
	}

	warnings := 0
	for _, name := range registry.Names() {
		l, err := registry.Get(name)
		if err != nil {
			return err
		}
		for _, problem := range level.Validate(l, registry) {
			logger.Warn("level problem", "level", name, "problem", problem)
			warnings++
		}
	}

	if !registry.Has(cfg.Levels.Start) {
		return fmt.Errorf("start level %q: %w", cfg.Levels.Start, level.ErrUnknownLevel)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d malformed level(s): %w", len(failures), level.JoinLoadErrors(failures))
	}

	fmt.Printf("%d level(s) ok, %d warning(s)\n", registry.Count(), warnings)
	return nil
}
