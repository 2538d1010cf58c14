package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the available levels",
	Long:  `Loads the level directory and prints every level that decoded successfully.`,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
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
		logger.Warn("skipping level", "level", f.Name, "err", f.Err)
	}

	if registry.Count() == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()
	for _, name := range registry.Names() {
		l, err := registry.Get(name)
		if err != nil {
			return err
		}
		marker := " "
		if name == cfg.Levels.Start {
			marker = "*"
		}
		next := "-"
		if n, _, ok := l.Progression(); ok {
			next = n
		}
		fmt.Printf(" %s %-20s %2dx%-2d  %2d interactables  next: %s\n",
			marker, name, l.Width(), l.Height(), len(l.Interactables()), next)
	}
	return nil
}
