// Package config loads gridcrawl.toml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/samdwyer/gridcrawl/internal/movement"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "gridcrawl.toml"

// Environment variables that override the file.
const (
	EnvLogLevel  = "GRIDCRAWL_LOG_LEVEL"
	EnvLevelsDir = "GRIDCRAWL_LEVELS_DIR"
)

// Config is the full contents of gridcrawl.toml.
type Config struct {
	Levels   LevelsConfig   `toml:"levels"`
	Movement MovementConfig `toml:"movement"`
	Game     GameConfig     `toml:"game"`
	Logging  LoggingConfig  `toml:"logging"`
}

// LevelsConfig selects where levels come from and which one starts.
type LevelsConfig struct {
	Dir   string `toml:"dir"`   // empty uses the embedded levels
	Start string `toml:"start"` // level swapped in on start
	Watch bool   `toml:"watch"` // reload changed files from Dir
}

// MovementConfig holds the transition durations.
type MovementConfig struct {
	MoveDuration time.Duration `toml:"move_duration"` // 0 = instant
	TurnDuration time.Duration `toml:"turn_duration"` // 0 = instant
}

// GameConfig tunes the game loop.
type GameConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
}

// LoggingConfig sets the log level and the file written while playing.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Timing returns the transition durations for the movement package.
func (c *Config) Timing() movement.Timing {
	return movement.Timing{Move: c.Movement.MoveDuration, Turn: c.Movement.TurnDuration}
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging.level: %w", err)
	}
	return lvl, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Levels.Start == "" {
		errs = append(errs, errors.New("levels.start is empty"))
	}
	if c.Levels.Watch && c.Levels.Dir == "" {
		errs = append(errs, errors.New("levels.watch needs levels.dir"))
	}
	if c.Movement.MoveDuration < 0 || c.Movement.TurnDuration < 0 {
		errs = append(errs, errors.New("movement durations must not be negative"))
	}
	if c.Game.TickRate <= 0 {
		errs = append(errs, errors.New("game.tick_rate must be positive"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Load reads the config file at path on top of the defaults. A missing file
// yields the defaults. Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := Parse(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// Parse decodes TOML into cfg. Keys that are not part of the configuration
// are an error.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLevelsDir); ok && v != "" {
		c.Levels.Dir = v
	}
}

// LoadEnv loads a .env file into the process environment. A missing file is
// not an error.
func LoadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Levels: LevelsConfig{
			Start: "level/000.lvl",
		},
		Movement: MovementConfig{
			MoveDuration: 200 * time.Millisecond,
			TurnDuration: 120 * time.Millisecond,
		},
		Game: GameConfig{
			TickRate: 16 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "gridcrawl.log",
		},
	}
}
