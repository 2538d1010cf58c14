package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/samdwyer/gridcrawl/internal/level"
	"github.com/samdwyer/gridcrawl/internal/movement"
)

// Config holds game configuration options.
type Config struct {
	// Registry supplies the levels. It must hold StartLevel.
	Registry *level.Registry
	// StartLevel is swapped in when the game starts.
	StartLevel string
	// TickRate is the interval between transition updates.
	TickRate time.Duration
	// Timing is the duration of moves and turns. Zero durations are instant.
	Timing movement.Timing
	// Watcher, when set, streams changed level files into Registry.
	Watcher *level.Watcher
	Logger  *log.Logger
}
