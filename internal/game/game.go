package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gridcrawl/internal/interact"
	"github.com/samdwyer/gridcrawl/internal/level"
	"github.com/samdwyer/gridcrawl/internal/movement"
	"github.com/samdwyer/gridcrawl/internal/telemetry"
	"github.com/samdwyer/gridcrawl/internal/ui"
	"github.com/samdwyer/gridcrawl/internal/world"
)

// tick is posted by the ticker goroutine to drive transitions.
type tick struct {
	dt time.Duration
}

// reloaded is posted after a level file was re-read.
type reloaded struct {
	name string
	err  error
}

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	world    *world.World
	logger   *log.Logger
	state    State
	running  bool
}

// New creates a new game instance.
func New(cfg Config) (*Game, error) {
	if cfg.Registry == nil {
		return nil, errors.New("game: no level registry")
	}
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("game: tick rate %v must be positive", cfg.TickRate)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	renderer := ui.NewRenderer(screen)

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: renderer,
		world: world.New(cfg.Registry, world.Options{
			Timing: cfg.Timing,
			Scene:  renderer,
			Logger: cfg.Logger,
		}),
		logger:  cfg.Logger,
		state:   StateLoading,
		running: true,
	}, nil
}

// Run executes the main game loop.
// The screen stays open until Close.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	// Initialize game (traced)
	initCtx, initSpan := tracer.Start(ctx, "game.init")
	g.renderer.SetMessage("Loading...")
	g.renderer.Render(g.world.Snapshot())

	if err := g.world.Swap(initCtx, g.cfg.StartLevel, nil); err != nil {
		initSpan.RecordError(err)
		initSpan.End()
		return fmt.Errorf("start level: %w", err)
	}
	initSpan.SetAttributes(
		attribute.String("level.start", g.cfg.StartLevel),
		attribute.Int("level.count", g.cfg.Registry.Count()),
	)
	initSpan.End()

	g.state = StatePlaying
	g.renderer.SetMessage("Arrows or WASD to move, space to interact, q to quit")
	g.logger.Info("game started", "level", g.cfg.StartLevel)

	var wg sync.WaitGroup
	done := make(chan struct{})
	defer func() {
		close(done)
		wg.Wait()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		g.runTicker(done)
	}()
	if g.cfg.Watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.runWatcher(done)
		}()
	}

	// Main game loop
	for g.running {
		// Render current state
		g.renderer.Render(g.world.Snapshot())

		// Handle input (blocking)
		if !g.handleEvent(ctx, g.screen.PollEvent()) {
			break
		}
	}
	return nil
}

// runTicker posts a tick event at the configured rate until done closes.
func (g *Game) runTicker(done <-chan struct{}) {
	ticker := time.NewTicker(g.cfg.TickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			// A full queue drops the tick; the next one carries the elapsed time.
			if err := g.screen.PostEvent(tcell.NewEventInterrupt(tick{dt: now.Sub(last)})); err == nil {
				last = now
			}
		}
	}
}

// runWatcher reloads changed level files into the registry.
func (g *Game) runWatcher(done <-chan struct{}) {
	w := g.cfg.Watcher
	for {
		select {
		case <-done:
			return
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			err := g.cfg.Registry.Reload(w.FS(), name)
			_ = g.screen.PostEvent(tcell.NewEventInterrupt(reloaded{name: name, err: err}))
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			g.logger.Warn("level watcher error", "err", err)
		}
	}
}

// handleEvent processes a single event. It returns false when the loop
// must stop.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		// Screen finalized.
		return false
	case *tcell.EventKey:
		g.handleIntent(ctx, IntentFor(ev))
	case *tcell.EventInterrupt:
		g.handleInterrupt(ctx, ev.Data())
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return g.running
}

func (g *Game) handleInterrupt(ctx context.Context, data any) {
	switch data := data.(type) {
	case tick:
		if err := g.world.Tick(ctx, data.dt); err != nil {
			g.notify(err.Error())
		}
	case reloaded:
		if data.err != nil {
			g.logger.Error("level reload failed", "level", data.name, "err", data.err)
			g.notify(fmt.Sprintf("Reload of %s failed", data.name))
			return
		}
		g.logger.Info("level reloaded", "level", data.name)
		g.notify(fmt.Sprintf("Reloaded %s", data.name))
	}
}

// handleIntent applies a player command to the world.
func (g *Game) handleIntent(ctx context.Context, intent Intent) {
	if intent == IntentQuit {
		g.running = false
		return
	}
	if g.state != StatePlaying || intent == IntentNone {
		return
	}

	player, ok := g.world.Snapshot().Actor(world.PlayerID)
	if !ok {
		return
	}

	var err error
	switch intent {
	case IntentMoveForward:
		err = g.world.MoveForward(player.ID)
	case IntentTurnRight:
		err = g.world.FaceDirection(player.ID, player.Direction.Right())
	case IntentTurnLeft:
		err = g.world.FaceDirection(player.ID, player.Direction.Left())
	case IntentTurnBack:
		err = g.world.FaceDirection(player.ID, player.Direction.Back())
	case IntentInteract:
		var res interact.Result
		res, err = g.world.Interact(ctx, player.ID)
		if err == nil {
			g.notify(describe(res))
		}
	}

	if err != nil && !movement.IsRejection(err) {
		g.notify(err.Error())
	}
}

func (g *Game) notify(msg string) {
	if g.renderer != nil {
		g.renderer.SetMessage(msg)
	}
}

// describe turns an interaction result into a message line.
func describe(res interact.Result) string {
	if res.Target == nil {
		return "There is nothing here."
	}
	if _, ok := res.Target.(level.Door); ok {
		return "The door does not budge."
	}
	for _, e := range res.Effects {
		switch e := e.(type) {
		case interact.LootAcquired:
			return fmt.Sprintf("You found a %s.", e.Loot)
		case interact.Teleported:
			return fmt.Sprintf("You are whisked to %s.", e.To)
		case interact.LevelSwapRequest:
			return fmt.Sprintf("You step through to %s.", e.Level)
		}
	}
	return ""
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
