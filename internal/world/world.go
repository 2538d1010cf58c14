// Package world ties levels and actors together. It owns the active level,
// applies intents through the movement and interact packages, and performs
// level swaps.
package world

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/gridcrawl/internal/grid"
	"github.com/samdwyer/gridcrawl/internal/interact"
	"github.com/samdwyer/gridcrawl/internal/level"
	"github.com/samdwyer/gridcrawl/internal/movement"
	"github.com/samdwyer/gridcrawl/internal/telemetry"
)

var (
	// ErrNoLevel is returned for intents issued before the first swap.
	ErrNoLevel = errors.New("no level loaded")
	// ErrUnknownActor is returned for intents naming an actor that does not exist.
	ErrUnknownActor = errors.New("unknown actor")
)

// PlayerID is the id of the actor created with every world.
const PlayerID movement.ActorID = 1

// Options configures a World. The zero value is usable.
type Options struct {
	Timing movement.Timing
	Scene  Scene
	Logger *log.Logger
}

// World is the running session. All methods are safe for concurrent use;
// mutations are serialized and every change is published as a new Snapshot.
type World struct {
	registry *level.Registry
	timing   movement.Timing
	scene    Scene
	logger   *log.Logger

	mu     sync.Mutex
	level  *level.Level
	actors []movement.Actor
	nextID movement.ActorID

	snapshot atomic.Pointer[Snapshot]
}

// New creates a world over the given registry with a single controllable
// player actor. No level is active until the first Swap.
func New(registry *level.Registry, opts Options) *World {
	w := &World{
		registry: registry,
		timing:   opts.Timing,
		scene:    opts.Scene,
		logger:   opts.Logger,
		actors:   []movement.Actor{movement.NewActor(PlayerID, grid.Position{})},
		nextID:   PlayerID + 1,
	}
	if w.scene == nil {
		w.scene = nopScene{}
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	w.publishLocked()
	return w
}

// Snapshot returns the most recently published state.
func (w *World) Snapshot() *Snapshot {
	return w.snapshot.Load()
}

// Registry returns the registry levels are swapped in from.
func (w *World) Registry() *level.Registry {
	return w.registry
}

// Spawn adds an actor on the start position of the active level, or at the
// origin when no level is active yet.
func (w *World) Spawn(controllable bool) movement.ActorID {
	w.mu.Lock()
	defer w.mu.Unlock()

	var pos grid.Position
	if w.level != nil {
		pos = w.level.StartPos()
	}
	a := movement.NewActor(w.nextID, pos)
	a.Controllable = controllable
	w.nextID++
	w.actors = append(w.actors, a)
	w.publishLocked()
	return a.ID
}

// Swap makes the named level active. Controllable actors are placed on
// spawn, or on the level's start position when spawn is nil, facing South
// with any pending transition dropped. An unknown level leaves the current
// level active.
func (w *World) Swap(ctx context.Context, name string, spawn *grid.Position) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.swapLocked(ctx, name, spawn)
}

func (w *World) swapLocked(ctx context.Context, name string, spawn *grid.Position) error {
	_, span := telemetry.Tracer("world").Start(ctx, "level.swap")
	defer span.End()

	from := ""
	if w.level != nil {
		from = w.level.Name()
	}
	span.SetAttributes(
		attribute.String("level.from", from),
		attribute.String("level.to", name),
	)

	next, err := w.registry.Get(name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown level")
		w.logger.Error("level swap refused", "from", from, "to", name, "err", err)
		return fmt.Errorf("swap to %q: %w", name, err)
	}

	pos := next.StartPos()
	if spawn != nil {
		pos = *spawn
	}
	span.SetAttributes(
		attribute.Int("level.spawn_x", pos.X),
		attribute.Int("level.spawn_y", pos.Y),
	)

	if w.level != nil {
		w.scene.Despawn(w.level)
	}
	w.scene.Install(next)
	for i, a := range w.actors {
		if a.Controllable {
			w.actors[i] = a.Respawn(pos)
		}
	}
	w.level = next
	w.publishLocked()

	w.logger.Info("level swapped", "from", from, "to", name, "spawn", pos)
	return nil
}

// MoveForward asks the actor to step one cell in its facing direction.
// Rejections are reported with the reason and leave the actor unchanged.
func (w *World) MoveForward(id movement.ActorID) error {
	return w.apply(id, "move", func(l *level.Level, a movement.Actor) (movement.Actor, error) {
		return a.MoveForward(l, w.timing)
	})
}

// FaceDirection asks the actor to turn towards d.
func (w *World) FaceDirection(id movement.ActorID, d grid.Direction) error {
	return w.apply(id, "turn", func(_ *level.Level, a movement.Actor) (movement.Actor, error) {
		return a.FaceDirection(d, w.timing)
	})
}

func (w *World) apply(id movement.ActorID, what string, f func(*level.Level, movement.Actor) (movement.Actor, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.indexLocked(id)
	if err != nil {
		return err
	}
	next, err := f(w.level, w.actors[i])
	if err != nil {
		w.logger.Debug(what+" rejected", "actor", id, "reason", err)
		return err
	}
	w.actors[i] = next
	w.publishLocked()
	if what == "move" && next.Settled() {
		// Zero durations commit immediately. The move stands even when the
		// progression swap fails.
		return w.committedLocked(context.Background(), next)
	}
	return nil
}

// Interact activates whatever the actor faces and applies the effects.
// The returned result carries the actor state after all effects, including
// a level swap. Interacting is refused while the actor is transitioning.
func (w *World) Interact(ctx context.Context, id movement.ActorID) (interact.Result, error) {
	ctx, span := telemetry.Tracer("world").Start(ctx, "interact")
	defer span.End()

	w.mu.Lock()
	defer w.mu.Unlock()

	i, err := w.indexLocked(id)
	if err != nil {
		return interact.Result{}, err
	}
	res, err := interact.Resolve(w.level, w.actors[i])
	if err != nil {
		w.logger.Debug("interact rejected", "actor", id, "reason", err)
		return res, err
	}
	if res.Target == nil {
		span.SetAttributes(attribute.String("interact.target", "none"))
		return res, nil
	}
	span.SetAttributes(
		attribute.String("interact.target", res.Target.Kind().String()),
		attribute.Int("interact.x", res.At.X),
		attribute.Int("interact.y", res.At.Y),
	)

	w.actors[i] = res.Actor
	if _, ok := res.Target.(level.Door); ok {
		w.logger.Debug("door activated, doors are not implemented", "at", res.At)
	}
	for _, e := range res.Effects {
		switch e := e.(type) {
		case interact.LootAcquired:
			w.logger.Info("loot acquired", "actor", e.Actor, "loot", e.Loot, "at", e.At)
		case interact.Teleported:
			w.logger.Info("teleported", "actor", e.Actor, "from", e.From, "to", e.To)
		case interact.LevelSwapRequest:
			if err := w.swapLocked(ctx, e.Level, e.Spawn); err != nil {
				span.RecordError(err)
				res.Actor = w.actors[i]
				return res, err
			}
		}
	}
	res.Actor = w.actors[i]
	w.publishLocked()
	return res, nil
}

// Tick advances every in-flight transition by dt. Actors whose move commits
// onto their level's end position trigger a swap to the next level.
func (w *World) Tick(ctx context.Context, dt time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := false
	var errs []error
	for i := range w.actors {
		kind := w.actors[i].Transition.Kind
		next, completed := w.actors[i].Advance(dt)
		if next.State == movement.Transitioning {
			changed = true
		}
		w.actors[i] = next
		if !completed {
			continue
		}
		changed = true
		if kind != movement.TransitionMove {
			continue
		}
		if err := w.committedLocked(ctx, next); err != nil {
			errs = append(errs, err)
		}
	}
	if changed {
		w.publishLocked()
	}
	return errors.Join(errs...)
}

// committedLocked runs the checks that follow a committed move.
func (w *World) committedLocked(ctx context.Context, a movement.Actor) error {
	if !a.Controllable || w.level == nil {
		return nil
	}
	next, end, ok := w.level.Progression()
	if !ok || a.Position != end {
		return nil
	}
	w.logger.Info("end of level reached", "level", w.level.Name(), "next", next)
	return w.swapLocked(ctx, next, nil)
}

func (w *World) indexLocked(id movement.ActorID) (int, error) {
	if w.level == nil {
		return 0, ErrNoLevel
	}
	for i, a := range w.actors {
		if a.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w %d", ErrUnknownActor, id)
}

func (w *World) publishLocked() {
	w.snapshot.Store(&Snapshot{
		Level:  w.level,
		Actors: append([]movement.Actor(nil), w.actors...),
	})
}
