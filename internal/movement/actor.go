// Package movement implements the movement and facing state machine of a
// grid actor. All operations are pure: they take an Actor value and return
// the next one, leaving the input untouched.
package movement

import (
	"errors"
	"fmt"
	"time"

	"github.com/samdwyer/gridcrawl/internal/grid"
	"github.com/samdwyer/gridcrawl/internal/level"
)

var (
	// ErrLevelBoundsExceeded is returned when the target cell lies beyond the rows or columns of the level.
	ErrLevelBoundsExceeded = errors.New("target beyond level bounds")
	// ErrImpassableTarget is returned when the target cell is Void.
	ErrImpassableTarget = errors.New("target is impassable")
	// ErrOccupiedByInteractable is returned when the target cell holds an interactable.
	ErrOccupiedByInteractable = errors.New("target holds an interactable")
	// ErrTransitionInFlight is returned for intents that arrive while a transition is running.
	ErrTransitionInFlight = errors.New("transition in flight")
)

// IsRejection reports whether err is one of the routine reasons an intent
// is discarded. Rejections are expected control flow, not failures.
func IsRejection(err error) bool {
	return errors.Is(err, grid.ErrOutOfRange) ||
		errors.Is(err, ErrLevelBoundsExceeded) ||
		errors.Is(err, ErrImpassableTarget) ||
		errors.Is(err, ErrOccupiedByInteractable) ||
		errors.Is(err, ErrTransitionInFlight)
}

// Terrain is the read-only view of a level needed to validate a move.
// *level.Level implements it.
type Terrain interface {
	Contains(p grid.Position) bool
	IsPassable(p grid.Position) bool
	InteractableAt(p grid.Position) (level.Interactable, bool)
}

// ActorID identifies an actor within a world.
type ActorID uint64

// State is the transition state of an actor.
type State int

const (
	// Settled means no transition is pending.
	Settled State = iota
	// Transitioning means a move or turn is in progress.
	Transitioning
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Settled:
		return "settled"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// TransitionKind says what a transition changes once it completes.
type TransitionKind int

const (
	// TransitionMove commits Transition.Position.
	TransitionMove TransitionKind = iota
	// TransitionTurn commits Transition.Direction.
	TransitionTurn
)

// String returns a human-readable kind name.
func (k TransitionKind) String() string {
	switch k {
	case TransitionMove:
		return "move"
	case TransitionTurn:
		return "turn"
	default:
		return "unknown"
	}
}

// Transition is an in-flight move or turn. Position is the target of a
// move, Direction the target of a turn.
type Transition struct {
	Kind      TransitionKind
	Position  grid.Position
	Direction grid.Direction
	Elapsed   time.Duration
	Duration  time.Duration
}

// Progress returns how far the transition has run, from 0 to 1.
func (t Transition) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(t.Elapsed) / float64(t.Duration)
	if p > 1 {
		return 1
	}
	return p
}

// Timing holds the duration of each transition kind. A zero duration makes
// the change take effect immediately.
type Timing struct {
	Move time.Duration
	Turn time.Duration
}

// Actor is a controllable grid entity. Position and Direction are the
// canonical values; Transition is meaningful only while State is
// Transitioning.
type Actor struct {
	ID           ActorID
	Controllable bool
	Position     grid.Position
	Direction    grid.Direction
	State        State
	Transition   Transition
}

// NewActor creates a settled, controllable actor facing South.
func NewActor(id ActorID, pos grid.Position) Actor {
	return Actor{
		ID:           id,
		Controllable: true,
		Position:     pos,
		Direction:    grid.South,
		State:        Settled,
	}
}

// String describes the actor for logs.
func (a Actor) String() string {
	if a.State == Transitioning {
		return fmt.Sprintf("actor %d at %s facing %s (%s in flight)", a.ID, a.Position, a.Direction, a.Transition.Kind)
	}
	return fmt.Sprintf("actor %d at %s facing %s", a.ID, a.Position, a.Direction)
}

// Settled reports whether no transition is pending.
func (a Actor) Settled() bool {
	return a.State == Settled
}

// Target returns the cell directly in front of the actor.
func (a Actor) Target() (grid.Position, error) {
	return a.Position.Next(a.Direction)
}

// MoveForward starts a one-cell move in the facing direction. The move is
// validated against the committed position, never against a pending target.
// It is rejected when a transition is already running, when the target is
// off the grid or Void, or when it holds an interactable.
func (a Actor) MoveForward(t Terrain, timing Timing) (Actor, error) {
	if a.State == Transitioning {
		return a, ErrTransitionInFlight
	}

	next, err := a.Target()
	if err != nil {
		return a, err
	}
	if !t.Contains(next) {
		return a, fmt.Errorf("move to %s: %w", next, ErrLevelBoundsExceeded)
	}
	if !t.IsPassable(next) {
		return a, fmt.Errorf("move to %s: %w", next, ErrImpassableTarget)
	}
	if _, occupied := t.InteractableAt(next); occupied {
		return a, fmt.Errorf("move to %s: %w", next, ErrOccupiedByInteractable)
	}

	return a.begin(Transition{Kind: TransitionMove, Position: next, Duration: timing.Move}), nil
}

// FaceDirection starts a turn towards d. Turning is always legal while
// settled.
func (a Actor) FaceDirection(d grid.Direction, timing Timing) (Actor, error) {
	if a.State == Transitioning {
		return a, ErrTransitionInFlight
	}
	return a.begin(Transition{Kind: TransitionTurn, Direction: d, Duration: timing.Turn}), nil
}

func (a Actor) begin(t Transition) Actor {
	a.State = Transitioning
	a.Transition = t
	if t.Duration <= 0 {
		return a.Complete()
	}
	return a
}

// Advance runs the pending transition forward by dt. completed is true when
// the transition finished during this call and its target was committed.
func (a Actor) Advance(dt time.Duration) (next Actor, completed bool) {
	if a.State != Transitioning {
		return a, false
	}
	a.Transition.Elapsed += dt
	if a.Transition.Elapsed < a.Transition.Duration {
		return a, false
	}
	return a.Complete(), true
}

// Complete commits the pending transition and clears the lock. It is a
// no-op on a settled actor.
func (a Actor) Complete() Actor {
	if a.State != Transitioning {
		return a
	}
	switch a.Transition.Kind {
	case TransitionMove:
		a.Position = a.Transition.Position
	case TransitionTurn:
		a.Direction = a.Transition.Direction
	}
	a.State = Settled
	a.Transition = Transition{}
	return a
}

// Teleport places the actor on p immediately. It bypasses validation and
// the transition lock; callers use it for scripted jumps.
func (a Actor) Teleport(p grid.Position) Actor {
	a.Position = p
	return a
}

// Respawn places the actor on p facing South and drops any pending
// transition.
func (a Actor) Respawn(p grid.Position) Actor {
	a.Position = p
	a.Direction = grid.South
	a.State = Settled
	a.Transition = Transition{}
	return a
}

// Translation returns the world-space position of the actor, interpolated
// along an in-flight move.
func (a Actor) Translation() grid.Vec3 {
	from := a.Position.Translation()
	if a.State != Transitioning || a.Transition.Kind != TransitionMove {
		return from
	}
	return grid.Lerp(from, a.Transition.Position.Translation(), a.Transition.Progress())
}

// Facing returns the direction the actor appears to face. During a turn it
// switches to the target once the turn is half done.
func (a Actor) Facing() grid.Direction {
	if a.State == Transitioning && a.Transition.Kind == TransitionTurn && a.Transition.Progress() >= 0.5 {
		return a.Transition.Direction
	}
	return a.Direction
}
