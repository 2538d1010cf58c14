// Package interact resolves "activate the object I'm facing" into world
// effects. Resolution is pure; applying the effects is up to the caller.
package interact

import (
	"github.com/samdwyer/gridcrawl/internal/grid"
	"github.com/samdwyer/gridcrawl/internal/level"
	"github.com/samdwyer/gridcrawl/internal/movement"
)

// Lookup finds the interactable on a cell. *level.Level implements it.
type Lookup interface {
	InteractableAt(p grid.Position) (level.Interactable, bool)
}

// Effect is an observable outcome of an interaction.
type Effect interface {
	effect()
}

// LootAcquired is emitted when an actor opens a chest.
type LootAcquired struct {
	Actor movement.ActorID
	Loot  level.Loot
	At    grid.Position
}

// Teleported is emitted after a same-level teleporter moved an actor.
type Teleported struct {
	Actor movement.ActorID
	From  grid.Position
	To    grid.Position
}

// LevelSwapRequest asks the world to swap in another level. Spawn is the
// explicit spawn position; nil means the level's start position.
type LevelSwapRequest struct {
	Actor movement.ActorID
	Level string
	Spawn *grid.Position
}

func (LootAcquired) effect()     {}
func (Teleported) effect()       {}
func (LevelSwapRequest) effect() {}

// Result is the outcome of one interact intent.
type Result struct {
	// Actor is the source actor after the interaction.
	Actor movement.Actor
	// Target is the activated interactable, or nil when nothing was faced.
	Target level.Interactable
	// At is the faced cell. It is meaningful only when Target is set.
	At      grid.Position
	Effects []Effect
}

// Resolve activates whatever sits on the cell in front of a. Facing the
// grid edge or an empty cell is a no-op. Interacting is refused while a
// transition is in flight, like movement.
func Resolve(l Lookup, a movement.Actor) (Result, error) {
	result := Result{Actor: a}
	if !a.Settled() {
		return result, movement.ErrTransitionInFlight
	}

	target, err := a.Target()
	if err != nil {
		return result, nil
	}
	it, ok := l.InteractableAt(target)
	if !ok {
		return result, nil
	}
	result.Target = it
	result.At = target

	switch it := it.(type) {
	case level.Chest:
		result.Effects = append(result.Effects, LootAcquired{Actor: a.ID, Loot: it.Loot, At: target})
	case level.Door:
		// Reserved: doors do nothing yet.
	case level.Teleporter:
		if it.CrossLevel() {
			spawn := it.Destination
			result.Effects = append(result.Effects, LevelSwapRequest{Actor: a.ID, Level: it.Level, Spawn: &spawn})
		} else {
			result.Actor = a.Teleport(it.Destination)
			result.Effects = append(result.Effects, Teleported{Actor: a.ID, From: a.Position, To: it.Destination})
		}
	}

	return result, nil
}
