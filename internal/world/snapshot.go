package world

import (
	"github.com/samdwyer/gridcrawl/internal/level"
	"github.com/samdwyer/gridcrawl/internal/movement"
)

// Snapshot is an immutable view of the world: the active level together
// with the actor states that belong to it. Readers never see the level of
// one swap paired with actor positions of another.
type Snapshot struct {
	Level  *level.Level
	Actors []movement.Actor
}

// Actor returns the actor with the given id.
func (s *Snapshot) Actor(id movement.ActorID) (movement.Actor, bool) {
	for _, a := range s.Actors {
		if a.ID == id {
			return a, true
		}
	}
	return movement.Actor{}, false
}
