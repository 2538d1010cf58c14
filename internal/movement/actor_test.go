package movement

import (
	"errors"
	"testing"
	"time"

	"github.com/samdwyer/gridcrawl/internal/grid"
	"github.com/samdwyer/gridcrawl/internal/level"
)

var instant = Timing{}

// voidCenterLevel is a 3x3 stone level with (1,1) Void.
func voidCenterLevel() *level.Level {
	s, v := level.TileStone, level.TileVoid
	return level.MustNew("test", level.Definition{
		Grid: [][]level.Tile{
			{s, s, s},
			{s, v, s},
			{s, s, s},
		},
		StartPos: grid.Pos(0, 0),
	})
}

func TestStateString(t *testing.T) {
	if Settled.String() != "settled" || Transitioning.String() != "transitioning" || State(9).String() != "unknown" {
		t.Error("State.String() mismatch")
	}
	if TransitionMove.String() != "move" || TransitionTurn.String() != "turn" {
		t.Error("TransitionKind.String() mismatch")
	}
}

func TestNewActor(t *testing.T) {
	a := NewActor(1, grid.Pos(2, 3))
	if a.Position != grid.Pos(2, 3) || a.Direction != grid.South || !a.Settled() || !a.Controllable {
		t.Errorf("NewActor() = %+v", a)
	}
}

func TestVoidCenterScenario(t *testing.T) {
	l := voidCenterLevel()
	a := NewActor(1, l.StartPos())

	type step struct {
		name    string
		apply   func(Actor) (Actor, error)
		wantErr error
		wantPos grid.Position
	}
	move := func(a Actor) (Actor, error) { return a.MoveForward(l, instant) }
	face := func(d grid.Direction) func(Actor) (Actor, error) {
		return func(a Actor) (Actor, error) { return a.FaceDirection(d, instant) }
	}

	steps := []step{
		{"face east", face(grid.East), nil, grid.Pos(0, 0)},
		{"east to (1,0)", move, nil, grid.Pos(1, 0)},
		{"face south", face(grid.South), nil, grid.Pos(1, 0)},
		{"south into void", move, ErrImpassableTarget, grid.Pos(1, 0)},
		{"face east again", face(grid.East), nil, grid.Pos(1, 0)},
		{"east to (2,0)", move, nil, grid.Pos(2, 0)},
		{"east past the edge", move, ErrLevelBoundsExceeded, grid.Pos(2, 0)},
		{"face south", face(grid.South), nil, grid.Pos(2, 0)},
		{"south to (2,1)", move, nil, grid.Pos(2, 1)},
	}

	for _, s := range steps {
		next, err := s.apply(a)
		if s.wantErr == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", s.name, err)
		}
		if s.wantErr != nil && !errors.Is(err, s.wantErr) {
			t.Fatalf("%s: error = %v, want %v", s.name, err, s.wantErr)
		}
		if next.Position != s.wantPos {
			t.Fatalf("%s: position = %v, want %v", s.name, next.Position, s.wantPos)
		}
		if !next.Settled() {
			t.Fatalf("%s: instant timing left the actor transitioning", s.name)
		}
		a = next
	}

	if a.Position != grid.Pos(2, 1) {
		t.Errorf("final position = %v, want (2,1)", a.Position)
	}
}

func TestMoveRejections(t *testing.T) {
	s, v := level.TileStone, level.TileVoid
	l := level.MustNew("reject", level.Definition{
		Grid: [][]level.Tile{
			{s, s, v},
			{s},
		},
		Interactables: map[grid.Position]level.Interactable{
			grid.Pos(1, 0): level.Chest{Loot: level.LootKey},
		},
	})

	tests := []struct {
		name    string
		from    grid.Position
		dir     grid.Direction
		wantErr error
	}{
		{"underflow north", grid.Pos(0, 0), grid.North, grid.ErrOutOfRange},
		{"underflow west", grid.Pos(0, 0), grid.West, grid.ErrOutOfRange},
		{"past last row", grid.Pos(0, 1), grid.South, ErrLevelBoundsExceeded},
		{"past short row", grid.Pos(0, 1), grid.East, ErrLevelBoundsExceeded},
		{"onto interactable", grid.Pos(0, 0), grid.East, ErrOccupiedByInteractable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewActor(1, tt.from)
			a.Direction = tt.dir

			next, err := a.MoveForward(l, Timing{Move: time.Second})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("MoveForward() error = %v, want %v", err, tt.wantErr)
			}
			if !IsRejection(err) {
				t.Errorf("IsRejection(%v) = false", err)
			}
			if next.Position != tt.from || !next.Settled() {
				t.Errorf("rejected move changed the actor: %+v", next)
			}
		})
	}

	// ragged rows: (2,0) is Void
	a := NewActor(1, grid.Pos(1, 0))
	a.Direction = grid.East
	if _, err := a.MoveForward(l, instant); !errors.Is(err, ErrImpassableTarget) {
		t.Errorf("MoveForward() into void error = %v", err)
	}
}

func TestTransitionLockDropsIntents(t *testing.T) {
	l := voidCenterLevel()
	timing := Timing{Move: 200 * time.Millisecond, Turn: 100 * time.Millisecond}

	a := NewActor(1, grid.Pos(0, 0))
	a, err := a.MoveForward(l, timing)
	if err != nil {
		t.Fatalf("MoveForward() error: %v", err)
	}
	if a.State != Transitioning {
		t.Fatal("actor should be transitioning")
	}
	if a.Position != grid.Pos(0, 0) {
		t.Errorf("canonical position changed before completion: %v", a.Position)
	}

	if _, err := a.MoveForward(l, timing); !errors.Is(err, ErrTransitionInFlight) {
		t.Errorf("second MoveForward() error = %v, want ErrTransitionInFlight", err)
	}
	if _, err := a.FaceDirection(grid.East, timing); !errors.Is(err, ErrTransitionInFlight) {
		t.Errorf("FaceDirection() error = %v, want ErrTransitionInFlight", err)
	}

	a, done := a.Advance(150 * time.Millisecond)
	if done {
		t.Fatal("transition completed too early")
	}
	if got := a.Transition.Progress(); got != 0.75 {
		t.Errorf("Progress() = %v, want 0.75", got)
	}
	if got := a.Translation(); got.Z != 24 {
		t.Errorf("Translation().Z = %v, want 24", got.Z)
	}

	a, done = a.Advance(50 * time.Millisecond)
	if !done {
		t.Fatal("transition should have completed")
	}
	if a.Position != grid.Pos(0, 1) || !a.Settled() {
		t.Errorf("after completion = %+v", a)
	}

	a, err = a.FaceDirection(grid.East, timing)
	if err != nil {
		t.Fatalf("FaceDirection() after completion error: %v", err)
	}
	if a.Direction != grid.South {
		t.Error("direction committed before the turn completed")
	}
	if a.Facing() != grid.South {
		t.Error("Facing() should stay on the old direction at the start of a turn")
	}
	a, _ = a.Advance(60 * time.Millisecond)
	if a.Facing() != grid.East {
		t.Error("Facing() should show the target past the halfway point")
	}
	a, done = a.Advance(time.Second)
	if !done || a.Direction != grid.East {
		t.Errorf("turn did not commit: %+v", a)
	}
}

func TestAdvanceSettledIsNoop(t *testing.T) {
	a := NewActor(1, grid.Pos(0, 0))
	next, done := a.Advance(time.Second)
	if done || next != a {
		t.Errorf("Advance() on settled actor = %+v, %v", next, done)
	}
	if a.Complete() != a {
		t.Error("Complete() on settled actor changed it")
	}
}

func TestMoveForwardDoesNotMutateInput(t *testing.T) {
	l := voidCenterLevel()
	a := NewActor(1, grid.Pos(0, 0))
	_, _ = a.MoveForward(l, instant)
	if a.Position != grid.Pos(0, 0) {
		t.Error("MoveForward mutated its receiver")
	}
}

func TestTeleportAndRespawn(t *testing.T) {
	a := NewActor(1, grid.Pos(0, 0))
	a.Direction = grid.North

	tp := a.Teleport(grid.Pos(3, 3))
	if tp.Position != grid.Pos(3, 3) || tp.Direction != grid.North || !tp.Settled() {
		t.Errorf("Teleport() = %+v", tp)
	}

	moving, _ := NewActor(1, grid.Pos(0, 0)).MoveForward(voidCenterLevel(), Timing{Move: time.Second})
	r := moving.Respawn(grid.Pos(1, 1))
	if r.Position != grid.Pos(1, 1) || r.Direction != grid.South || !r.Settled() {
		t.Errorf("Respawn() = %+v", r)
	}
	if r.Transition != (Transition{}) {
		t.Error("Respawn() kept a pending transition")
	}
}
