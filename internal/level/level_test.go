package level

import (
	"errors"
	"testing"

	"github.com/samdwyer/gridcrawl/internal/grid"
)

func raggedLevel(t *testing.T) *Level {
	t.Helper()
	l, err := New("ragged", Definition{
		Grid: [][]Tile{
			{TileStone, TileStone, TileStone},
			{TileStone},
			{TileStone, TileVoid, TileStone, TileStone},
		},
		StartPos: grid.Pos(0, 0),
		Interactables: map[grid.Position]Interactable{
			grid.Pos(2, 0): Chest{Loot: LootKey},
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return l
}

func TestTileAt(t *testing.T) {
	l := raggedLevel(t)

	tests := []struct {
		name   string
		x, y   int
		want   Tile
		wantOK bool
	}{
		{"first cell", 0, 0, TileStone, true},
		{"void cell", 1, 2, TileVoid, true},
		{"beyond short row", 1, 1, TileVoid, false},
		{"longest row end", 3, 2, TileStone, true},
		{"beyond longest row", 4, 2, TileVoid, false},
		{"beyond last row", 0, 3, TileVoid, false},
		{"negative", -1, 0, TileVoid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.TileAt(tt.x, tt.y)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("TileAt(%d, %d) = %v, %v, want %v, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsPassable(t *testing.T) {
	l := raggedLevel(t)

	tests := []struct {
		pos  grid.Position
		want bool
	}{
		{grid.Pos(0, 0), true},
		{grid.Pos(0, 1), true},
		{grid.Pos(1, 1), false}, // short row
		{grid.Pos(1, 2), false}, // void
		{grid.Pos(3, 2), true},
		{grid.Pos(0, 5), false},
	}

	for _, tt := range tests {
		if got := l.IsPassable(tt.pos); got != tt.want {
			t.Errorf("IsPassable(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestDimensions(t *testing.T) {
	l := raggedLevel(t)
	if l.Height() != 3 {
		t.Errorf("Height() = %d, want 3", l.Height())
	}
	if l.Width() != 4 {
		t.Errorf("Width() = %d, want 4", l.Width())
	}
	if l.RowLen(1) != 1 {
		t.Errorf("RowLen(1) = %d, want 1", l.RowLen(1))
	}
	if l.RowLen(7) != 0 {
		t.Errorf("RowLen(7) = %d, want 0", l.RowLen(7))
	}
	if !l.Contains(grid.Pos(3, 2)) || l.Contains(grid.Pos(1, 1)) {
		t.Error("Contains() does not honour row lengths")
	}
}

func TestInteractableAt(t *testing.T) {
	l := raggedLevel(t)

	it, ok := l.InteractableAt(grid.Pos(2, 0))
	if !ok {
		t.Fatal("InteractableAt((2,0)) found nothing")
	}
	chest, ok := it.(Chest)
	if !ok || chest.Loot != LootKey {
		t.Errorf("InteractableAt((2,0)) = %#v, want key chest", it)
	}

	if _, ok := l.InteractableAt(grid.Pos(0, 0)); ok {
		t.Error("InteractableAt((0,0)) should be empty")
	}
}

func TestNewCopiesDefinition(t *testing.T) {
	def := Definition{
		Grid:          [][]Tile{{TileStone, TileStone}},
		Interactables: map[grid.Position]Interactable{},
	}
	l := MustNew("copy", def)

	def.Grid[0][1] = TileVoid
	def.Interactables[grid.Pos(1, 0)] = Door{}

	if !l.IsPassable(grid.Pos(1, 0)) {
		t.Error("level observed a change to its definition grid")
	}
	if _, ok := l.InteractableAt(grid.Pos(1, 0)); ok {
		t.Error("level observed a change to its definition interactables")
	}
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"empty grid", Definition{}},
		{"negative start", Definition{Grid: [][]Tile{{TileStone}}, StartPos: grid.Pos(-1, 0)}},
		{"negative teleporter", Definition{
			Grid: [][]Tile{{TileStone}},
			Interactables: map[grid.Position]Interactable{
				grid.Pos(0, 0): Teleporter{Destination: grid.Pos(0, -2)},
			},
		}},
		{"nil interactable", Definition{
			Grid:          [][]Tile{{TileStone}},
			Interactables: map[grid.Position]Interactable{grid.Pos(0, 0): nil},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.name, tt.def); err == nil {
				t.Error("New() should fail")
			}
		})
	}

	_, err := New("neg", Definition{Grid: [][]Tile{{TileStone}}, StartPos: grid.Pos(0, -1)})
	if !errors.Is(err, grid.ErrOutOfRange) {
		t.Errorf("New() error = %v, want ErrOutOfRange", err)
	}
}

func TestInteractablesOrdered(t *testing.T) {
	l := MustNew("order", Definition{
		Grid: [][]Tile{{TileStone, TileStone}, {TileStone, TileStone}},
		Interactables: map[grid.Position]Interactable{
			grid.Pos(1, 1): Door{},
			grid.Pos(0, 1): Door{},
			grid.Pos(1, 0): Door{},
		},
	})

	got := l.Interactables()
	want := []grid.Position{grid.Pos(1, 0), grid.Pos(0, 1), grid.Pos(1, 1)}
	if len(got) != len(want) {
		t.Fatalf("Interactables() returned %d placements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].At != want[i] {
			t.Errorf("Interactables()[%d].At = %v, want %v", i, got[i].At, want[i])
		}
	}
}

func TestKindAndLootStrings(t *testing.T) {
	tests := []struct {
		it   Interactable
		want string
	}{
		{Chest{Loot: LootKey}, "chest"},
		{Door{}, "door"},
		{Teleporter{}, "teleporter"},
	}
	for _, tt := range tests {
		if got := tt.it.Kind().String(); got != tt.want {
			t.Errorf("Kind().String() = %q, want %q", got, tt.want)
		}
	}
	if LootKey.String() != "Key" {
		t.Errorf("LootKey.String() = %q, want \"Key\"", LootKey.String())
	}
}

func TestTeleporterCrossLevel(t *testing.T) {
	if (Teleporter{Destination: grid.Pos(3, 3)}).CrossLevel() {
		t.Error("teleporter without level should be same-level")
	}
	if !(Teleporter{Destination: grid.Pos(1, 1), Level: "level/001.lvl"}).CrossLevel() {
		t.Error("teleporter with level should be cross-level")
	}
}

func TestFaces(t *testing.T) {
	// Stone Stone
	// Void  Stone
	l := MustNew("faces", Definition{
		Grid: [][]Tile{
			{TileStone, TileStone},
			{TileVoid, TileStone},
		},
	})

	counts := make(map[FaceKind]int)
	walls := make(map[grid.Position][]FaceKind)
	for _, f := range Faces(l) {
		counts[f.Kind]++
		if f.Kind != FaceFloor && f.Kind != FaceCeiling {
			walls[f.At] = append(walls[f.At], f.Kind)
		}
	}

	if counts[FaceFloor] != 3 || counts[FaceCeiling] != 3 {
		t.Errorf("floor/ceiling = %d/%d, want 3/3", counts[FaceFloor], counts[FaceCeiling])
	}

	// (0,0): north edge, south void, west edge
	if got := len(walls[grid.Pos(0, 0)]); got != 3 {
		t.Errorf("walls at (0,0) = %v, want 3", walls[grid.Pos(0, 0)])
	}
	// (1,0): north edge, east edge
	if got := len(walls[grid.Pos(1, 0)]); got != 2 {
		t.Errorf("walls at (1,0) = %v, want 2", walls[grid.Pos(1, 0)])
	}
	// (1,1): south edge, west void, east edge
	if got := len(walls[grid.Pos(1, 1)]); got != 3 {
		t.Errorf("walls at (1,1) = %v, want 3", walls[grid.Pos(1, 1)])
	}
	if _, ok := walls[grid.Pos(0, 1)]; ok {
		t.Error("void cell should produce no faces")
	}
}
