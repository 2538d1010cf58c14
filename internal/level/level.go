package level

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samdwyer/gridcrawl/internal/grid"
)

// Definition is the raw content of a level before it is frozen into a Level.
type Definition struct {
	Grid          [][]Tile
	StartPos      grid.Position
	Interactables map[grid.Position]Interactable

	// NextLevel and EndPos describe an optional progression link: an actor
	// settling on EndPos is moved to the start of NextLevel.
	NextLevel string
	EndPos    grid.Position
}

// Level is an immutable grid of tiles with a start position and the
// interactables placed on it. Rows may have different lengths.
type Level struct {
	name          string
	tiles         [][]Tile
	startPos      grid.Position
	interactables map[grid.Position]Interactable
	nextLevel     string
	endPos        grid.Position
}

// New freezes a definition into a Level. The definition is copied, so
// later changes to it are not observed.
func New(name string, def Definition) (*Level, error) {
	if len(def.Grid) == 0 {
		return nil, errors.New("level grid is empty")
	}
	if err := checkPosition("start_pos", def.StartPos); err != nil {
		return nil, err
	}
	if def.NextLevel != "" {
		if err := checkPosition("end_pos", def.EndPos); err != nil {
			return nil, err
		}
	}

	tiles := make([][]Tile, len(def.Grid))
	for y, row := range def.Grid {
		tiles[y] = append([]Tile(nil), row...)
	}

	interactables := make(map[grid.Position]Interactable, len(def.Interactables))
	for pos, it := range def.Interactables {
		if it == nil {
			return nil, fmt.Errorf("interactable at %s is nil", pos)
		}
		if err := checkPosition("interactable", pos); err != nil {
			return nil, err
		}
		if tp, ok := it.(Teleporter); ok {
			if err := checkPosition("teleporter destination", tp.Destination); err != nil {
				return nil, err
			}
		}
		interactables[pos] = it
	}

	return &Level{
		name:          name,
		tiles:         tiles,
		startPos:      def.StartPos,
		interactables: interactables,
		nextLevel:     def.NextLevel,
		endPos:        def.EndPos,
	}, nil
}

// MustNew is like New but panics on error. Use it for levels built in code.
func MustNew(name string, def Definition) *Level {
	l, err := New(name, def)
	if err != nil {
		panic(err)
	}
	return l
}

func checkPosition(what string, p grid.Position) error {
	if p.X < 0 || p.Y < 0 {
		return fmt.Errorf("%s %s: %w", what, p, grid.ErrOutOfRange)
	}
	return nil
}

// Name returns the registry name of the level, e.g. "level/000.lvl".
func (l *Level) Name() string {
	return l.name
}

// StartPos returns the default spawn position.
func (l *Level) StartPos() grid.Position {
	return l.startPos
}

// Height returns the number of rows.
func (l *Level) Height() int {
	return len(l.tiles)
}

// RowLen returns the length of row y, or 0 if the row does not exist.
func (l *Level) RowLen(y int) int {
	if y < 0 || y >= len(l.tiles) {
		return 0
	}
	return len(l.tiles[y])
}

// Width returns the length of the longest row.
func (l *Level) Width() int {
	width := 0
	for _, row := range l.tiles {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Contains reports whether p addresses a cell that exists in the grid.
func (l *Level) Contains(p grid.Position) bool {
	return p.Y >= 0 && p.Y < len(l.tiles) && p.X >= 0 && p.X < len(l.tiles[p.Y])
}

// TileAt returns the tile at (x, y). The second result is false when the
// row or the column is outside the grid.
func (l *Level) TileAt(x, y int) (Tile, bool) {
	if y < 0 || y >= len(l.tiles) {
		return TileVoid, false
	}
	row := l.tiles[y]
	if x < 0 || x >= len(row) {
		return TileVoid, false
	}
	return row[x], true
}

// IsPassable returns true if p is inside the grid and not Void.
func (l *Level) IsPassable(p grid.Position) bool {
	tile, ok := l.TileAt(p.X, p.Y)
	return ok && tile.IsPassable()
}

// InteractableAt returns the interactable placed on p, if any.
func (l *Level) InteractableAt(p grid.Position) (Interactable, bool) {
	it, ok := l.interactables[p]
	return it, ok
}

// Placement is an interactable together with its cell.
type Placement struct {
	At           grid.Position
	Interactable Interactable
}

// Interactables returns every placement ordered by row, then column.
func (l *Level) Interactables() []Placement {
	placements := make([]Placement, 0, len(l.interactables))
	for pos, it := range l.interactables {
		placements = append(placements, Placement{At: pos, Interactable: it})
	}
	sort.Slice(placements, func(i, j int) bool {
		a, b := placements[i].At, placements[j].At
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return placements
}

// Progression returns the next level link. ok is false when the level has none.
func (l *Level) Progression() (next string, end grid.Position, ok bool) {
	if l.nextLevel == "" {
		return "", grid.Position{}, false
	}
	return l.nextLevel, l.endPos, true
}
