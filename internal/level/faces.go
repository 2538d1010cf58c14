package level

import "github.com/samdwyer/gridcrawl/internal/grid"

// FaceKind identifies one quad of derived level geometry.
type FaceKind int

const (
	// FaceFloor is the ground quad of a passable cell.
	FaceFloor FaceKind = iota
	// FaceCeiling is the roof quad of a passable cell.
	FaceCeiling
	// FaceNorthWall closes the y-1 side of a cell.
	FaceNorthWall
	// FaceSouthWall closes the y+1 side of a cell.
	FaceSouthWall
	// FaceWestWall closes the x-1 side of a cell.
	FaceWestWall
	// FaceEastWall closes the x+1 side of a cell.
	FaceEastWall
)

// String returns the face kind name.
func (k FaceKind) String() string {
	switch k {
	case FaceFloor:
		return "floor"
	case FaceCeiling:
		return "ceiling"
	case FaceNorthWall:
		return "north_wall"
	case FaceSouthWall:
		return "south_wall"
	case FaceWestWall:
		return "west_wall"
	case FaceEastWall:
		return "east_wall"
	default:
		return "unknown"
	}
}

// Face is a single quad derived from the tile grid.
type Face struct {
	Kind FaceKind
	At   grid.Position
	Tile Tile
}

// Faces derives the geometry of a level. Every non-Void cell gets a floor and
// a ceiling, plus a wall on each side that borders the grid edge or a Void
// cell. Void cells produce nothing.
func Faces(l *Level) []Face {
	var faces []Face
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.RowLen(y); x++ {
			tile, _ := l.TileAt(x, y)
			if !tile.IsPassable() {
				continue
			}
			at := grid.Pos(x, y)
			faces = append(faces, Face{Kind: FaceFloor, At: at, Tile: tile})

			if !l.IsPassable(grid.Pos(x, y-1)) {
				faces = append(faces, Face{Kind: FaceNorthWall, At: at, Tile: tile})
			}
			if !l.IsPassable(grid.Pos(x, y+1)) {
				faces = append(faces, Face{Kind: FaceSouthWall, At: at, Tile: tile})
			}
			if !l.IsPassable(grid.Pos(x-1, y)) {
				faces = append(faces, Face{Kind: FaceWestWall, At: at, Tile: tile})
			}
			if !l.IsPassable(grid.Pos(x+1, y)) {
				faces = append(faces, Face{Kind: FaceEastWall, At: at, Tile: tile})
			}

			faces = append(faces, Face{Kind: FaceCeiling, At: at, Tile: tile})
		}
	}
	return faces
}
