// Package level provides the static level model, the level registry and
// decoding of .lvl level definitions.
package level

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tile is the terrain kind of a single grid cell.
type Tile int

const (
	// TileVoid has no floor and is never passable. No wall or ceiling is drawn here.
	TileVoid Tile = iota
	// TileStone is plain stone floor.
	TileStone
)

// String returns the tile name as written in level files.
func (t Tile) String() string {
	switch t {
	case TileVoid:
		return "Void"
	case TileStone:
		return "Stone"
	default:
		return "Unknown"
	}
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t != TileVoid
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	switch t {
	case TileStone:
		return '.'
	default:
		return ' '
	}
}

// ParseTile parses a tile name. Names are case-sensitive.
func ParseTile(s string) (Tile, error) {
	switch s {
	case "Void":
		return TileVoid, nil
	case "Stone":
		return TileStone, nil
	}
	return TileVoid, fmt.Errorf("unknown tile %q", s)
}

// UnmarshalYAML decodes a tile from its name.
func (t *Tile) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseTile(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*t = parsed
	return nil
}
