// Package grid provides discrete positions, cardinal facings and their
// projection into world space.
package grid

import (
	"errors"
	"fmt"
)

// TileSize is the world-space edge length of one grid cell.
const TileSize = 32.0

// ErrOutOfRange is returned when a step would move a coordinate below zero.
var ErrOutOfRange = errors.New("grid position out of range")

// Position is a cell address on a level grid. Coordinates are never negative;
// whether a position is inside a particular level is checked by the level.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Pos is shorthand for building a Position.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Next returns the neighbouring position one step towards d.
// It fails with ErrOutOfRange when the step would leave the grid origin.
func (p Position) Next(d Direction) (Position, error) {
	dx, dy := d.Delta()
	next := Position{X: p.X + dx, Y: p.Y + dy}
	if next.X < 0 || next.Y < 0 {
		return p, fmt.Errorf("step %s from %s: %w", d, p, ErrOutOfRange)
	}
	return next, nil
}

// Vec3 is a world-space vector. Y is up; the grid lies on the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Lerp interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b Vec3, t float64) Vec3 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a.Add(b.Add(a.Scale(-1)).Scale(t))
}

// Translation projects the position onto the floor plane.
func (p Position) Translation() Vec3 {
	return Vec3{X: float64(p.X) * TileSize, Y: 0, Z: float64(p.Y) * TileSize}
}

// Cell maps a world-space translation back to the nearest grid cell.
// Translations behind the origin clamp to zero.
func Cell(v Vec3) Position {
	x := int(v.X/TileSize + 0.5)
	y := int(v.Z/TileSize + 0.5)
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return Position{X: x, Y: y}
}
