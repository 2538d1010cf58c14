package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/gridcrawl/internal/grid"
	"github.com/samdwyer/gridcrawl/internal/level"
	"github.com/samdwyer/gridcrawl/internal/movement"
	"github.com/samdwyer/gridcrawl/internal/world"
)

// Each grid cell takes a 2x2 block on screen so walls can sit between cells.
// Cell (x, y) is drawn at column 2x+1, row 2y+1.
const cellStride = 2

// Renderer handles drawing the game to the screen. It implements
// world.Scene: the wall geometry of a level exists only between Install and
// Despawn.
type Renderer struct {
	screen *Screen

	mu        sync.Mutex
	installed *level.Level
	faces     []level.Face
	message   string
}

var _ world.Scene = (*Renderer)(nil)

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Install derives the geometry of l.
func (r *Renderer) Install(l *level.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.installed = l
	r.faces = level.Faces(l)
}

// Despawn drops the geometry derived from l.
func (r *Renderer) Despawn(l *level.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.installed == l {
		r.installed = nil
		r.faces = nil
	}
}

// Installed returns the level whose geometry is currently installed.
func (r *Renderer) Installed() *level.Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installed
}

// SetMessage replaces the message shown below the map.
func (r *Renderer) SetMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.message = msg
}

// Render draws the installed geometry, the interactables and the actors of
// snap.
func (r *Renderer) Render(snap *world.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Clear()

	for _, f := range r.faces {
		x, y := screenPos(f.At)
		switch f.Kind {
		case level.FaceFloor:
			r.screen.SetContent(x, y, f.Tile.Rune(), floorStyle)
		case level.FaceNorthWall:
			r.screen.SetContent(x, y-1, '─', wallStyle)
		case level.FaceSouthWall:
			r.screen.SetContent(x, y+1, '─', wallStyle)
		case level.FaceWestWall:
			r.screen.SetContent(x-1, y, '│', wallStyle)
		case level.FaceEastWall:
			r.screen.SetContent(x+1, y, '│', wallStyle)
		}
	}

	status := "loading"
	if snap != nil && snap.Level != nil {
		for _, p := range snap.Level.Interactables() {
			x, y := screenPos(p.At)
			ch, style := interactableGlyph(p.Interactable)
			r.screen.SetContent(x, y, ch, style)
		}
		status = snap.Level.Name()
	}

	if snap != nil {
		for _, a := range snap.Actors {
			x, y := screenPos(grid.Cell(a.Translation()))
			r.screen.SetContent(x, y, actorGlyph(a), actorStyle(a))
			if a.ID == world.PlayerID {
				status = fmt.Sprintf("%s  %s facing %s", status, a.Position, a.Facing())
			}
		}
	}

	_, height := r.screen.Size()
	r.drawText(0, height-2, status, textStyle)
	r.drawText(0, height-1, r.message, textStyle)

	r.screen.Show()
}

func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	for i, ch := range []rune(msg) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

func screenPos(p grid.Position) (x, y int) {
	return p.X*cellStride + 1, p.Y*cellStride + 1
}

var (
	floorStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	wallStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

func interactableGlyph(it level.Interactable) (rune, tcell.Style) {
	switch it := it.(type) {
	case level.Chest:
		return '$', tcell.StyleDefault.Foreground(tcell.ColorGold)
	case level.Door:
		return '+', tcell.StyleDefault.Foreground(tcell.ColorSandyBrown)
	case level.Teleporter:
		if it.CrossLevel() {
			return '*', tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
		}
		return 'o', tcell.StyleDefault.Foreground(tcell.ColorAqua)
	default:
		return '?', textStyle
	}
}

// actorGlyph points along the direction the actor appears to face.
func actorGlyph(a movement.Actor) rune {
	f := a.Facing().Forward()
	switch {
	case f.Z < 0:
		return '^'
	case f.X > 0:
		return '>'
	case f.Z > 0:
		return 'v'
	case f.X < 0:
		return '<'
	default:
		return '@'
	}
}

func actorStyle(a movement.Actor) tcell.Style {
	if a.Controllable {
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorRed)
}
