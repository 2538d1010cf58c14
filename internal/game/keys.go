package game

import "github.com/gdamore/tcell/v2"

// Intent is a player command decoded from a key press.
type Intent int

const (
	// IntentNone is an unbound key.
	IntentNone Intent = iota
	// IntentMoveForward steps one cell in the facing direction.
	IntentMoveForward
	// IntentTurnRight turns a quarter clockwise.
	IntentTurnRight
	// IntentTurnLeft turns a quarter counter-clockwise.
	IntentTurnLeft
	// IntentTurnBack turns around.
	IntentTurnBack
	// IntentInteract activates the faced cell.
	IntentInteract
	// IntentQuit leaves the game.
	IntentQuit
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentMoveForward:
		return "move_forward"
	case IntentTurnRight:
		return "turn_right"
	case IntentTurnLeft:
		return "turn_left"
	case IntentTurnBack:
		return "turn_back"
	case IntentInteract:
		return "interact"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// IntentFor maps a key event to an intent.
func IntentFor(ev *tcell.EventKey) Intent {
	return intentFor(ev.Key(), ev.Rune())
}

func intentFor(key tcell.Key, ch rune) Intent {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return IntentQuit
	case tcell.KeyUp:
		return IntentMoveForward
	case tcell.KeyRight:
		return IntentTurnRight
	case tcell.KeyLeft:
		return IntentTurnLeft
	case tcell.KeyDown:
		return IntentTurnBack
	case tcell.KeyRune:
		switch ch {
		case ' ':
			return IntentInteract
		case 'w', 'W':
			return IntentMoveForward
		case 'd', 'D':
			return IntentTurnRight
		case 'a', 'A':
			return IntentTurnLeft
		case 's', 'S':
			return IntentTurnBack
		case 'q', 'Q':
			return IntentQuit
		}
	}
	return IntentNone
}
