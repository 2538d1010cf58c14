// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StateLoading is active until the start level has been swapped in.
	StateLoading State = iota
	// StatePlaying accepts movement and interaction input.
	StatePlaying
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}
