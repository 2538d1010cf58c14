package grid

// Direction is one of the four cardinal facings.
type Direction int

// The zero value is South, which is the default facing.
const (
	South Direction = iota
	West
	North
	East
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Delta returns the unit step for the direction. North is y-1.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Right rotates a quarter turn clockwise: N -> E -> S -> W -> N.
func (d Direction) Right() Direction {
	switch d {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	default:
		return North
	}
}

// Left rotates a quarter turn counter-clockwise.
func (d Direction) Left() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	default:
		return North
	}
}

// Back rotates a half turn.
func (d Direction) Back() Direction {
	return d.Right().Right()
}

// Forward returns the world-space unit vector the direction looks along.
func (d Direction) Forward() Vec3 {
	switch d {
	case North:
		return Vec3{Z: -1}
	case East:
		return Vec3{X: 1}
	case South:
		return Vec3{Z: 1}
	case West:
		return Vec3{X: -1}
	default:
		return Vec3{}
	}
}

// Directions lists all facings in clockwise order starting at North.
func Directions() []Direction {
	return []Direction{North, East, South, West}
}
