package world

// Direction is one of the four cardinal directions.
type Direction int

const (
	North Direction = iota
	South
	West
	East
)

// shuffleBase is the order directions are shuffled from when tunnelling
// and the order door lists are consolidated in.
var shuffleBase = [...]Direction{East, North, South, West}

// templateOrder is the order stair and dead-end templates are tried in.
var templateOrder = [...]Direction{North, South, West, East}

// Delta returns the row and column step for the direction.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case West:
		return 0, -1
	case East:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	default:
		return West
	}
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "unknown"
	}
}
