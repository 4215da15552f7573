package core

import "fmt"

// Orient is one of the four cardinal directions. As a tile orientation it counts
// clockwise quarter turns away from the canonical (NORTH) layout.
type Orient int

const (
	North Orient = iota
	East
	South
	West
)

// Orients lists every orientation in enumeration order
var Orients = [4]Orient{North, East, South, West}

func (o Orient) normalize() Orient {
	return Orient(((int(o) % 4) + 4) % 4)
}

// Rotate turns the orientation by ticks quarter turns clockwise. Negative ticks turn
// counter-clockwise.
func (o Orient) Rotate(ticks int) Orient {
	return Orient(((int(o)+ticks)%4 + 4) % 4)
}

// Opposite returns the direction facing away from this one
func (o Orient) Opposite() Orient {
	return o.Rotate(2)
}

// Ticks returns the number of clockwise quarter turns this orientation represents
func (o Orient) Ticks() int {
	return int(o.normalize())
}

// String returns the name of the orientation
func (o Orient) String() string {
	switch o {
	case North:
		return "NORTH"
	case East:
		return "EAST"
	case South:
		return "SOUTH"
	case West:
		return "WEST"
	default:
		return fmt.Sprintf("Orient(%d)", int(o))
	}
}

// ParseOrient converts a name produced by String back into an Orient
func ParseOrient(s string) (Orient, error) {
	for _, o := range Orients {
		if o.String() == s {
			return o, nil
		}
	}
	return North, fmt.Errorf("unknown orientation %q", s)
}
