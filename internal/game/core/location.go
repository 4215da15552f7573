package core

import "fmt"

// Location is a cell of the unbounded board. North is Y-1, matching screen coordinates.
type Location struct {
	X, Y int
}

// NewLocation creates a new location with the given x and y values
func NewLocation(x, y int) Location {
	return Location{X: x, Y: y}
}

// Origin is where the starter tile is placed
var Origin = Location{}

// OrientVectors provides location offsets for each cardinal direction
var OrientVectors = [4]Location{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

// Add returns a new location that is the sum of this location and another
func (l Location) Add(other Location) Location {
	return Location{X: l.X + other.X, Y: l.Y + other.Y}
}

// Neighbor returns the adjacent location in the given direction
func (l Location) Neighbor(o Orient) Location {
	return l.Add(OrientVectors[o.normalize()])
}

// Neighbors returns the four orthogonal neighbors in N, E, S, W order
func (l Location) Neighbors() []Location {
	return []Location{
		l.Neighbor(North),
		l.Neighbor(East),
		l.Neighbor(South),
		l.Neighbor(West),
	}
}

// Neighborhood returns the eight surrounding cells, row by row from the north-west corner
func (l Location) Neighborhood() []Location {
	cells := make([]Location, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			cells = append(cells, Location{X: l.X + dx, Y: l.Y + dy})
		}
	}
	return cells
}

// IsAdjacentTo checks if this location is orthogonally adjacent to another
func (l Location) IsAdjacentTo(other Location) bool {
	dx := l.X - other.X
	dy := l.Y - other.Y

	// Must be exactly one step away in either X or Y direction, but not both
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// DirectionTo returns the direction from this location to an adjacent location.
// Returns ErrNotAdjacent if the locations are not orthogonal neighbours.
func (l Location) DirectionTo(other Location) (Orient, error) {
	if !l.IsAdjacentTo(other) {
		return North, fmt.Errorf("%s to %s: %w", l, other, ErrNotAdjacent)
	}

	dx := other.X - l.X
	dy := other.Y - l.Y

	switch {
	case dy == -1:
		return North, nil
	case dx == 1:
		return East, nil
	case dy == 1:
		return South, nil
	default:
		return West, nil
	}
}

// Less orders locations row-major (Y first, then X) for deterministic output
func (l Location) Less(other Location) bool {
	if l.Y != other.Y {
		return l.Y < other.Y
	}
	return l.X < other.X
}

// Compare is the three-way form of Less, for use with slices.SortFunc
func (l Location) Compare(other Location) int {
	switch {
	case l == other:
		return 0
	case l.Less(other):
		return -1
	default:
		return 1
	}
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}
