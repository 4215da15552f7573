package board

import (
	"fmt"

	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"golang.org/x/exp/slices"
)

// Placements is the board: every committed tile keyed by location, plus commit order
type Placements struct {
	byLoc map[core.Location]*Placement
	order []*Placement
}

// NewPlacements creates an empty board
func NewPlacements() *Placements {
	return &Placements{
		byLoc: make(map[core.Location]*Placement),
		order: make([]*Placement, 0, 72),
	}
}

// Add commits a placement. A location holds at most one tile.
func (b *Placements) Add(p *Placement) error {
	if _, ok := b.byLoc[p.Location]; ok {
		return fmt.Errorf("add %s: %w", p, core.ErrOccupied)
	}
	b.byLoc[p.Location] = p
	b.order = append(b.order, p)
	return nil
}

// Clone returns a deep copy of the board in the same commit order
func (b *Placements) Clone() *Placements {
	c := &Placements{
		byLoc: make(map[core.Location]*Placement, len(b.byLoc)),
		order: make([]*Placement, 0, cap(b.order)),
	}
	for _, p := range b.order {
		cp := p.Clone()
		c.byLoc[cp.Location] = cp
		c.order = append(c.order, cp)
	}
	return c
}

// At returns the placement at loc, nil if the cell is empty
func (b *Placements) At(loc core.Location) *Placement {
	return b.byLoc[loc]
}

// Has reports whether loc is occupied
func (b *Placements) Has(loc core.Location) bool {
	_, ok := b.byLoc[loc]
	return ok
}

// Len returns the number of placed tiles
func (b *Placements) Len() int {
	return len(b.order)
}

// All returns the placements in commit order
func (b *Placements) All() []*Placement {
	out := make([]*Placement, len(b.order))
	copy(out, b.order)
	return out
}

// Neighbor returns the placement adjacent to loc in direction dir, nil if none
func (b *Placements) Neighbor(loc core.Location, dir core.Orient) *Placement {
	return b.byLoc[loc.Neighbor(dir)]
}

// OccupiedNeighbors returns the directions from loc that lead to a placed tile
func (b *Placements) OccupiedNeighbors(loc core.Location) []core.Orient {
	dirs := make([]core.Orient, 0, 4)
	for _, dir := range core.Orients {
		if b.Has(loc.Neighbor(dir)) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// CountNeighborhood returns how many of the eight cells around loc are occupied
func (b *Placements) CountNeighborhood(loc core.Location) int {
	n := 0
	for _, cell := range loc.Neighborhood() {
		if b.Has(cell) {
			n++
		}
	}
	return n
}

// Frontier returns every empty cell orthogonally adjacent to a placed tile, sorted
// row-major
func (b *Placements) Frontier() []core.Location {
	seen := make(map[core.Location]struct{})
	out := make([]core.Location, 0, 2*len(b.order)+2)
	for _, p := range b.order {
		for _, n := range p.Location.Neighbors() {
			if b.Has(n) {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	slices.SortFunc(out, core.Location.Compare)
	return out
}

// Piecens returns every piecen standing on the board, in placement commit order
func (b *Placements) Piecens() []*Piecen {
	out := make([]*Piecen, 0)
	for _, p := range b.order {
		if p.Piecen != nil {
			out = append(out, p.Piecen)
		}
	}
	return out
}

// PiecensOf counts the piecens a player has standing on the board
func (b *Placements) PiecensOf(player int) int {
	n := 0
	for _, p := range b.order {
		if p.Piecen != nil && p.Piecen.Owner == player {
			n++
		}
	}
	return n
}

// RemovePiecen lifts the piecen standing at loc and returns it, nil if there is none
func (b *Placements) RemovePiecen(loc core.Location) *Piecen {
	p := b.byLoc[loc]
	if p == nil || p.Piecen == nil {
		return nil
	}
	removed := p.Piecen
	p.Piecen = nil
	return removed
}

// Bounds returns the smallest rectangle holding every placement
func (b *Placements) Bounds() (lo, hi core.Location) {
	for i, p := range b.order {
		if i == 0 {
			lo, hi = p.Location, p.Location
			continue
		}
		if p.Location.X < lo.X {
			lo.X = p.Location.X
		}
		if p.Location.Y < lo.Y {
			lo.Y = p.Location.Y
		}
		if p.Location.X > hi.X {
			hi.X = p.Location.X
		}
		if p.Location.Y > hi.Y {
			hi.Y = p.Location.Y
		}
	}
	return lo, hi
}
