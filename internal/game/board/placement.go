package board

import (
	"fmt"

	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
)

// Piecen is a player's token standing on one feature of a placed tile. At most one
// piecen stands on a tile, so its identity is its location.
type Piecen struct {
	Owner    int
	Location core.Location
	Feature  int
	Group    int // mirrors the claim group of the feature it stands on
}

// NewPiecen creates an unassigned piecen for the given player and feature
func NewPiecen(owner int, loc core.Location, feature int) *Piecen {
	return &Piecen{Owner: owner, Location: loc, Feature: feature}
}

// Key returns the value piecens are compared and hashed by
func (p Piecen) Key() core.Location { return p.Location }

// Equal reports whether both piecens stand on the same tile
func (p Piecen) Equal(other Piecen) bool { return p.Location == other.Location }

func (p Piecen) String() string {
	return fmt.Sprintf("piecen[player %d @ %s feature %d group %d]", p.Owner, p.Location, p.Feature, p.Group)
}

// Placement is a tile fixed to the board. Group ids live on the placement and are
// the only part of it that changes after it is committed.
type Placement struct {
	Tile     tiles.GameTile
	Location core.Location
	Orient   core.Orient
	Piecen   *Piecen

	groups map[int]int // feature index -> claim group, absent means 0
}

// NewPlacement creates a placement with no claims
func NewPlacement(tile tiles.GameTile, loc core.Location, o core.Orient) *Placement {
	return &Placement{Tile: tile, Location: loc, Orient: o}
}

// Key returns the value placements are compared and hashed by
func (p *Placement) Key() core.Location { return p.Location }

// Equal reports whether both placements occupy the same location
func (p *Placement) Equal(other *Placement) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Location == other.Location
}

// Edge returns the edge type the placed tile shows toward side
func (p *Placement) Edge(side core.Orient) core.Edge {
	return p.Tile.Terrain.RotatedEdge(p.Orient, side)
}

// Features returns the canonical features of the placed tile
func (p *Placement) Features() []tiles.Feature {
	return p.Tile.Terrain.Features()
}

// FeatureMask returns the mask of feature i as it lies on the board
func (p *Placement) FeatureMask(i int) core.Mask {
	f, ok := p.Tile.Terrain.Feature(i)
	if !ok {
		return 0
	}
	return f.Rotated(p.Orient)
}

// FindFeature returns the index of the feature that reaches bit on the board, or -1
func (p *Placement) FindFeature(bit core.Mask) int {
	return p.Tile.Terrain.FindFeature(p.Orient, bit)
}

// Group returns the claim group of feature i, 0 when unclaimed
func (p *Placement) Group(i int) int {
	return p.groups[i]
}

// SetGroup assigns the claim group of feature i
func (p *Placement) SetGroup(i, group int) {
	if p.groups == nil {
		p.groups = make(map[int]int, len(p.Features()))
	}
	p.groups[i] = group
	if p.Piecen != nil && p.Piecen.Feature == i {
		p.Piecen.Group = group
	}
}

// Groups returns a copy of the assigned claim groups keyed by feature index
func (p *Placement) Groups() map[int]int {
	out := make(map[int]int, len(p.groups))
	for k, v := range p.groups {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy that shares no state with p
func (p *Placement) Clone() *Placement {
	c := *p
	if p.Piecen != nil {
		pc := *p.Piecen
		c.Piecen = &pc
	}
	c.groups = nil
	if len(p.groups) > 0 {
		c.groups = p.Groups()
	}
	return &c
}

func (p *Placement) String() string {
	return fmt.Sprintf("%s@%s/%s", p.Tile, p.Location, p.Orient)
}
