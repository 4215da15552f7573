package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"golang.org/x/exp/slices"
)

// FeatureRef names one feature of one placed tile
type FeatureRef struct {
	Location core.Location
	Feature  int
}

// Group is a connected region of same-typed features spread across placed tiles
type Group struct {
	Type     tiles.FeatureType
	Members  []FeatureRef
	Tiles    []core.Location // distinct, sorted
	Shields  int             // shielded tiles among Tiles
	Complete bool
	Piecens  []board.Piecen // sorted by location
	ID       int            // highest claim group id seen among the members
}

// Claimed reports whether any piecen stands in the group
func (g *Group) Claimed() bool {
	return len(g.Piecens) > 0
}

// Contains reports whether the feature belongs to the group
func (g *Group) Contains(ref FeatureRef) bool {
	for _, m := range g.Members {
		if m == ref {
			return true
		}
	}
	return false
}

// CollectGroup walks every feature connected to start through matched boundary bits.
// The group is complete when no reached bit faces an empty cell. A cloister is its own
// group and is complete once all eight surrounding cells are occupied.
func CollectGroup(b *board.Placements, start FeatureRef) (*Group, error) {
	p := b.At(start.Location)
	if p == nil {
		return nil, fmt.Errorf("collect group at %s: no tile placed", start.Location)
	}
	f, ok := p.Tile.Terrain.Feature(start.Feature)
	if !ok {
		return nil, fmt.Errorf("collect group at %s feature %d: %w", start.Location, start.Feature, core.ErrInvalidFeature)
	}

	if f.Type == tiles.Cloister {
		return cloisterGroup(b, p, start), nil
	}

	g := &Group{Type: f.Type, Complete: true}
	visited := map[FeatureRef]struct{}{start: {}}
	work := []FeatureRef{start}
	for len(work) > 0 {
		ref := work[len(work)-1]
		work = work[:len(work)-1]
		g.Members = append(g.Members, ref)

		cur := b.At(ref.Location)
		for _, bit := range cur.FeatureMask(ref.Feature).Bits() {
			adj, _ := bit.Adjacency()
			next := b.Neighbor(ref.Location, adj.Dir)
			if next == nil {
				g.Complete = false
				continue
			}
			j := next.FindFeature(adj.Opposite)
			if j < 0 || next.Features()[j].Type != f.Type {
				return nil, fmt.Errorf("%s bit %s -> %s: %w", cur, bit, next, core.ErrGeometryMismatch)
			}
			nref := FeatureRef{Location: next.Location, Feature: j}
			if _, seen := visited[nref]; seen {
				continue
			}
			visited[nref] = struct{}{}
			work = append(work, nref)
		}
	}

	g.finish(b)
	return g, nil
}

func cloisterGroup(b *board.Placements, p *board.Placement, ref FeatureRef) *Group {
	g := &Group{
		Type:     tiles.Cloister,
		Members:  []FeatureRef{ref},
		Tiles:    []core.Location{p.Location},
		Complete: b.CountNeighborhood(p.Location) == 8,
	}
	for _, loc := range p.Location.Neighborhood() {
		if b.Has(loc) {
			g.Tiles = append(g.Tiles, loc)
		}
	}
	slices.SortFunc(g.Tiles, core.Location.Compare)
	if p.Piecen != nil && p.Piecen.Feature == ref.Feature {
		g.Piecens = []board.Piecen{*p.Piecen}
	}
	g.ID = p.Group(ref.Feature)
	return g
}

// finish derives tiles, shields, piecens and id from the member list
func (g *Group) finish(b *board.Placements) {
	seen := make(map[core.Location]struct{}, len(g.Members))
	for _, m := range g.Members {
		p := b.At(m.Location)
		if gid := p.Group(m.Feature); gid > g.ID {
			g.ID = gid
		}
		if p.Piecen != nil && p.Piecen.Feature == m.Feature {
			g.Piecens = append(g.Piecens, *p.Piecen)
		}
		if _, dup := seen[m.Location]; dup {
			continue
		}
		seen[m.Location] = struct{}{}
		g.Tiles = append(g.Tiles, m.Location)
		if p.Tile.Shield && g.Type == tiles.City {
			g.Shields++
		}
	}
	slices.SortFunc(g.Tiles, core.Location.Compare)
	slices.SortFunc(g.Piecens, func(a, b board.Piecen) int { return a.Location.Compare(b.Location) })
	slices.SortFunc(g.Members, func(a, b FeatureRef) int {
		if c := a.Location.Compare(b.Location); c != 0 {
			return c
		}
		return a.Feature - b.Feature
	})
}

// majority returns the owners holding the most piecens in the group, sorted
func majority(piecens []board.Piecen) []int {
	counts := make(map[int]int)
	best := 0
	for _, pc := range piecens {
		counts[pc.Owner]++
		if counts[pc.Owner] > best {
			best = counts[pc.Owner]
		}
	}
	out := make([]int, 0, len(counts))
	for owner, n := range counts {
		if n == best {
			out = append(out, owner)
		}
	}
	slices.Sort(out)
	return out
}
