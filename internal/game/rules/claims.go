package rules

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"github.com/rs/zerolog"
)

// ClaimEngine propagates claim group ids across the board. Each game owns one engine
// so ids are unique within a game and start from 1.
type ClaimEngine struct {
	logger    zerolog.Logger
	lastGroup int
}

// NewClaimEngine creates a claim engine with a fresh group counter
func NewClaimEngine(logger zerolog.Logger) *ClaimEngine {
	return &ClaimEngine{
		logger: logger.With().Str("component", "ClaimEngine").Logger(),
	}
}

// LastGroup returns the most recently issued group id, 0 if none
func (ce *ClaimEngine) LastGroup() int {
	return ce.lastGroup
}

func (ce *ClaimEngine) nextGroup() int {
	ce.lastGroup++
	return ce.lastGroup
}

// AssignClaimGroups updates group ids after p has been committed to b. Every feature of
// p first inherits the highest id found on the neighbouring features it connects to, and
// that id then spreads over the unclaimed features connected to it. When p carries a piecen, the piecen's whole connected group is then relabelled with a
// fresh id. The returned flag reports whether that group is closed on every side; it is
// false when p carries no piecen.
func (ce *ClaimEngine) AssignClaimGroups(b *board.Placements, p *board.Placement) (bool, error) {
	for i, f := range p.Features() {
		best := p.Group(i)
		for _, bit := range p.FeatureMask(i).Bits() {
			adj, _ := bit.Adjacency()
			next := b.Neighbor(p.Location, adj.Dir)
			if next == nil {
				continue
			}
			j := next.FindFeature(adj.Opposite)
			if j < 0 || next.Features()[j].Type != f.Type {
				err := fmt.Errorf("%s feature %d bit %s -> %s: %w", p, i, bit, next, core.ErrGeometryMismatch)
				ce.logger.Error().Err(err).Msg("Neighbour has no feature on the facing bit")
				return false, err
			}
			if g := next.Group(j); g > best {
				best = g
			}
		}
		if best > p.Group(i) {
			p.SetGroup(i, best)
		}
	}
	for i := range p.Features() {
		if id := p.Group(i); id > 0 {
			if err := ce.spread(b, FeatureRef{Location: p.Location, Feature: i}, id); err != nil {
				return false, err
			}
		}
	}

	if p.Piecen == nil {
		return false, nil
	}

	g, err := CollectGroup(b, FeatureRef{Location: p.Location, Feature: p.Piecen.Feature})
	if err != nil {
		if errors.Is(err, core.ErrGeometryMismatch) {
			ce.logger.Error().Err(err).Msg("Flood fill hit inconsistent geometry")
		}
		return false, err
	}

	id := ce.nextGroup()
	for _, m := range g.Members {
		b.At(m.Location).SetGroup(m.Feature, id)
	}
	ce.logger.Debug().
		Int("group", id).
		Str("type", g.Type.String()).
		Int("features", len(g.Members)).
		Bool("complete", g.Complete).
		Msg("Claim group assigned")
	return g.Complete, nil
}

// spread walks outward from start and labels every connected feature still at 0 with
// id. The walk stops at features holding any other non-zero id.
func (ce *ClaimEngine) spread(b *board.Placements, start FeatureRef, id int) error {
	visited := map[FeatureRef]struct{}{start: {}}
	work := []FeatureRef{start}
	relabelled := 0
	for len(work) > 0 {
		ref := work[len(work)-1]
		work = work[:len(work)-1]

		cur := b.At(ref.Location)
		typ := cur.Features()[ref.Feature].Type
		for _, bit := range cur.FeatureMask(ref.Feature).Bits() {
			adj, _ := bit.Adjacency()
			next := b.Neighbor(ref.Location, adj.Dir)
			if next == nil {
				continue
			}
			j := next.FindFeature(adj.Opposite)
			if j < 0 || next.Features()[j].Type != typ {
				err := fmt.Errorf("%s bit %s -> %s: %w", cur, bit, next, core.ErrGeometryMismatch)
				ce.logger.Error().Err(err).Msg("Neighbour has no feature on the facing bit")
				return err
			}
			nref := FeatureRef{Location: next.Location, Feature: j}
			if _, seen := visited[nref]; seen {
				continue
			}
			visited[nref] = struct{}{}
			switch next.Group(j) {
			case 0:
				next.SetGroup(j, id)
				relabelled++
			case id:
			default:
				continue
			}
			work = append(work, nref)
		}
	}
	if relabelled > 0 {
		ce.logger.Debug().Int("group", id).Int("features", relabelled).Msg("Claim group extended")
	}
	return nil
}

// ClaimablePiecenFeatures returns the feature indices of p on which a piecen may stand:
// those whose connected group holds no piecen yet. p may be committed or only proposed.
func (ce *ClaimEngine) ClaimablePiecenFeatures(b *board.Placements, p *board.Placement) ([]int, error) {
	out := make([]int, 0, len(p.Features()))

	if b.At(p.Location) == p {
		for i := range p.Features() {
			g, err := CollectGroup(b, FeatureRef{Location: p.Location, Feature: i})
			if err != nil {
				return nil, err
			}
			if !g.Claimed() {
				out = append(out, i)
			}
		}
		return out, nil
	}

	checked := make(map[FeatureRef]bool)
	for i, f := range p.Features() {
		if f.Type == tiles.Cloister {
			out = append(out, i)
			continue
		}
		claimed := false
		for _, bit := range p.FeatureMask(i).Bits() {
			adj, _ := bit.Adjacency()
			next := b.Neighbor(p.Location, adj.Dir)
			if next == nil {
				continue
			}
			j := next.FindFeature(adj.Opposite)
			if j < 0 || next.Features()[j].Type != f.Type {
				return nil, fmt.Errorf("%s feature %d bit %s -> %s: %w", p, i, bit, next, core.ErrGeometryMismatch)
			}
			ref := FeatureRef{Location: next.Location, Feature: j}
			c, ok := checked[ref]
			if !ok {
				g, err := CollectGroup(b, ref)
				if err != nil {
					return nil, err
				}
				c = g.Claimed()
				for _, m := range g.Members {
					checked[m] = c
				}
			}
			if c {
				claimed = true
				break
			}
		}
		if !claimed {
			out = append(out, i)
		}
	}
	return out, nil
}
