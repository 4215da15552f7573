package rules

import (
	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"github.com/rs/zerolog"
)

// FeatureScore is the outcome of scoring one claimed group
type FeatureScore struct {
	Type     tiles.FeatureType
	Group    int
	Score    int
	Complete bool
	Scorers  []int          // players with the most piecens in the group, sorted
	Piecens  []board.Piecen // every piecen in the group, sorted by location
	Tiles    int
}

// Scorer evaluates groups against a score table. It never mutates the board.
type Scorer struct {
	table  ScoreTable
	logger zerolog.Logger
}

// NewScorer creates a scorer for the given table
func NewScorer(table ScoreTable, logger zerolog.Logger) *Scorer {
	return &Scorer{
		table:  table,
		logger: logger.With().Str("component", "Scorer").Logger(),
	}
}

// Table returns the score table in use
func (s *Scorer) Table() ScoreTable {
	return s.table
}

// ScoreOnPlacement returns the claimed groups that p has just completed: the cities and
// roads running through p, and the cloisters on p or around it.
func (s *Scorer) ScoreOnPlacement(b *board.Placements, p *board.Placement) ([]FeatureScore, error) {
	out := make([]FeatureScore, 0)
	visited := make(map[FeatureRef]struct{})

	for i, f := range p.Features() {
		if f.Type != tiles.City && f.Type != tiles.Road {
			continue
		}
		ref := FeatureRef{Location: p.Location, Feature: i}
		if _, seen := visited[ref]; seen {
			continue
		}
		g, err := CollectGroup(b, ref)
		if err != nil {
			return nil, err
		}
		for _, m := range g.Members {
			visited[m] = struct{}{}
		}
		if g.Complete && g.Claimed() {
			out = append(out, s.completeScore(g))
		}
	}

	cells := append([]core.Location{p.Location}, p.Location.Neighborhood()...)
	for _, loc := range cells {
		cp := b.At(loc)
		if cp == nil || cp.Piecen == nil {
			continue
		}
		f, ok := cp.Tile.Terrain.Feature(cp.Piecen.Feature)
		if !ok || f.Type != tiles.Cloister {
			continue
		}
		g, err := CollectGroup(b, FeatureRef{Location: loc, Feature: cp.Piecen.Feature})
		if err != nil {
			return nil, err
		}
		if g.Complete {
			out = append(out, s.completeScore(g))
		}
	}

	for _, fs := range out {
		s.logger.Debug().
			Str("type", fs.Type.String()).
			Int("group", fs.Group).
			Int("score", fs.Score).
			Ints("scorers", fs.Scorers).
			Msg("Group completed")
	}
	return out, nil
}

// ScoreAtGameEnd rates every claimed group left on the board: unfinished cities, roads
// and cloisters at end-of-game rates, then farms by the finished cities they border.
// Results follow placement commit order.
func (s *Scorer) ScoreAtGameEnd(b *board.Placements) ([]FeatureScore, error) {
	out := make([]FeatureScore, 0)
	farms := make([]*Group, 0)
	visited := make(map[FeatureRef]struct{})

	for _, p := range b.All() {
		for i, f := range p.Features() {
			ref := FeatureRef{Location: p.Location, Feature: i}
			if _, seen := visited[ref]; seen {
				continue
			}
			if f.Type == tiles.Cloister && (p.Piecen == nil || p.Piecen.Feature != i) {
				continue
			}
			g, err := CollectGroup(b, ref)
			if err != nil {
				return nil, err
			}
			for _, m := range g.Members {
				visited[m] = struct{}{}
			}
			if !g.Claimed() {
				continue
			}
			if g.Type == tiles.Grass {
				farms = append(farms, g)
				continue
			}
			if !g.Complete {
				out = append(out, s.endScore(g))
			}
		}
	}

	cities := newCityIndex(b)
	for _, farm := range farms {
		n, err := cities.completeBordered(farm)
		if err != nil {
			return nil, err
		}
		out = append(out, s.result(farm, s.table.FarmCity*n))
	}

	total := 0
	for _, fs := range out {
		total += fs.Score
	}
	s.logger.Debug().Int("groups", len(out)).Int("points", total).Msg("End of game scored")
	return out, nil
}

func (s *Scorer) completeScore(g *Group) FeatureScore {
	switch g.Type {
	case tiles.City:
		return s.result(g, s.table.CityTile*len(g.Tiles)+s.table.CityShield*g.Shields)
	case tiles.Road:
		return s.result(g, s.table.RoadTile*len(g.Tiles))
	case tiles.Cloister:
		return s.result(g, s.table.CloisterTile*len(g.Tiles))
	default:
		return s.result(g, 0)
	}
}

func (s *Scorer) endScore(g *Group) FeatureScore {
	switch g.Type {
	case tiles.City:
		return s.result(g, s.table.EndCityTile*len(g.Tiles)+s.table.EndCityShield*g.Shields)
	case tiles.Road:
		return s.result(g, s.table.EndRoadTile*len(g.Tiles))
	case tiles.Cloister:
		return s.result(g, s.table.EndCloisterTile*len(g.Tiles))
	default:
		return s.result(g, 0)
	}
}

func (s *Scorer) result(g *Group, score int) FeatureScore {
	return FeatureScore{
		Type:     g.Type,
		Group:    g.ID,
		Score:    score,
		Complete: g.Complete,
		Scorers:  majority(g.Piecens),
		Piecens:  g.Piecens,
		Tiles:    len(g.Tiles),
	}
}

// cityIndex caches city groups so each is walked once while scoring farms
type cityIndex struct {
	b      *board.Placements
	groups map[FeatureRef]*Group
}

func newCityIndex(b *board.Placements) *cityIndex {
	return &cityIndex{b: b, groups: make(map[FeatureRef]*Group)}
}

func (ci *cityIndex) lookup(ref FeatureRef) (*Group, error) {
	if g, ok := ci.groups[ref]; ok {
		return g, nil
	}
	g, err := CollectGroup(ci.b, ref)
	if err != nil {
		return nil, err
	}
	for _, m := range g.Members {
		ci.groups[m] = g
	}
	return g, nil
}

// completeBordered counts the distinct finished cities touching the farm
func (ci *cityIndex) completeBordered(farm *Group) (int, error) {
	seen := make(map[*Group]struct{})
	for _, m := range farm.Members {
		p := ci.b.At(m.Location)
		for j, f := range p.Features() {
			if f.Type != tiles.City || !p.Tile.Terrain.Borders(m.Feature, j) {
				continue
			}
			g, err := ci.lookup(FeatureRef{Location: m.Location, Feature: j})
			if err != nil {
				return 0, err
			}
			if g.Complete {
				seen[g] = struct{}{}
			}
		}
	}
	return len(seen), nil
}
