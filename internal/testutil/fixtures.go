package testutil

import (
	"testing"

	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"github.com/stretchr/testify/require"
)

// NoPiecen marks a TileSpec without a piecen
const NoPiecen = -1

// TileSpec describes one placement for a board fixture
type TileSpec struct {
	Terrain tiles.Terrain
	Shield  bool
	X, Y    int
	Orient  core.Orient
	Owner   int // piecen owner, ignored when Feature is NoPiecen
	Feature int
}

// At is a shorthand for a TileSpec without a piecen
func At(terrain tiles.Terrain, x, y int, o core.Orient) TileSpec {
	return TileSpec{Terrain: terrain, X: x, Y: y, Orient: o, Feature: NoPiecen}
}

// WithPiecen returns a copy of s with a piecen of owner on feature
func (s TileSpec) WithPiecen(owner, feature int) TileSpec {
	s.Owner = owner
	s.Feature = feature
	return s
}

// WithShield returns a copy of s using the shielded tile
func (s TileSpec) WithShield() TileSpec {
	s.Shield = true
	return s
}

// Placement builds the uncommitted placement s describes
func (s TileSpec) Placement() *board.Placement {
	loc := core.NewLocation(s.X, s.Y)
	p := board.NewPlacement(tiles.NewGameTile(s.Terrain, s.Shield), loc, s.Orient)
	if s.Feature != NoPiecen {
		p.Piecen = board.NewPiecen(s.Owner, loc, s.Feature)
	}
	return p
}

// StarterBoard returns a board holding only the starter tile at the origin facing north
func StarterBoard(t testing.TB) *board.Placements {
	t.Helper()
	b := board.NewPlacements()
	require.NoError(t, b.Add(board.NewPlacement(tiles.StarterTile, core.Origin, core.North)))
	return b
}

// PlaceAll commits the specs to b in order without checking legality or assigning claims
func PlaceAll(t testing.TB, b *board.Placements, specs ...TileSpec) []*board.Placement {
	t.Helper()
	out := make([]*board.Placement, 0, len(specs))
	for _, s := range specs {
		p := s.Placement()
		require.NoError(t, b.Add(p))
		out = append(out, p)
	}
	return out
}
