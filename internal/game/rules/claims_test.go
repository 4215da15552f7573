package rules

import (
	"testing"

	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"github.com/mitchelldurbincs/carcassonne/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commit adds each TileSpec to the board and propagates claims the way a turn does
func commit(t *testing.T, ce *ClaimEngine, b *board.Placements, specs ...testutil.TileSpec) []*board.Placement {
	t.Helper()
	out := make([]*board.Placement, 0, len(specs))
	for _, s := range specs {
		p := testutil.PlaceAll(t, b, s)[0]
		_, err := ce.AssignClaimGroups(b, p)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestAssignClaimGroups_ClosedCity(t *testing.T) {
	b := testutil.StarterBoard(t)
	ce := NewClaimEngine(testutil.NopLogger())

	p := testutil.PlaceAll(t, b, testutil.At(tiles.CityOne, 0, -1, core.South).WithPiecen(0, 0))[0]
	complete, err := ce.AssignClaimGroups(b, p)
	require.NoError(t, err)

	assert.True(t, complete)
	assert.Equal(t, 1, ce.LastGroup())
	assert.Equal(t, 1, p.Group(0))
	assert.Equal(t, 1, p.Piecen.Group)
	assert.Equal(t, 1, b.At(core.Origin).Group(0))
	assert.Equal(t, 0, b.At(core.Origin).Group(1), "road is not part of the city")
	assert.Equal(t, 0, p.Group(1), "grass stays unclaimed")
}

func TestAssignClaimGroups_InheritsFromNeighbours(t *testing.T) {
	b := testutil.StarterBoard(t)
	ce := NewClaimEngine(testutil.NopLogger())

	first := testutil.PlaceAll(t, b, testutil.At(tiles.StraightRoad, 1, 0, core.East).WithPiecen(0, 2))[0]
	complete, err := ce.AssignClaimGroups(b, first)
	require.NoError(t, err)
	assert.False(t, complete, "road runs off both ends")
	assert.Equal(t, 1, first.Group(2))
	assert.Equal(t, 1, b.At(core.Origin).Group(1))

	second := testutil.PlaceAll(t, b, testutil.At(tiles.StraightRoad, 2, 0, core.East))[0]
	complete, err = ce.AssignClaimGroups(b, second)
	require.NoError(t, err)
	assert.False(t, complete, "no piecen, nothing flooded")
	assert.Equal(t, 1, second.Group(2))
	assert.Equal(t, 0, second.Group(0))
	assert.Equal(t, 0, second.Group(1))
	assert.Equal(t, 1, ce.LastGroup(), "inheritance issues no id")
}

func TestAssignClaimGroups_FloodRelabelsWholeGroup(t *testing.T) {
	b := testutil.StarterBoard(t)
	ce := NewClaimEngine(testutil.NopLogger())

	commit(t, ce, b,
		testutil.At(tiles.CloisterTile, 0, -5, core.North).WithPiecen(1, 0),
		testutil.At(tiles.StraightRoad, 1, 0, core.East),
		testutil.At(tiles.StraightRoad, 2, 0, core.East),
	)
	require.Equal(t, 1, ce.LastGroup())

	west := commit(t, ce, b, testutil.At(tiles.StraightRoad, -1, 0, core.East).WithPiecen(0, 2))[0]
	assert.Equal(t, 2, ce.LastGroup())
	for _, l := range []core.Location{loc(-1, 0), loc(1, 0), loc(2, 0)} {
		assert.Equal(t, 2, b.At(l).Group(2), "road at %s", l)
	}
	assert.Equal(t, 2, b.At(core.Origin).Group(1))
	assert.Equal(t, 2, west.Piecen.Group)
}

func TestAssignClaimGroups_JoinExtendsClaimOverUnclaimedChain(t *testing.T) {
	b := testutil.StarterBoard(t)
	ce := NewClaimEngine(testutil.NopLogger())

	commit(t, ce, b,
		testutil.At(tiles.StraightRoad, -1, 0, core.East).WithPiecen(0, 2),
		testutil.At(tiles.CurveRoad, 0, 1, core.West),
		testutil.At(tiles.CurveRoad, 1, 1, core.East),
	)
	assert.Equal(t, 0, b.At(loc(0, 1)).Group(0), "chain south of the starter is unclaimed")
	assert.Equal(t, 0, b.At(loc(1, 1)).Group(0))

	// The curve at (1,0) links the claimed road to the unclaimed chain
	commit(t, ce, b, testutil.At(tiles.CurveRoad, 1, 0, core.North))

	road, err := CollectGroup(b, FeatureRef{Location: core.Origin, Feature: 1})
	require.NoError(t, err)
	require.Len(t, road.Members, 5)
	for _, m := range road.Members {
		assert.Equal(t, 1, b.At(m.Location).Group(m.Feature), "road at %s", m.Location)
	}
	assert.Equal(t, 1, ce.LastGroup(), "joining issues no id")
	assert.Equal(t, 0, b.At(loc(0, 1)).Group(1), "grass is not part of the road")
	assert.Equal(t, 0, b.At(loc(0, 1)).Group(2))
}

func TestAssignClaimGroups_JoinStopsAtOtherClaims(t *testing.T) {
	b := testutil.StarterBoard(t)
	ce := NewClaimEngine(testutil.NopLogger())

	commit(t, ce, b,
		testutil.At(tiles.StraightRoad, -1, 0, core.East).WithPiecen(0, 2),
		testutil.At(tiles.CurveRoad, 0, 1, core.West).WithPiecen(1, 0),
		testutil.At(tiles.CurveRoad, 1, 1, core.East),
	)
	require.Equal(t, 2, b.At(loc(1, 1)).Group(0))

	joint := commit(t, ce, b, testutil.At(tiles.CurveRoad, 1, 0, core.North))[0]

	assert.Equal(t, 2, joint.Group(0), "highest neighbour wins")
	assert.Equal(t, 1, b.At(core.Origin).Group(1), "other claim keeps its id")
	assert.Equal(t, 1, b.At(loc(-1, 0)).Group(2))
	assert.Equal(t, 2, b.At(loc(0, 1)).Group(0))
}

func TestAssignClaimGroups_CountersArePerEngine(t *testing.T) {
	for i := 0; i < 2; i++ {
		b := testutil.StarterBoard(t)
		ce := NewClaimEngine(testutil.NopLogger())
		commit(t, ce, b, testutil.At(tiles.CityOne, 0, -1, core.South).WithPiecen(0, 0))
		assert.Equal(t, 1, ce.LastGroup())
	}
}

func TestAssignClaimGroups_GeometryMismatch(t *testing.T) {
	b := testutil.StarterBoard(t)
	ce := NewClaimEngine(testutil.NopLogger())

	p := testutil.PlaceAll(t, b, testutil.At(tiles.CityFour, 1, 0, core.North))[0]
	_, err := ce.AssignClaimGroups(b, p)
	assert.ErrorIs(t, err, core.ErrGeometryMismatch)

	_, err = CollectGroup(b, FeatureRef{Location: core.Origin, Feature: 1})
	assert.ErrorIs(t, err, core.ErrGeometryMismatch)
}

func TestClaimablePiecenFeatures(t *testing.T) {
	b := testutil.StarterBoard(t)
	ce := NewClaimEngine(testutil.NopLogger())
	commit(t, ce, b, testutil.At(tiles.StraightRoad, 1, 0, core.East).WithPiecen(0, 2))

	proposed := testutil.At(tiles.StraightRoad, -1, 0, core.East).Placement()
	claimable, err := ce.ClaimablePiecenFeatures(b, proposed)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, claimable, "road joins the claimed road")
	assert.False(t, b.Has(proposed.Location), "proposal is not committed")

	cloister := testutil.At(tiles.CloisterRoad, 0, 1, core.North).Placement()
	claimable, err = ce.ClaimablePiecenFeatures(b, cloister)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, claimable)

	committed := b.At(loc(1, 0))
	claimable, err = ce.ClaimablePiecenFeatures(b, committed)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, claimable)
}

func TestCollectGroup(t *testing.T) {
	b := testutil.StarterBoard(t)
	testutil.PlaceAll(t, b,
		testutil.At(tiles.CityOne, 0, -1, core.South).WithShield(),
		testutil.At(tiles.StraightRoad, 1, 0, core.East).WithPiecen(1, 2),
	)

	city, err := CollectGroup(b, FeatureRef{Location: core.Origin, Feature: 0})
	require.NoError(t, err)
	assert.Equal(t, tiles.City, city.Type)
	assert.True(t, city.Complete)
	assert.Equal(t, []core.Location{loc(0, -1), core.Origin}, city.Tiles)
	assert.Equal(t, 1, city.Shields)
	assert.False(t, city.Claimed())

	road, err := CollectGroup(b, FeatureRef{Location: loc(1, 0), Feature: 2})
	require.NoError(t, err)
	assert.False(t, road.Complete)
	assert.Len(t, road.Members, 2)
	assert.True(t, road.Contains(FeatureRef{Location: core.Origin, Feature: 1}))
	require.Len(t, road.Piecens, 1)
	assert.Equal(t, 1, road.Piecens[0].Owner)

	_, err = CollectGroup(b, FeatureRef{Location: loc(4, 4), Feature: 0})
	assert.Error(t, err)
	_, err = CollectGroup(b, FeatureRef{Location: core.Origin, Feature: 9})
	assert.ErrorIs(t, err, core.ErrInvalidFeature)
}
