package tiles

import (
	"testing"

	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ShippedCatalog(t *testing.T) {
	require.NoError(t, Validate())
}

func TestTerrains(t *testing.T) {
	all := Terrains()
	assert.Len(t, all, 19)
	for _, tr := range all {
		assert.True(t, tr.Valid())
		parsed, err := ParseTerrain(tr.String())
		require.NoError(t, err)
		assert.Equal(t, tr, parsed)
	}
	assert.False(t, Terrain(19).Valid())
	assert.Equal(t, "Terrain(-1)", Terrain(-1).String())

	_, err := ParseTerrain("CASTLE")
	assert.Error(t, err)
}

func TestFindFeature_StraightRoadEast(t *testing.T) {
	assert.Equal(t, 0, StraightRoad.FindFeature(core.East, core.MaskENE))
	assert.Equal(t, 1, StraightRoad.FindFeature(core.East, core.MaskESE))
	assert.Equal(t, 2, StraightRoad.FindFeature(core.East, core.MaskE))
	assert.Equal(t, 2, StraightRoad.FindFeature(core.North, core.MaskN))
}

func TestFindFeature_CloisterNeverMatches(t *testing.T) {
	for _, adj := range core.Adjacencies {
		assert.Equal(t, 1, CloisterTile.FindFeature(core.North, adj.Bit))
	}
	assert.Equal(t, -1, CloisterTile.FindFeature(core.North, 0))
}

func TestRotatedEdge(t *testing.T) {
	tests := []struct {
		name     string
		terrain  Terrain
		orient   core.Orient
		side     core.Orient
		expected core.Edge
	}{
		{"StarterNorthFace", CityOneRoadStraight, core.North, core.North, core.EdgeCity},
		{"StarterTurnedEast", CityOneRoadStraight, core.East, core.East, core.EdgeCity},
		{"StarterTurnedEastNorth", CityOneRoadStraight, core.East, core.North, core.EdgeRoad},
		{"CityThreeEastSouth", CityThree, core.East, core.South, core.EdgeCity},
		{"CityThreeEastWest", CityThree, core.East, core.West, core.EdgeGrass},
		{"CityTwoSouth", CityTwo, core.South, core.East, core.EdgeCity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.terrain.RotatedEdge(tt.orient, tt.side))
		})
	}
}

func TestRotatedEdge_AgreesWithMasks(t *testing.T) {
	for _, tr := range Terrains() {
		for _, o := range core.Orients {
			for _, side := range core.Orients {
				centre := core.SideMask(side) & (core.MaskN | core.MaskE | core.MaskS | core.MaskW)
				f := tr.Features()[tr.FindFeature(o, centre)]
				assert.Equal(t, tr.RotatedEdge(o, side), f.Type.Edge(), "%s turned %s, side %s", tr, o, side)
			}
		}
	}
}

func TestBorders(t *testing.T) {
	// Field between city and road touches the city; field beyond the road does not.
	assert.True(t, CityOneRoadStraight.Borders(2, 0))
	assert.False(t, CityOneRoadStraight.Borders(3, 0))
	assert.False(t, CityOneRoadStraight.Borders(0, 0))
	assert.False(t, CityOneRoadStraight.Borders(0, 9))

	// Inner curve of a road stays clear of the city corner.
	assert.False(t, CityTwoRoad.Borders(2, 0))
	assert.True(t, CityTwoRoad.Borders(3, 0))
}

func TestDistribution(t *testing.T) {
	total := 0
	shields := 0
	for _, tc := range Distribution() {
		total += tc.Count
		if tc.Tile.Shield {
			shields += tc.Count
		}
	}
	assert.Equal(t, 72, total)
	assert.Equal(t, 10, shields)
	assert.Len(t, FullSet(), 72)
	assert.Contains(t, FullSet(), StarterTile)

	// Copies must not alias the table.
	d := Distribution()
	d[0].Count = 99
	assert.NotEqual(t, 99, Distribution()[0].Count)
}

func TestGameTile_Equality(t *testing.T) {
	a := NewGameTile(CityTwo, true)
	b := GameTile{Terrain: CityTwo, Shield: true}
	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.NotEqual(t, a, NewGameTile(CityTwo, false))

	seen := map[GameTile]int{a: 1}
	assert.Equal(t, 1, seen[b])
	assert.Equal(t, "CITY_TWO+SHIELD", a.String())
	assert.Equal(t, "CITY_ONE_ROAD_STRAIGHT", StarterTile.String())
}
