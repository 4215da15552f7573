package tiles

// GameTile is a drawable tile: a terrain with or without a city shield
type GameTile struct {
	Terrain Terrain
	Shield  bool
}

// NewGameTile creates a tile of the given terrain
func NewGameTile(t Terrain, shield bool) GameTile {
	return GameTile{Terrain: t, Shield: shield}
}

// StarterTile is placed at the origin before the first turn
var StarterTile = GameTile{Terrain: CityOneRoadStraight}

func (t GameTile) String() string {
	if t.Shield {
		return t.Terrain.String() + "+SHIELD"
	}
	return t.Terrain.String()
}

// TileCount is one row of the distribution table
type TileCount struct {
	Tile  GameTile
	Count int
}

var distribution = []TileCount{
	{GameTile{CloisterRoad, false}, 2},
	{GameTile{CloisterTile, false}, 4},
	{GameTile{CityFour, true}, 1},
	{GameTile{CityOneRoadStraight, false}, 4},
	{GameTile{CityOne, false}, 5},
	{GameTile{CityTwoAcross, true}, 2},
	{GameTile{CityTwoAcross, false}, 1},
	{GameTile{TwoCityAcross, false}, 3},
	{GameTile{TwoCityTwo, false}, 2},
	{GameTile{CityOneRoadRight, false}, 3},
	{GameTile{CityOneRoadLeft, false}, 3},
	{GameTile{CityOneRoadThree, false}, 3},
	{GameTile{CityTwo, true}, 2},
	{GameTile{CityTwo, false}, 3},
	{GameTile{CityTwoRoad, true}, 2},
	{GameTile{CityTwoRoad, false}, 3},
	{GameTile{CityThree, true}, 1},
	{GameTile{CityThree, false}, 3},
	{GameTile{CityThreeRoad, true}, 2},
	{GameTile{CityThreeRoad, false}, 1},
	{GameTile{StraightRoad, false}, 8},
	{GameTile{CurveRoad, false}, 9},
	{GameTile{ThreeWayRoad, false}, 4},
	{GameTile{FourWayRoad, false}, 1},
}

// Distribution returns a copy of the per-tile counts of a full set, starter included
func Distribution() []TileCount {
	out := make([]TileCount, len(distribution))
	copy(out, distribution)
	return out
}

// FullSet expands the distribution table into one entry per physical tile, in table order
func FullSet() []GameTile {
	out := make([]GameTile, 0, 72)
	for _, tc := range distribution {
		for i := 0; i < tc.Count; i++ {
			out = append(out, tc.Tile)
		}
	}
	return out
}
