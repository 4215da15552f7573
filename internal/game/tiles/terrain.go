package tiles

import (
	"fmt"

	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
)

// CatalogVersion identifies the terrain and distribution tables below. Bump it whenever
// an edge, mask or count changes.
const CatalogVersion = 1

// Terrain is one of the fixed tile kinds
type Terrain int

const (
	CloisterTile Terrain = iota
	CloisterRoad
	CityFour
	CityOne
	CityOneRoadStraight
	CityOneRoadRight
	CityOneRoadLeft
	CityOneRoadThree
	CityTwo
	CityTwoRoad
	CityTwoAcross
	TwoCityAcross
	TwoCityTwo
	CityThree
	CityThreeRoad
	StraightRoad
	CurveRoad
	ThreeWayRoad
	FourWayRoad

	terrainCount
)

type terrainSpec struct {
	name     string
	edges    [4]core.Edge // N, E, S, W in canonical orientation
	features []Feature
}

const (
	ct = core.EdgeCity
	rd = core.EdgeRoad
	gs = core.EdgeGrass
)

var catalog = [terrainCount]terrainSpec{
	CloisterTile: {
		name:  "CLOISTER",
		edges: [4]core.Edge{gs, gs, gs, gs},
		features: []Feature{
			{Cloister, 0},
			{Grass, core.MaskAll},
		},
	},
	CloisterRoad: {
		name:  "CLOISTER_ROAD",
		edges: [4]core.Edge{gs, gs, rd, gs},
		features: []Feature{
			{Cloister, 0},
			{Road, core.MaskS},
			{Grass, core.MaskAll &^ core.MaskS},
		},
	},
	CityFour: {
		name:     "CITY_FOUR",
		edges:    [4]core.Edge{ct, ct, ct, ct},
		features: []Feature{{City, core.MaskAll}},
	},
	CityOne: {
		name:  "CITY_ONE",
		edges: [4]core.Edge{ct, gs, gs, gs},
		features: []Feature{
			{City, core.MaskNorthSide},
			{Grass, core.MaskEastSide | core.MaskSouthSide | core.MaskWestSide},
		},
	},
	CityOneRoadStraight: {
		name:  "CITY_ONE_ROAD_STRAIGHT",
		edges: [4]core.Edge{ct, rd, gs, rd},
		features: []Feature{
			{City, core.MaskNorthSide},
			{Road, core.MaskE | core.MaskW},
			{Grass, core.MaskENE | core.MaskWNW},
			{Grass, core.MaskESE | core.MaskSouthSide | core.MaskWSW},
		},
	},
	CityOneRoadRight: {
		name:  "CITY_ONE_ROAD_RIGHT",
		edges: [4]core.Edge{ct, rd, rd, gs},
		features: []Feature{
			{City, core.MaskNorthSide},
			{Road, core.MaskE | core.MaskS},
			{Grass, core.MaskESE | core.MaskSSE},
			{Grass, core.MaskENE | core.MaskSSW | core.MaskWestSide},
		},
	},
	// The left-hand variant's north cap is printed as grass on the canonical sheet, so
	// it never presents a city side.
	CityOneRoadLeft: {
		name:  "CITY_ONE_ROAD_LEFT",
		edges: [4]core.Edge{gs, gs, rd, rd},
		features: []Feature{
			{Grass, core.MaskNorthSide | core.MaskEastSide | core.MaskSSE | core.MaskWNW},
			{Road, core.MaskS | core.MaskW},
			{Grass, core.MaskSSW | core.MaskWSW},
		},
	},
	CityOneRoadThree: {
		name:  "CITY_ONE_ROAD_THREE",
		edges: [4]core.Edge{ct, rd, rd, rd},
		features: []Feature{
			{City, core.MaskNorthSide},
			{Road, core.MaskE},
			{Road, core.MaskS},
			{Road, core.MaskW},
			{Grass, core.MaskENE | core.MaskWNW},
			{Grass, core.MaskESE | core.MaskSSE},
			{Grass, core.MaskSSW | core.MaskWSW},
		},
	},
	CityTwo: {
		name:  "CITY_TWO",
		edges: [4]core.Edge{ct, gs, gs, ct},
		features: []Feature{
			{City, core.MaskNorthSide | core.MaskWestSide},
			{Grass, core.MaskEastSide | core.MaskSouthSide},
		},
	},
	CityTwoRoad: {
		name:  "CITY_TWO_ROAD",
		edges: [4]core.Edge{ct, rd, rd, ct},
		features: []Feature{
			{City, core.MaskNorthSide | core.MaskWestSide},
			{Road, core.MaskE | core.MaskS},
			{Grass, core.MaskESE | core.MaskSSE},
			{Grass, core.MaskENE | core.MaskSSW},
		},
	},
	CityTwoAcross: {
		name:  "CITY_TWO_ACROSS",
		edges: [4]core.Edge{ct, gs, ct, gs},
		features: []Feature{
			{City, core.MaskNorthSide | core.MaskSouthSide},
			{Grass, core.MaskEastSide},
			{Grass, core.MaskWestSide},
		},
	},
	TwoCityAcross: {
		name:  "TWO_CITY_ACROSS",
		edges: [4]core.Edge{ct, gs, ct, gs},
		features: []Feature{
			{City, core.MaskNorthSide},
			{City, core.MaskSouthSide},
			{Grass, core.MaskEastSide | core.MaskWestSide},
		},
	},
	TwoCityTwo: {
		name:  "TWO_CITY_TWO",
		edges: [4]core.Edge{ct, ct, gs, gs},
		features: []Feature{
			{City, core.MaskNorthSide},
			{City, core.MaskEastSide},
			{Grass, core.MaskSouthSide | core.MaskWestSide},
		},
	},
	CityThree: {
		name:  "CITY_THREE",
		edges: [4]core.Edge{ct, ct, gs, ct},
		features: []Feature{
			{City, core.MaskNorthSide | core.MaskEastSide | core.MaskWestSide},
			{Grass, core.MaskSouthSide},
		},
	},
	CityThreeRoad: {
		name:  "CITY_THREE_ROAD",
		edges: [4]core.Edge{ct, ct, rd, ct},
		features: []Feature{
			{City, core.MaskNorthSide | core.MaskEastSide | core.MaskWestSide},
			{Road, core.MaskS},
			{Grass, core.MaskSSE},
			{Grass, core.MaskSSW},
		},
	},
	StraightRoad: {
		name:  "STRAIGHT_ROAD",
		edges: [4]core.Edge{rd, gs, rd, gs},
		features: []Feature{
			{Grass, core.MaskNNW | core.MaskWestSide | core.MaskSSW},
			{Grass, core.MaskNNE | core.MaskEastSide | core.MaskSSE},
			{Road, core.MaskN | core.MaskS},
		},
	},
	CurveRoad: {
		name:  "CURVE_ROAD",
		edges: [4]core.Edge{gs, gs, rd, rd},
		features: []Feature{
			{Road, core.MaskS | core.MaskW},
			{Grass, core.MaskSSW | core.MaskWSW},
			{Grass, core.MaskNorthSide | core.MaskEastSide | core.MaskSSE | core.MaskWNW},
		},
	},
	ThreeWayRoad: {
		name:  "THREE_WAY_ROAD",
		edges: [4]core.Edge{gs, rd, rd, rd},
		features: []Feature{
			{Road, core.MaskE},
			{Road, core.MaskS},
			{Road, core.MaskW},
			{Grass, core.MaskNorthSide | core.MaskENE | core.MaskWNW},
			{Grass, core.MaskESE | core.MaskSSE},
			{Grass, core.MaskSSW | core.MaskWSW},
		},
	},
	FourWayRoad: {
		name:  "FOUR_WAY_ROAD",
		edges: [4]core.Edge{rd, rd, rd, rd},
		features: []Feature{
			{Road, core.MaskN},
			{Road, core.MaskE},
			{Road, core.MaskS},
			{Road, core.MaskW},
			{Grass, core.MaskNNE | core.MaskENE},
			{Grass, core.MaskESE | core.MaskSSE},
			{Grass, core.MaskSSW | core.MaskWSW},
			{Grass, core.MaskWNW | core.MaskNNW},
		},
	},
}

// Terrains lists every terrain in enumeration order
func Terrains() []Terrain {
	out := make([]Terrain, terrainCount)
	for i := range out {
		out[i] = Terrain(i)
	}
	return out
}

// Valid reports whether t names a catalog entry
func (t Terrain) Valid() bool {
	return t >= 0 && t < terrainCount
}

// String returns the catalog name of the terrain
func (t Terrain) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Terrain(%d)", int(t))
	}
	return catalog[t].name
}

// ParseTerrain looks a terrain up by its catalog name
func ParseTerrain(name string) (Terrain, error) {
	for i := range catalog {
		if catalog[i].name == name {
			return Terrain(i), nil
		}
	}
	return 0, fmt.Errorf("unknown terrain %q", name)
}

// Edge returns the canonical edge type on the given side
func (t Terrain) Edge(side core.Orient) core.Edge {
	return catalog[t].edges[side.Ticks()]
}

// RotatedEdge returns the edge type found on side once the tile is turned to o
func (t Terrain) RotatedEdge(o core.Orient, side core.Orient) core.Edge {
	return t.Edge(side.Rotate(-o.Ticks()))
}

// Features returns the tile's features in catalog order. The slice is shared; callers
// must not modify it.
func (t Terrain) Features() []Feature {
	return catalog[t].features
}

// Feature returns the feature at index i
func (t Terrain) Feature(i int) (Feature, bool) {
	fs := catalog[t].features
	if i < 0 || i >= len(fs) {
		return Feature{}, false
	}
	return fs[i], true
}

// FindFeature returns the index of the feature that reaches bit once the tile is turned
// to o, or -1 when no feature does.
func (t Terrain) FindFeature(o core.Orient, bit core.Mask) int {
	for i, f := range catalog[t].features {
		if f.Rotated(o)&bit != 0 {
			return i
		}
	}
	return -1
}

// Borders reports whether features i and j of the tile share a border along the tile
// perimeter. Farms use it to find the cities they supply.
func (t Terrain) Borders(i, j int) bool {
	fi, ok := t.Feature(i)
	if !ok {
		return false
	}
	fj, ok := t.Feature(j)
	if !ok {
		return false
	}
	return i != j && fi.Mask.Touches(fj.Mask)
}

// HasCity reports whether any feature of the tile is a city
func (t Terrain) HasCity() bool {
	for _, f := range catalog[t].features {
		if f.Type == City {
			return true
		}
	}
	return false
}

// Validate checks that every feature mask set partitions the tile boundary and agrees
// with the edge table. Claim propagation relies on both.
func Validate() error {
	for _, t := range Terrains() {
		spec := catalog[t]
		var seen core.Mask
		for i, f := range spec.features {
			if f.Type == Cloister {
				if f.Mask != 0 {
					return fmt.Errorf("%s feature %d: cloister must not reach an edge", t, i)
				}
				continue
			}
			if f.Mask == 0 {
				return fmt.Errorf("%s feature %d: empty mask", t, i)
			}
			if seen&f.Mask != 0 {
				return fmt.Errorf("%s feature %d: mask %s overlaps another feature", t, i, f.Mask)
			}
			seen |= f.Mask
		}
		if seen != core.MaskAll {
			return fmt.Errorf("%s: features leave %s uncovered", t, core.MaskAll&^seen)
		}

		for _, side := range core.Orients {
			if err := validateSide(t, side); err != nil {
				return err
			}
		}
	}

	for _, tc := range Distribution() {
		if tc.Tile.Shield && !tc.Tile.Terrain.HasCity() {
			return fmt.Errorf("%s: shield on a tile without a city", tc.Tile.Terrain)
		}
	}
	return nil
}

func validateSide(t Terrain, side core.Orient) error {
	edge := t.Edge(side)
	for _, bit := range core.SideMask(side).Bits() {
		f := t.Features()[t.FindFeature(core.North, bit)]
		want := edge
		// A road only owns the centre of its side; the halves belong to the fields.
		if edge == core.EdgeRoad && bit != core.SideMask(side)&(core.MaskN|core.MaskE|core.MaskS|core.MaskW) {
			want = core.EdgeGrass
		}
		if f.Type.Edge() != want {
			return fmt.Errorf("%s side %s: bit %s is %s, edge says %s", t, side, bit, f.Type, want)
		}
	}
	return nil
}
