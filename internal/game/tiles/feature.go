package tiles

import (
	"fmt"

	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
)

// FeatureType is the kind of region a feature covers
type FeatureType int

const (
	City FeatureType = iota
	Road
	Grass
	Cloister
)

// String returns the name of the feature type
func (t FeatureType) String() string {
	switch t {
	case City:
		return "CITY"
	case Road:
		return "ROAD"
	case Grass:
		return "GRASS"
	case Cloister:
		return "CLOISTER"
	default:
		return fmt.Sprintf("FeatureType(%d)", int(t))
	}
}

// Edge returns the edge type a feature of this kind presents along a full side
func (t FeatureType) Edge() core.Edge {
	switch t {
	case City:
		return core.EdgeCity
	case Road:
		return core.EdgeRoad
	default:
		return core.EdgeGrass
	}
}

// Feature is one region of a tile in its canonical orientation. Mask lists every
// boundary connection point the region reaches; a cloister reaches none.
type Feature struct {
	Type FeatureType
	Mask core.Mask
}

// Rotated returns the feature mask as it lies on a tile turned to o
func (f Feature) Rotated(o core.Orient) core.Mask {
	return core.RotateMask(f.Mask, o.Ticks())
}

func (f Feature) String() string {
	return f.Type.String() + f.Mask.String()
}
