package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrient_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		from     Orient
		ticks    int
		expected Orient
	}{
		{"NoTurn", North, 0, North},
		{"Quarter", North, 1, East},
		{"Wrap", West, 1, North},
		{"Negative", North, -1, West},
		{"FullTurn", South, 4, South},
		{"LargeNegative", East, -6, West},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.Rotate(tt.ticks))
		})
	}
}

func TestOrient_Opposite(t *testing.T) {
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, West, East.Opposite())
	for _, o := range Orients {
		assert.Equal(t, o, o.Opposite().Opposite())
	}
}

func TestOrient_ParseString(t *testing.T) {
	for _, o := range Orients {
		parsed, err := ParseOrient(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}
	_, err := ParseOrient("UP")
	assert.Error(t, err)
	assert.Equal(t, "Orient(9)", Orient(9).String())
}

func TestTranslateMask_Cycles(t *testing.T) {
	tests := []struct {
		name     string
		mask     Mask
		ticks    int
		expected Mask
	}{
		{"CardinalQuarter", MaskN, 1, MaskE},
		{"CardinalWrap", MaskW, 1, MaskN},
		{"CardinalBack", MaskN, -1, MaskW},
		{"FirstDiagonalCycle", MaskNNE, 1, MaskESE},
		{"FirstDiagonalHalf", MaskNNE, 2, MaskSSW},
		{"SecondDiagonalCycle", MaskENE, 1, MaskSSE},
		{"SecondDiagonalWrap", MaskNNW, 1, MaskENE},
		{"MultiBitUnchanged", MaskN | MaskE, 1, MaskN | MaskE},
		{"ZeroUnchanged", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TranslateMask(tt.mask, tt.ticks))
		})
	}
}

func TestTranslateMask_FullTurnIsIdentity(t *testing.T) {
	for _, adj := range Adjacencies {
		assert.Equal(t, adj.Bit, TranslateMask(adj.Bit, 4))
		assert.Equal(t, adj.Bit, TranslateMask(TranslateMask(adj.Bit, 3), 1))
	}
}

func TestRotateMask(t *testing.T) {
	assert.Equal(t, MaskEastSide, RotateMask(MaskNorthSide, 1))
	assert.Equal(t, MaskSouthSide, RotateMask(MaskNorthSide, 2))
	assert.Equal(t, MaskWestSide, RotateMask(MaskNorthSide, -1))
	assert.Equal(t, MaskAll, RotateMask(MaskAll, 3))
	assert.Equal(t, MaskE|MaskW, RotateMask(MaskN|MaskS, 1))
}

func TestAdjacencies_ConsistentUnderRotation(t *testing.T) {
	for i, adj := range Adjacencies {
		require.Equal(t, Mask(1)<<i, adj.Bit)

		// The opposite bit must point straight back.
		back, ok := adj.Opposite.Adjacency()
		require.True(t, ok)
		assert.Equal(t, adj.Dir.Opposite(), back.Dir)
		assert.Equal(t, adj.Bit, back.Opposite)

		// Rotating a bit rotates its direction and its partner along with it.
		for ticks := 0; ticks < 4; ticks++ {
			rotated, ok := TranslateMask(adj.Bit, ticks).Adjacency()
			require.True(t, ok)
			assert.Equal(t, adj.Dir.Rotate(ticks), rotated.Dir)
			assert.Equal(t, TranslateMask(adj.Opposite, ticks), rotated.Opposite)
		}

		assert.True(t, SideMask(adj.Dir).Has(adj.Bit), "%s lies on side %s", adj.Bit, adj.Dir)
	}
}

func TestMask_Adjacency_RejectsMultiBit(t *testing.T) {
	_, ok := (MaskN | MaskS).Adjacency()
	assert.False(t, ok)
	_, ok = Mask(0).Adjacency()
	assert.False(t, ok)
}

func TestMask_Touches(t *testing.T) {
	city := MaskNorthSide
	assert.True(t, city.Touches(MaskENE|MaskWNW))
	assert.False(t, city.Touches(MaskESE|MaskSouthSide|MaskWSW))
	assert.False(t, Mask(0).Touches(MaskAll))
}

func TestMask_String(t *testing.T) {
	assert.Equal(t, "{N,NNE,NNW}", MaskNorthSide.String())
	assert.Equal(t, "{}", Mask(0).String())
	assert.Equal(t, "GRASS", EdgeGrass.String())
}
