package core

import (
	"fmt"
	"math/bits"
	"strings"
)

// Edge is the terrain type found along one side of a tile
type Edge int

const (
	EdgeCity Edge = iota
	EdgeRoad
	EdgeGrass
)

// String returns the name of the edge type
func (e Edge) String() string {
	switch e {
	case EdgeCity:
		return "CITY"
	case EdgeRoad:
		return "ROAD"
	case EdgeGrass:
		return "GRASS"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// Mask is a 12-bit set of connection points around the tile boundary.
// Cardinal bits mark the centre of a side, intercardinal bits mark the halves of a side
// (NNE is the east half of the north side).
type Mask uint16

const (
	MaskN Mask = 1 << iota
	MaskE
	MaskS
	MaskW
	MaskNNE
	MaskENE
	MaskESE
	MaskSSE
	MaskSSW
	MaskWSW
	MaskWNW
	MaskNNW
)

const (
	// MaskAll covers every connection point of a tile
	MaskAll Mask = 1<<12 - 1

	MaskNorthSide = MaskNNW | MaskN | MaskNNE
	MaskEastSide  = MaskENE | MaskE | MaskESE
	MaskSouthSide = MaskSSE | MaskS | MaskSSW
	MaskWestSide  = MaskWSW | MaskW | MaskWNW
)

var maskNames = [12]string{"N", "E", "S", "W", "NNE", "ENE", "ESE", "SSE", "SSW", "WSW", "WNW", "NNW"}

// rotationCycles are the three disjoint clockwise 4-cycles a single bit moves through
var rotationCycles = [3][4]Mask{
	{MaskN, MaskE, MaskS, MaskW},
	{MaskNNE, MaskESE, MaskSSW, MaskWNW},
	{MaskENE, MaskSSE, MaskWSW, MaskNNW},
}

// Adjacency describes where a connection point leads: the direction of the neighbouring
// tile and the bit on that tile that faces this one.
type Adjacency struct {
	Bit      Mask
	Dir      Orient
	Opposite Mask
}

// Adjacencies maps every connection point to its neighbour, indexed by bit position
var Adjacencies = [12]Adjacency{
	{Bit: MaskN, Dir: North, Opposite: MaskS},
	{Bit: MaskE, Dir: East, Opposite: MaskW},
	{Bit: MaskS, Dir: South, Opposite: MaskN},
	{Bit: MaskW, Dir: West, Opposite: MaskE},
	{Bit: MaskNNE, Dir: North, Opposite: MaskSSE},
	{Bit: MaskENE, Dir: East, Opposite: MaskWNW},
	{Bit: MaskESE, Dir: East, Opposite: MaskWSW},
	{Bit: MaskSSE, Dir: South, Opposite: MaskNNE},
	{Bit: MaskSSW, Dir: South, Opposite: MaskNNW},
	{Bit: MaskWSW, Dir: West, Opposite: MaskESE},
	{Bit: MaskWNW, Dir: West, Opposite: MaskENE},
	{Bit: MaskNNW, Dir: North, Opposite: MaskSSW},
}

// perimeter lists the connection points clockwise around the tile starting at NNW
var perimeter = [12]Mask{
	MaskNNW, MaskN, MaskNNE,
	MaskENE, MaskE, MaskESE,
	MaskSSE, MaskS, MaskSSW,
	MaskWSW, MaskW, MaskWNW,
}

// SideMask returns every connection point along the given side
func SideMask(side Orient) Mask {
	switch side.normalize() {
	case North:
		return MaskNorthSide
	case East:
		return MaskEastSide
	case South:
		return MaskSouthSide
	default:
		return MaskWestSide
	}
}

// TranslateMask rotates a single connection point by ticks clockwise quarter turns.
// A mask that is not one of the twelve single bits belongs to no cycle and is
// returned unchanged.
func TranslateMask(mask Mask, ticks int) Mask {
	shift := ((ticks % 4) + 4) % 4
	for _, cycle := range rotationCycles {
		for i, bit := range cycle {
			if bit == mask {
				return cycle[(i+shift)%4]
			}
		}
	}
	return mask
}

// RotateMask rotates every set bit of a multi-bit mask by ticks clockwise quarter turns
func RotateMask(mask Mask, ticks int) Mask {
	var out Mask
	for _, bit := range mask.Bits() {
		out |= TranslateMask(bit, ticks)
	}
	return out
}

// Bits splits the mask into its single-bit members in bit order
func (m Mask) Bits() []Mask {
	out := make([]Mask, 0, bits.OnesCount16(uint16(m&MaskAll)))
	for i := 0; i < 12; i++ {
		if bit := Mask(1) << i; m&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}

// Has reports whether every bit of other is set in m
func (m Mask) Has(other Mask) bool {
	return m&other == other
}

// Adjacency returns the table entry for a single-bit mask
func (m Mask) Adjacency() (Adjacency, bool) {
	if bits.OnesCount16(uint16(m)) != 1 || m&MaskAll == 0 {
		return Adjacency{}, false
	}
	return Adjacencies[bits.TrailingZeros16(uint16(m))], true
}

// Touches reports whether any bit of m sits next to any bit of other when walking the
// tile perimeter. Features of one tile that touch this way share a border.
func (m Mask) Touches(other Mask) bool {
	for i, bit := range perimeter {
		if m&bit == 0 {
			continue
		}
		prev := perimeter[(i+11)%12]
		next := perimeter[(i+1)%12]
		if other&(prev|next) != 0 {
			return true
		}
	}
	return false
}

// String lists the named bits of the mask
func (m Mask) String() string {
	if m == 0 {
		return "{}"
	}
	names := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		if m&(1<<i) != 0 {
			names = append(names, maskNames[i])
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
