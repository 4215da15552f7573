package game

import (
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"golang.org/x/exp/rand"
)

// TileBag holds the undrawn tiles in random order
type TileBag struct {
	tiles []tiles.GameTile
	rng   *rand.Rand
}

// NewTileBag copies contents into a bag and shuffles it
func NewTileBag(contents []tiles.GameTile, rng *rand.Rand) *TileBag {
	b := &TileBag{
		tiles: make([]tiles.GameTile, len(contents)),
		rng:   rng,
	}
	copy(b.tiles, contents)
	b.rng.Shuffle(len(b.tiles), func(i, j int) {
		b.tiles[i], b.tiles[j] = b.tiles[j], b.tiles[i]
	})
	return b
}

// Len returns the number of tiles left
func (b *TileBag) Len() int {
	return len(b.tiles)
}

// Draw takes the next tile, false when the bag is empty
func (b *TileBag) Draw() (tiles.GameTile, bool) {
	if len(b.tiles) == 0 {
		return tiles.GameTile{}, false
	}
	last := len(b.tiles) - 1
	t := b.tiles[last]
	b.tiles = b.tiles[:last]
	return t, true
}

// Remove takes one copy of t out of the bag, reporting whether one was present
func (b *TileBag) Remove(t tiles.GameTile) bool {
	for i, candidate := range b.tiles {
		if candidate == t {
			b.tiles = append(b.tiles[:i], b.tiles[i+1:]...)
			return true
		}
	}
	return false
}

// Return puts tiles back at random positions
func (b *TileBag) Return(ts ...tiles.GameTile) {
	for _, t := range ts {
		i := b.rng.Intn(len(b.tiles) + 1)
		b.tiles = append(b.tiles, tiles.GameTile{})
		copy(b.tiles[i+1:], b.tiles[i:])
		b.tiles[i] = t
	}
}

// Counts returns how many of each tile remain
func (b *TileBag) Counts() map[tiles.GameTile]int {
	out := make(map[tiles.GameTile]int)
	for _, t := range b.tiles {
		out[t]++
	}
	return out
}
