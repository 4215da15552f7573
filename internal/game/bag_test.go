package game

import (
	"testing"

	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"github.com/mitchelldurbincs/carcassonne/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileBag_DrawsEverything(t *testing.T) {
	contents := tiles.FullSet()
	original := make([]tiles.GameTile, len(contents))
	copy(original, contents)

	bag := NewTileBag(contents, testutil.NewTestRNG(3))
	assert.Equal(t, original, contents, "shuffling must not touch the caller's slice")
	require.Equal(t, len(contents), bag.Len())

	drawn := make(map[tiles.GameTile]int)
	for {
		tile, ok := bag.Draw()
		if !ok {
			break
		}
		drawn[tile]++
	}
	assert.Equal(t, 0, bag.Len())

	want := make(map[tiles.GameTile]int)
	for _, tile := range contents {
		want[tile]++
	}
	assert.Equal(t, want, drawn)
}

func TestTileBag_SameSeedSameOrder(t *testing.T) {
	a := NewTileBag(tiles.FullSet(), testutil.NewTestRNG(11))
	b := NewTileBag(tiles.FullSet(), testutil.NewTestRNG(11))
	for a.Len() > 0 {
		ta, _ := a.Draw()
		tb, _ := b.Draw()
		require.Equal(t, ta, tb)
	}
}

func TestTileBag_RemoveAndReturn(t *testing.T) {
	road := tiles.NewGameTile(tiles.StraightRoad, false)
	city := tiles.NewGameTile(tiles.CityOne, false)
	bag := NewTileBag([]tiles.GameTile{road, road, city}, testutil.NewTestRNG(5))

	assert.True(t, bag.Remove(city))
	assert.False(t, bag.Remove(city))
	assert.Equal(t, map[tiles.GameTile]int{road: 2}, bag.Counts())

	bag.Return(city, city)
	assert.Equal(t, 4, bag.Len())
	assert.Equal(t, map[tiles.GameTile]int{road: 2, city: 2}, bag.Counts())
}

func TestTileBag_EmptyDraw(t *testing.T) {
	bag := NewTileBag(nil, testutil.NewTestRNG(1))
	_, ok := bag.Draw()
	assert.False(t, ok)

	bag.Return(tiles.StarterTile)
	tile, ok := bag.Draw()
	assert.True(t, ok)
	assert.Equal(t, tiles.StarterTile, tile)
}
