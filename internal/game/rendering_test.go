package game

import (
	"strings"
	"testing"

	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"github.com/mitchelldurbincs/carcassonne/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRenderBoard_Starter(t *testing.T) {
	b := testutil.StarterBoard(t)

	want := "       0\n" +
		"      C \n" +
		"   0 R R\n" +
		"      . \n" +
		"\nC=city R=road .=grass +=cloister A-F=piecens\n"
	assert.Equal(t, want, RenderBoard(b, false))
}

func TestRenderBoard_PiecensAndCloisters(t *testing.T) {
	b := testutil.StarterBoard(t)
	testutil.PlaceAll(t, b,
		testutil.At(tiles.CloisterTile, 0, 1, core.North),
		testutil.At(tiles.StraightRoad, 1, 0, core.East).WithPiecen(1, 2),
	)

	out := RenderBoard(b, false)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "       0  1", lines[0])
	assert.Equal(t, "   0 R RRBR", lines[2])
	assert.Equal(t, "   1 .+.   ", lines[5])

	colored := RenderBoard(b, true)
	assert.Contains(t, colored, ColorBlue+"B"+ColorReset)
}

func TestRenderBoard_Empty(t *testing.T) {
	assert.Empty(t, RenderBoard(board.NewPlacements(), false))
}
