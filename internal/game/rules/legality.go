package rules

import (
	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
)

// LegalPlacements returns every empty location where the tile fits in at least one
// orientation, sorted by Y then X.
func LegalPlacements(b *board.Placements, tile tiles.GameTile) []core.Location {
	out := make([]core.Location, 0)
	for _, loc := range b.Frontier() {
		if len(LegalOrientations(b, tile, loc)) > 0 {
			out = append(out, loc)
		}
	}
	return out
}

// LegalOrientations returns the orientations in which the tile matches every occupied
// neighbour of loc, in N, E, S, W order. An occupied or isolated location has none.
func LegalOrientations(b *board.Placements, tile tiles.GameTile, loc core.Location) []core.Orient {
	if b.Has(loc) {
		return nil
	}
	dirs := b.OccupiedNeighbors(loc)
	if len(dirs) == 0 {
		return nil
	}

	out := make([]core.Orient, 0, 4)
	for _, o := range core.Orients {
		if fits(b, tile, loc, o, dirs) {
			out = append(out, o)
		}
	}
	return out
}

// HasLegalPlacement reports whether the tile can be placed anywhere on the board
func HasLegalPlacement(b *board.Placements, tile tiles.GameTile) bool {
	for _, loc := range b.Frontier() {
		if len(LegalOrientations(b, tile, loc)) > 0 {
			return true
		}
	}
	return false
}

// IsLegal reports whether the tile may be placed at loc turned to o
func IsLegal(b *board.Placements, tile tiles.GameTile, loc core.Location, o core.Orient) bool {
	if b.Has(loc) {
		return false
	}
	dirs := b.OccupiedNeighbors(loc)
	if len(dirs) == 0 {
		return false
	}
	return fits(b, tile, loc, o, dirs)
}

func fits(b *board.Placements, tile tiles.GameTile, loc core.Location, o core.Orient, dirs []core.Orient) bool {
	for _, dir := range dirs {
		neighbor := b.Neighbor(loc, dir)
		if tile.Terrain.RotatedEdge(o, dir) != neighbor.Edge(dir.Opposite()) {
			return false
		}
	}
	return true
}
