package game

import (
	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/states"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
)

type Player struct {
	ID    int
	Ready bool
	Score int
}

func (p Player) GetID() int    { return p.ID }
func (p Player) GetScore() int { return p.Score }

// PlacedTile is a read-only copy of a placement for presentation
type PlacedTile struct {
	Tile     tiles.GameTile
	Location core.Location
	Orient   core.Orient
	Piecen   *board.Piecen
}

// GameState is a point-in-time copy of everything a client needs to draw the game
type GameState struct {
	GameID      string
	Phase       states.GamePhase
	Turn        int
	Holder      int
	CurrentTile *tiles.GameTile
	Remaining   int
	Players     []Player
	Placements  []PlacedTile
	Winners     []int
}
