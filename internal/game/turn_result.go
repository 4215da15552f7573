package game

import (
	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/rules"
	"github.com/mitchelldurbincs/carcassonne/internal/game/states"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
)

// PlayRequest is the holder's move: where and how to lay the current tile, and
// optionally which feature to stand a piecen on.
type PlayRequest struct {
	Tile     tiles.GameTile
	Location core.Location
	Orient   core.Orient
	Piecen   bool
	Feature  int
}

// ScoreEvent credits one player for one scored group
type ScoreEvent struct {
	Player   int
	Points   int
	Type     tiles.FeatureType
	Group    int
	Complete bool
	Piecen   board.Piecen // one of the player's piecens in the group
}

// TurnResult describes everything a call changed. Callers forward it to whoever
// presents or journals the game.
type TurnResult struct {
	GameID string
	Turn   int

	Placement      *board.Placement
	AddedPiecen    *board.Piecen
	RemovedPiecens []board.Piecen
	Scores         []rules.FeatureScore
	Events         []ScoreEvent

	// TurnStarted is set when a new tile was handed to Holder
	TurnStarted bool
	Holder      int
	CurrentTile *tiles.GameTile
	Remaining   int
	Skipped     []tiles.GameTile

	Phase       states.GamePhase
	Transitions []states.Transition
	Totals      []int
	Winners     []int
}

// GameOver reports whether the call ended the game
func (r *TurnResult) GameOver() bool {
	return r.Phase == states.PhaseGameOver
}
