package game

import (
	"github.com/mitchelldurbincs/carcassonne/internal/config"
	"github.com/mitchelldurbincs/carcassonne/internal/game/rules"
)

// NoHolder marks that no player holds the turn
const NoHolder = -1

// Game rule defaults, read from configuration
func DefaultPlayers() int {
	return config.Get().Game.Players
}

func DefaultPiecensPerPlayer() int {
	return config.Get().Game.PiecensPerPlayer
}

func DefaultScoreTable() rules.ScoreTable {
	return config.Get().Game.ScoreTable()
}
