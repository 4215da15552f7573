package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// PlayerCount is the number of seats in the game
	PlayerCount int

	// ReadyCount is the number of players that reported ready
	ReadyCount int

	// StartTime is when the game started (PhaseInPlay entered)
	StartTime time.Time

	// EndTime is when PhaseGameOver was entered
	EndTime time.Time

	// Winners holds the player ids sharing the top score once the game is over
	Winners []int
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, playerCount int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:      gameID,
		PlayerCount: playerCount,
		Logger:      logger.With().Str("game_id", gameID).Logger(),
	}
}

// AllReady returns true once every seat has reported ready
func (gc *GameContext) AllReady() bool {
	return gc.PlayerCount >= 1 && gc.ReadyCount == gc.PlayerCount
}

// Elapsed returns the time spent in play, up to the end of the game if it ended
func (gc *GameContext) Elapsed() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
