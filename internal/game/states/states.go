package states

import (
	"fmt"
	"time"
)

// PreGameState represents the phase where players report ready
type PreGameState struct{}

func NewPreGameState() State {
	return &PreGameState{}
}

func (s *PreGameState) Phase() GamePhase {
	return PhasePreGame
}

func (s *PreGameState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Int("player_count", ctx.PlayerCount).Msg("Waiting for players to report ready")
	return nil
}

func (s *PreGameState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("player_count", ctx.PlayerCount).
		Msg("All players ready, game starting")
	return nil
}

func (s *PreGameState) Validate(ctx *GameContext) error {
	if ctx.PlayerCount < 1 {
		return fmt.Errorf("player count must be at least 1, got %d", ctx.PlayerCount)
	}
	return nil
}

// InPlayState represents active play
type InPlayState struct{}

func NewInPlayState() State {
	return &InPlayState{}
}

func (s *InPlayState) Phase() GamePhase {
	return PhaseInPlay
}

func (s *InPlayState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().Msg("Game in play")
	return nil
}

func (s *InPlayState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Dur("elapsed", ctx.Elapsed()).Msg("Leaving play")
	return nil
}

func (s *InPlayState) Validate(ctx *GameContext) error {
	if !ctx.AllReady() {
		return fmt.Errorf("cannot start game: %d of %d players ready", ctx.ReadyCount, ctx.PlayerCount)
	}
	return nil
}

// GameOverState represents the final state
type GameOverState struct{}

func NewGameOverState() State {
	return &GameOverState{}
}

func (s *GameOverState) Phase() GamePhase {
	return PhaseGameOver
}

func (s *GameOverState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Dur("game_duration", ctx.Elapsed()).
		Msg("Game over")
	return nil
}

func (s *GameOverState) Exit(ctx *GameContext) error {
	return fmt.Errorf("cannot exit game over state")
}

func (s *GameOverState) Validate(ctx *GameContext) error {
	return nil
}
