package rules

import "github.com/rs/zerolog"

// WinConditionChecker determines the winners once a game is over
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// Winners returns the ids of every player holding the highest score, in player order.
// Ties share the win.
func (wc *WinConditionChecker) Winners(players []Player) []int {
	if len(players) == 0 {
		return nil
	}

	best := players[0].GetScore()
	for _, p := range players[1:] {
		if s := p.GetScore(); s > best {
			best = s
		}
	}

	winners := make([]int, 0, 1)
	for _, p := range players {
		if p.GetScore() == best {
			winners = append(winners, p.GetID())
		}
	}

	if len(winners) > 1 {
		wc.logger.Info().Ints("winner_player_ids", winners).Int("score", best).Msg("Shared win")
	} else {
		wc.logger.Info().Int("winner_player_id", winners[0]).Int("score", best).Msg("Winner determined")
	}
	return winners
}

// Player interface to avoid circular imports
type Player interface {
	GetID() int
	GetScore() int
}
