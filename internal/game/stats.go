package game

import (
	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/rules"
)

// This file contains score application for the game manager.

// applyScores credits every scorer of every group, one event per player per group,
// and lifts the piecens that stood in scored groups.
func (m *Manager) applyScores(scores []rules.FeatureScore, res *TurnResult) {
	for _, fs := range scores {
		res.Scores = append(res.Scores, fs)

		for _, player := range fs.Scorers {
			if player < 0 || player >= len(m.players) {
				m.logger.Error().Int("player_id", player).Msg("Score for unknown player ignored")
				continue
			}
			m.players[player].Score += fs.Score
			res.Events = append(res.Events, ScoreEvent{
				Player:   player,
				Points:   fs.Score,
				Type:     fs.Type,
				Group:    fs.Group,
				Complete: fs.Complete,
				Piecen:   firstPiecenOf(fs.Piecens, player),
			})
			m.logger.Info().
				Int("player_id", player).
				Int("points", fs.Score).
				Str("feature", fs.Type.String()).
				Int("group", fs.Group).
				Bool("complete", fs.Complete).
				Int("total", m.players[player].Score).
				Msg("Feature scored")
		}

		for _, pc := range fs.Piecens {
			if removed := m.board.RemovePiecen(pc.Location); removed != nil {
				res.RemovedPiecens = append(res.RemovedPiecens, *removed)
			}
		}
	}
}

func firstPiecenOf(piecens []board.Piecen, player int) board.Piecen {
	for _, pc := range piecens {
		if pc.Owner == player {
			return pc
		}
	}
	return board.Piecen{Owner: player}
}
