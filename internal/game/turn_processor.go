package game

import (
	"fmt"

	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single play
type TurnProcessor struct {
	manager *Manager
	logger  zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(manager *Manager) *TurnProcessor {
	return &TurnProcessor{
		manager: manager,
		logger:  manager.logger,
	}
}

// Play lays the current tile for player. A rejected play leaves the game untouched.
func (m *Manager) Play(player int, req PlayRequest) (*TurnResult, error) {
	return NewTurnProcessor(m).ProcessPlay(player, req)
}

// ProcessPlay validates, commits, claims and scores one play, then hands the turn on
func (tp *TurnProcessor) ProcessPlay(player int, req PlayRequest) (*TurnResult, error) {
	m := tp.manager
	turnLogger := tp.logger.With().Int("turn", m.turn).Int("player_id", player).Logger()

	if err := tp.validatePlay(player, req); err != nil {
		turnLogger.Warn().
			Err(err).
			Str("tile", req.Tile.String()).
			Str("location", req.Location.String()).
			Str("orient", req.Orient.String()).
			Bool("piecen", req.Piecen).
			Int("feature", req.Feature).
			Msg("Play rejected")
		return nil, core.WrapPlayError(player, "play", err)
	}

	mark := m.stateMachine.HistoryLen()
	res := &TurnResult{GameID: m.gameID}

	p, err := tp.commit(player, req, res, turnLogger)
	if err != nil {
		return nil, core.NewGameError(m.turn, player, "commit", err)
	}

	scores, err := m.scorer.ScoreOnPlacement(m.board, p)
	if err != nil {
		turnLogger.Error().Err(err).Msg("Scoring failed")
		return nil, core.NewGameError(m.turn, player, "score", err)
	}
	m.applyScores(scores, res)

	m.turn++
	m.current = nil
	if err := tp.advance(player, res); err != nil {
		return nil, core.NewGameError(m.turn, player, "advance", err)
	}

	m.finishResult(res, mark)
	turnLogger.Debug().
		Int("scored_groups", len(res.Scores)).
		Int("remaining", res.Remaining).
		Str("phase", res.Phase.String()).
		Msg("Play processed")
	return res, nil
}

// validatePlay checks the rules in a fixed order and returns the first violation
func (tp *TurnProcessor) validatePlay(player int, req PlayRequest) error {
	m := tp.manager

	if phase := m.stateMachine.CurrentPhase(); !phase.CanReceivePlays() {
		return fmt.Errorf("%w: game is %s", core.ErrWrongPhase, phase)
	}
	if err := m.validatePlayer(player); err != nil {
		return err
	}
	if player != m.holder {
		return fmt.Errorf("%w: player %d holds the turn", core.ErrNotYourTurn, m.holder)
	}
	if m.current == nil {
		return fmt.Errorf("%w: no tile in hand", core.ErrWrongTile)
	}
	if req.Tile != *m.current {
		return fmt.Errorf("%w: holding %s", core.ErrWrongTile, *m.current)
	}
	if m.board.Has(req.Location) {
		return fmt.Errorf("%w: %s is occupied", core.ErrIllegalPlacement, req.Location)
	}
	if !m.isLegal(req) {
		return fmt.Errorf("%w: %s does not fit at %s facing %s", core.ErrIllegalPlacement, req.Tile, req.Location, req.Orient)
	}

	if !req.Piecen {
		return nil
	}
	if req.Feature < 0 || req.Feature >= len(req.Tile.Terrain.Features()) {
		return fmt.Errorf("%w: %d on %s", core.ErrInvalidFeature, req.Feature, req.Tile)
	}
	if m.PiecensAvailable(player) <= 0 {
		return fmt.Errorf("%w: %d in play", core.ErrNoPiecensLeft, m.PiecensInPlay(player))
	}
	claimable, err := m.claims.ClaimablePiecenFeatures(m.board, board.NewPlacement(req.Tile, req.Location, req.Orient))
	if err != nil {
		return err
	}
	for _, f := range claimable {
		if f == req.Feature {
			return nil
		}
	}
	return fmt.Errorf("%w: feature %d at %s", core.ErrFeatureClaimed, req.Feature, req.Location)
}

// commit fixes the tile to the board and propagates claim groups
func (tp *TurnProcessor) commit(player int, req PlayRequest, res *TurnResult, turnLogger zerolog.Logger) (*board.Placement, error) {
	m := tp.manager

	p := board.NewPlacement(req.Tile, req.Location, req.Orient)
	if req.Piecen {
		p.Piecen = board.NewPiecen(player, req.Location, req.Feature)
	}
	if err := m.board.Add(p); err != nil {
		return nil, err
	}

	complete, err := m.claims.AssignClaimGroups(m.board, p)
	if err != nil {
		return nil, err
	}

	res.Placement = p.Clone()
	if p.Piecen != nil {
		pc := *p.Piecen
		res.AddedPiecen = &pc
	}

	evt := turnLogger.Debug().
		Str("tile", req.Tile.String()).
		Str("location", req.Location.String()).
		Str("orient", req.Orient.String())
	if p.Piecen != nil {
		evt = evt.Int("feature", p.Piecen.Feature).Int("group", p.Piecen.Group).Bool("closed", complete)
	}
	evt.Msg("Tile placed")
	return p, nil
}

// advance ends the game when the bag is empty, otherwise starts the next player's turn
func (tp *TurnProcessor) advance(player int, res *TurnResult) error {
	m := tp.manager
	if m.bag.Len() == 0 {
		return m.endGame(res, "tile bag empty")
	}
	return m.startTurn((player+1)%len(m.players), res)
}

func (m *Manager) isLegal(req PlayRequest) bool {
	for _, o := range m.LegalOrientations(req.Location) {
		if o == req.Orient {
			return true
		}
	}
	return false
}
