package game

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/rules"
	"github.com/mitchelldurbincs/carcassonne/internal/game/states"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Manager runs one game from readiness to final scoring. It is not safe for
// concurrent use; the session layer serializes calls.
type Manager struct {
	gameID       string
	config       GameConfig
	logger       zerolog.Logger
	rng          *rand.Rand
	stateMachine *states.StateMachine

	board        *board.Placements
	bag          *TileBag
	claims       *rules.ClaimEngine
	scorer       *rules.Scorer
	winCondition *rules.WinConditionChecker

	players []Player
	holder  int
	current *tiles.GameTile
	turn    int
}

// NewManager creates a game waiting for its players to report ready
func NewManager(cfg GameConfig) (*Manager, error) {
	return NewManagerInitializer(cfg).Initialize()
}

// PlayerReady records that a player is ready. Once every player is, the bag is filled,
// the starter tile is laid and the first turn begins.
func (m *Manager) PlayerReady(player int) (*TurnResult, error) {
	if err := m.validatePlayer(player); err != nil {
		return nil, core.WrapPlayError(player, "ready", err)
	}
	if phase := m.stateMachine.CurrentPhase(); !phase.CanReportReady() {
		return nil, core.WrapPlayError(player, "ready", fmt.Errorf("%w: game is %s", core.ErrWrongPhase, phase))
	}
	if m.players[player].Ready {
		return nil, core.WrapPlayError(player, "ready", core.ErrAlreadyReady)
	}

	mark := m.stateMachine.HistoryLen()
	res := &TurnResult{GameID: m.gameID}

	m.players[player].Ready = true
	gameContext := m.stateMachine.Context()
	gameContext.ReadyCount++
	m.logger.Info().Int("player_id", player).Int("ready", gameContext.ReadyCount).Msg("Player ready")

	if gameContext.AllReady() {
		if err := m.start(res); err != nil {
			return nil, core.NewGameError(m.turn, player, "start game", err)
		}
	}

	m.finishResult(res, mark)
	return res, nil
}

// start lays the starter tile and hands out the first tile
func (m *Manager) start(res *TurnResult) error {
	starter := *m.config.Starter
	m.bag = NewTileBag(m.config.Tiles, m.rng)
	m.bag.Remove(starter)

	p := board.NewPlacement(starter, core.Origin, core.North)
	if err := m.board.Add(p); err != nil {
		return err
	}
	res.Placement = p.Clone()

	for i := range m.players {
		m.players[i].Score = 0
	}

	if err := m.stateMachine.TransitionTo(states.PhaseInPlay, "all players ready"); err != nil {
		return err
	}

	return m.startTurn(m.rng.Intn(len(m.players)), res)
}

// startTurn draws until a tile fits somewhere. Tiles that fit nowhere go back into the
// bag afterwards. When nothing fits the game ends without a new holder.
func (m *Manager) startTurn(holder int, res *TurnResult) error {
	var aside []tiles.GameTile
	var drawn tiles.GameTile
	found := false
	for {
		t, ok := m.bag.Draw()
		if !ok {
			break
		}
		if rules.HasLegalPlacement(m.board, t) {
			drawn = t
			found = true
			break
		}
		m.logger.Debug().Str("tile", t.String()).Msg("Tile fits nowhere, setting aside")
		aside = append(aside, t)
	}
	m.bag.Return(aside...)
	res.Skipped = append(res.Skipped, aside...)

	if !found {
		return m.endGame(res, "no playable tile left")
	}

	m.holder = holder
	m.current = &drawn
	res.TurnStarted = true
	m.logger.Debug().
		Int("turn", m.turn).
		Int("holder", holder).
		Str("tile", drawn.String()).
		Int("remaining", m.bag.Len()).
		Msg("Turn started")
	return nil
}

// endGame enters PhaseGameOver and applies the final sweep
func (m *Manager) endGame(res *TurnResult, reason string) error {
	if err := m.stateMachine.TransitionTo(states.PhaseGameOver, reason); err != nil {
		return err
	}
	m.holder = NoHolder
	m.current = nil

	scores, err := m.scorer.ScoreAtGameEnd(m.board)
	if err != nil {
		return err
	}
	m.applyScores(scores, res)

	winners := m.Winners()
	m.stateMachine.Context().Winners = winners
	res.Winners = winners

	m.logger.Info().
		Str("reason", reason).
		Ints("scores", m.Scores()).
		Ints("winners", winners).
		Msg("Game finished")
	return nil
}

func (m *Manager) finishResult(res *TurnResult, mark int) {
	res.Turn = m.turn
	res.Phase = m.stateMachine.CurrentPhase()
	res.Holder = m.holder
	if m.current != nil {
		t := *m.current
		res.CurrentTile = &t
	}
	res.Remaining = m.Remaining()
	res.Totals = m.Scores()
	res.Transitions = m.stateMachine.HistorySince(mark)
}

func (m *Manager) validatePlayer(player int) error {
	if player < 0 || player >= len(m.players) {
		return fmt.Errorf("%w: %d", core.ErrInvalidPlayer, player)
	}
	return nil
}

// Winners returns the players holding the highest score
func (m *Manager) Winners() []int {
	ps := make([]rules.Player, len(m.players))
	for i, p := range m.players {
		ps[i] = p
	}
	return m.winCondition.Winners(ps)
}

// Public accessors
func (m *Manager) GameID() string { return m.gameID }
func (m *Manager) Phase() states.GamePhase { return m.stateMachine.CurrentPhase() }
func (m *Manager) Holder() int { return m.holder }
func (m *Manager) Turn() int { return m.turn }
func (m *Manager) History() []states.Transition { return m.stateMachine.History() }
func (m *Manager) PlayerCount() int { return len(m.players) }

// Board returns a copy of the board. Changes to it never reach the game.
func (m *Manager) Board() *board.Placements { return m.board.Clone() }

// Elapsed returns how long the game has been in play
func (m *Manager) Elapsed() time.Duration {
	return m.stateMachine.Context().Elapsed()
}

// CurrentTile returns the tile the holder must place
func (m *Manager) CurrentTile() (tiles.GameTile, bool) {
	if m.current == nil {
		return tiles.GameTile{}, false
	}
	return *m.current, true
}

// Remaining returns the number of tiles left in the bag
func (m *Manager) Remaining() int {
	if m.bag == nil {
		return 0
	}
	return m.bag.Len()
}

// Scores returns every player's total, indexed by player
func (m *Manager) Scores() []int {
	out := make([]int, len(m.players))
	for i, p := range m.players {
		out[i] = p.Score
	}
	return out
}

// Players returns a copy of the player records
func (m *Manager) Players() []Player {
	out := make([]Player, len(m.players))
	copy(out, m.players)
	return out
}

// Piecens returns copies of every piecen on the board
func (m *Manager) Piecens() []board.Piecen {
	on := m.board.Piecens()
	out := make([]board.Piecen, len(on))
	for i, pc := range on {
		out[i] = *pc
	}
	return out
}

// PiecensInPlay counts the piecens a player has on the board
func (m *Manager) PiecensInPlay(player int) int {
	return m.board.PiecensOf(player)
}

// PiecensAvailable counts the piecens a player can still place
func (m *Manager) PiecensAvailable(player int) int {
	return m.config.PiecensPerPlayer - m.board.PiecensOf(player)
}

// LegalPlacements returns where the current tile fits, empty when there is none
func (m *Manager) LegalPlacements() []core.Location {
	if m.current == nil {
		return nil
	}
	return rules.LegalPlacements(m.board, *m.current)
}

// LegalOrientations returns how the current tile fits at loc
func (m *Manager) LegalOrientations(loc core.Location) []core.Orient {
	if m.current == nil {
		return nil
	}
	return rules.LegalOrientations(m.board, *m.current, loc)
}

// ClaimableFeatures returns the features of the current tile, laid at loc turned to o,
// on which a piecen may stand
func (m *Manager) ClaimableFeatures(loc core.Location, o core.Orient) ([]int, error) {
	if m.current == nil {
		return nil, core.ErrWrongPhase
	}
	return m.claims.ClaimablePiecenFeatures(m.board, board.NewPlacement(*m.current, loc, o))
}

// Snapshot returns a copy of the game for presentation
func (m *Manager) Snapshot() GameState {
	all := m.board.All()
	placed := make([]PlacedTile, len(all))
	for i, p := range all {
		placed[i] = PlacedTile{Tile: p.Tile, Location: p.Location, Orient: p.Orient}
		if p.Piecen != nil {
			pc := *p.Piecen
			placed[i].Piecen = &pc
		}
	}

	gs := GameState{
		GameID:     m.gameID,
		Phase:      m.Phase(),
		Turn:       m.turn,
		Holder:     m.holder,
		Remaining:  m.Remaining(),
		Players:    m.Players(),
		Placements: placed,
	}
	if m.current != nil {
		t := *m.current
		gs.CurrentTile = &t
	}
	if gs.Phase == states.PhaseGameOver {
		gs.Winners = m.Winners()
	}
	return gs
}
