package events

import (
	"time"

	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeTilePlaced      = "tile.placed"
	TypeFeatureScored   = "feature.scored"
	TypePiecenReturned  = "piecen.returned"
	TypeStateTransition = "state.transition"
)

// AllTypes lists every event type published by the session layer
var AllTypes = []string{
	TypeGameStarted,
	TypeGameEnded,
	TypeTurnStarted,
	TypeTilePlaced,
	TypeFeatureScored,
	TypePiecenReturned,
	TypeStateTransition,
}

// GameStartedEvent is published when the starter tile is laid
type GameStartedEvent struct {
	Header
	NumPlayers int `json:"num_players"`
	TilesInBag int `json:"tiles_in_bag"`
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, numPlayers, tilesInBag int) *GameStartedEvent {
	return &GameStartedEvent{
		Header:     newHeader(TypeGameStarted, gameID),
		NumPlayers: numPlayers,
		TilesInBag: tilesInBag,
	}
}

// GameEndedEvent is published once the final scores are in
type GameEndedEvent struct {
	Header
	Winners   []int         `json:"winners"`
	Scores    []int         `json:"scores"`
	FinalTurn int           `json:"final_turn"`
	Duration  time.Duration `json:"duration"`
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winners, scores []int, finalTurn int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		Header:    newHeader(TypeGameEnded, gameID),
		Winners:   winners,
		Scores:    scores,
		FinalTurn: finalTurn,
		Duration:  duration,
	}
}

// TurnStartedEvent is published when a tile is handed to a player
type TurnStartedEvent struct {
	Header
	TurnNumber int    `json:"turn"`
	Holder     int    `json:"holder"`
	Tile       string `json:"tile"`
	Remaining  int    `json:"remaining"`
	Skipped    int    `json:"skipped"`
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn, holder int, tile string, remaining, skipped int) *TurnStartedEvent {
	return &TurnStartedEvent{
		Header:     newHeader(TypeTurnStarted, gameID),
		TurnNumber: turn,
		Holder:     holder,
		Tile:       tile,
		Remaining:  remaining,
		Skipped:    skipped,
	}
}

// TilePlacedEvent is published for every committed tile, the starter included.
// PiecenFeature is -1 when no piecen was placed.
type TilePlacedEvent struct {
	Header
	TurnNumber    int           `json:"turn"`
	PlayerID      int           `json:"player_id"`
	Tile          string        `json:"tile"`
	Location      core.Location `json:"location"`
	Orient        string        `json:"orient"`
	PiecenFeature int           `json:"piecen_feature"`
	PiecenGroup   int           `json:"piecen_group,omitempty"`
}

// NewTilePlacedEvent creates a new TilePlacedEvent
func NewTilePlacedEvent(gameID string, turn, playerID int, tile string, loc core.Location, orient string) *TilePlacedEvent {
	return &TilePlacedEvent{
		Header:        newHeader(TypeTilePlaced, gameID),
		TurnNumber:    turn,
		PlayerID:      playerID,
		Tile:          tile,
		Location:      loc,
		Orient:        orient,
		PiecenFeature: -1,
	}
}

// WithPiecen records the piecen placed with the tile
func (e *TilePlacedEvent) WithPiecen(feature, group int) *TilePlacedEvent {
	e.PiecenFeature = feature
	e.PiecenGroup = group
	return e
}

// FeatureScoredEvent credits one player for one scored group
type FeatureScoredEvent struct {
	Header
	PlayerID int    `json:"player_id"`
	Points   int    `json:"points"`
	Feature  string `json:"feature"`
	Group    int    `json:"group"`
	Complete bool   `json:"complete"`
	Total    int    `json:"total"`
}

// NewFeatureScoredEvent creates a new FeatureScoredEvent
func NewFeatureScoredEvent(gameID string, playerID, points int, feature string, group int, complete bool, total int) *FeatureScoredEvent {
	return &FeatureScoredEvent{
		Header:   newHeader(TypeFeatureScored, gameID),
		PlayerID: playerID,
		Points:   points,
		Feature:  feature,
		Group:    group,
		Complete: complete,
		Total:    total,
	}
}

// PiecenReturnedEvent is published when a scored piecen goes back to its owner
type PiecenReturnedEvent struct {
	Header
	PlayerID int           `json:"player_id"`
	Location core.Location `json:"location"`
}

// NewPiecenReturnedEvent creates a new PiecenReturnedEvent
func NewPiecenReturnedEvent(gameID string, playerID int, loc core.Location) *PiecenReturnedEvent {
	return &PiecenReturnedEvent{
		Header:   newHeader(TypePiecenReturned, gameID),
		PlayerID: playerID,
		Location: loc,
	}
}

// StateTransitionEvent is published when the game moves between phases
type StateTransitionEvent struct {
	Header
	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`
	Reason    string `json:"reason"`
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromState, toState, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		Header:    newHeader(TypeStateTransition, gameID),
		FromState: fromState,
		ToState:   toState,
		Reason:    reason,
	}
}
