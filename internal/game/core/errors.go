package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotAdjacent      = errors.New("locations are not adjacent")
	ErrWrongPhase       = errors.New("action not allowed in current phase")
	ErrAlreadyReady     = errors.New("player already reported ready")
	ErrInvalidPlayer    = errors.New("invalid player ID")
	ErrNotYourTurn      = errors.New("player does not hold the turn")
	ErrNoPiecensLeft    = errors.New("no piecens left to place")
	ErrWrongTile        = errors.New("tile is not the one being placed")
	ErrIllegalPlacement = errors.New("tile does not fit at that location")
	ErrInvalidFeature   = errors.New("tile has no such feature")
	ErrFeatureClaimed   = errors.New("feature already claimed")
	ErrOccupied         = errors.New("location already holds a tile")
	ErrGeometryMismatch = errors.New("neighbour lacks the mirrored feature")
	ErrGameNotFound     = errors.New("game not found")
	ErrTooManyGames     = errors.New("server at capacity")
)

// WrapPlayError adds the acting player and operation to a rule violation
func WrapPlayError(playerID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d %s: %w", playerID, operation, err)
}

// GameError carries structured context about a rejected or failed operation
type GameError struct {
	Turn      int
	PlayerID  int
	Operation string
	Err       error
}

// NewGameError creates a GameError. A negative playerID means no player was involved.
func NewGameError(turn, playerID int, operation string, err error) *GameError {
	return &GameError{
		Turn:      turn,
		PlayerID:  playerID,
		Operation: operation,
		Err:       err,
	}
}

func (e *GameError) Error() string {
	if e.PlayerID >= 0 {
		return fmt.Sprintf("turn %d: player %d %s: %v", e.Turn, e.PlayerID, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error {
	return e.Err
}
