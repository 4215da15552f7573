package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhasePreGame - Waiting for every player to report ready
	PhasePreGame GamePhase = iota

	// PhaseInPlay - Tiles are being drawn and placed
	PhaseInPlay

	// PhaseGameOver - Final scores applied, nothing more can happen
	PhaseGameOver
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhasePreGame:
		return "PreGame"
	case PhaseInPlay:
		return "InPlay"
	case PhaseGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseGameOver
}

// CanReceivePlays returns true if tiles may be placed in this phase
func (p GamePhase) CanReceivePlays() bool {
	return p == PhaseInPlay
}

// CanReportReady returns true if players may still report ready
func (p GamePhase) CanReportReady() bool {
	return p == PhasePreGame
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhasePreGame:
		return []GamePhase{PhaseInPlay}
	case PhaseInPlay:
		return []GamePhase{PhaseGameOver}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
