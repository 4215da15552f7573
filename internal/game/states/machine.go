package states

import (
	"fmt"
	"sync"
	"time"
)

// State holds the hooks run when the machine enters or leaves one phase
type State interface {
	Phase() GamePhase
	Enter(ctx *GameContext) error
	Exit(ctx *GameContext) error
	// Validate reports whether the context allows entering the phase
	Validate(ctx *GameContext) error
}

// Transition records one completed phase change
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine moves one game through PreGame, InPlay and GameOver. Completed changes
// are appended to the history; callers take HistoryLen before an operation and read
// HistorySince afterwards to learn what it changed.
type StateMachine struct {
	mu      sync.RWMutex
	phase   GamePhase
	hooks   map[GamePhase]State
	ctx     *GameContext
	history []Transition
}

// NewStateMachine creates a machine in PhasePreGame. States passed in replace the
// built-in hooks for their phase.
func NewStateMachine(ctx *GameContext, overrides ...State) *StateMachine {
	sm := &StateMachine{
		phase: PhasePreGame,
		hooks: make(map[GamePhase]State, 3),
		ctx:   ctx,
	}
	builtin := []State{NewPreGameState(), NewInPlayState(), NewGameOverState()}
	for _, s := range append(builtin, overrides...) {
		sm.hooks[s.Phase()] = s
	}
	return sm
}

// CurrentPhase returns the phase the game is in
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// TransitionTo moves the game to target. The phase is unchanged when the move is not
// allowed, the target rejects the context or its Enter hook fails. A failing Exit hook
// is logged and the move goes ahead.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	from := sm.phase
	if !from.CanTransitionTo(target) {
		return fmt.Errorf("invalid transition from %s to %s", from, target)
	}
	next, ok := sm.hooks[target]
	if !ok {
		return fmt.Errorf("no state implementation for phase %s", target)
	}
	if err := next.Validate(sm.ctx); err != nil {
		return fmt.Errorf("cannot enter %s: %w", target, err)
	}

	if cur, ok := sm.hooks[from]; ok {
		if err := cur.Exit(sm.ctx); err != nil {
			sm.ctx.Logger.Warn().
				Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", target.String()).
				Msg("Exit hook failed")
		}
	}

	sm.phase = target
	if err := next.Enter(sm.ctx); err != nil {
		sm.phase = from
		return fmt.Errorf("failed to enter state %s: %w", target, err)
	}

	sm.history = append(sm.history, Transition{From: from, To: target, Timestamp: time.Now(), Reason: reason})
	sm.ctx.Logger.Info().
		Str("from_phase", from.String()).
		Str("to_phase", target.String()).
		Str("reason", reason).
		Msg("Phase changed")
	return nil
}

// History returns a copy of every recorded transition
func (sm *StateMachine) History() []Transition {
	return sm.HistorySince(0)
}

// HistoryLen returns the number of recorded transitions
func (sm *StateMachine) HistoryLen() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.history)
}

// HistorySince returns the transitions recorded after the first n, nil if none
func (sm *StateMachine) HistorySince(n int) []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if n < 0 {
		n = 0
	}
	if n >= len(sm.history) {
		return nil
	}
	return append([]Transition(nil), sm.history[n:]...)
}

// Context returns the game context shared with the state hooks
func (sm *StateMachine) Context() *GameContext {
	return sm.ctx
}
