package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/carcassonne/internal/game"
	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/events"
	"github.com/mitchelldurbincs/carcassonne/internal/game/states"
)

type gameInstance struct {
	id      string
	manager *game.Manager
	mu      sync.Mutex // serializes every call into manager

	// Activity tracking for cleanup
	createdAt    time.Time
	lastActivity time.Time
}

// Options bounds the registry. Zero MaxGames means unlimited and zero IdleTimeout
// disables cleanup.
type Options struct {
	MaxGames    int
	IdleTimeout time.Duration
}

// Registry holds every running game. The map is guarded by an RWMutex and each game by
// its own mutex, so calls into different games never wait on each other.
type Registry struct {
	mu      sync.RWMutex
	games   map[string]*gameInstance
	opts    Options
	bus     events.Publisher
	logger  zerolog.Logger
	nowFunc func() time.Time
}

// NewRegistry creates an empty registry publishing game events onto bus. A nil bus
// drops them.
func NewRegistry(opts Options, bus events.Publisher, logger zerolog.Logger) *Registry {
	logger = logger.With().Str("component", "Registry").Logger()
	if bus == nil {
		bus = events.Discard
	}
	return &Registry{
		games:   make(map[string]*gameInstance),
		opts:    opts,
		bus:     bus,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// CreateGame starts a game waiting for its players. An empty GameID gets a fresh uuid.
// The registry's logger replaces cfg.Logger.
func (r *Registry) CreateGame(cfg game.GameConfig) (string, error) {
	if cfg.GameID == "" {
		cfg.GameID = uuid.NewString()
	}
	cfg.Logger = r.logger

	manager, err := game.NewManager(cfg)
	if err != nil {
		return "", fmt.Errorf("create game: %w", err)
	}

	now := r.nowFunc()
	instance := &gameInstance{
		id:           cfg.GameID,
		manager:      manager,
		createdAt:    now,
		lastActivity: now,
	}

	r.mu.Lock()
	if r.opts.MaxGames > 0 && len(r.games) >= r.opts.MaxGames {
		current := len(r.games)
		r.mu.Unlock()
		r.logger.Warn().
			Int("current_games", current).
			Int("max_games", r.opts.MaxGames).
			Msg("Rejecting game creation - registry at capacity")
		return "", fmt.Errorf("%w: %d/%d games active", core.ErrTooManyGames, current, r.opts.MaxGames)
	}
	if _, exists := r.games[cfg.GameID]; exists {
		r.mu.Unlock()
		return "", fmt.Errorf("game %s already exists", cfg.GameID)
	}
	r.games[cfg.GameID] = instance
	current := len(r.games)
	r.mu.Unlock()

	r.logger.Info().
		Str("game_id", cfg.GameID).
		Int("players", manager.PlayerCount()).
		Int("current_games", current).
		Int("max_games", r.opts.MaxGames).
		Msg("Successfully created new game")

	return cfg.GameID, nil
}

// Ready reports a player ready and publishes what changed
func (r *Registry) Ready(gameID string, player int) (*game.TurnResult, error) {
	instance, err := r.get(gameID)
	if err != nil {
		return nil, err
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()

	res, err := instance.manager.PlayerReady(player)
	if err != nil {
		return nil, err
	}
	instance.lastActivity = r.nowFunc()
	r.publish(instance, game.NoHolder, res)
	return res, nil
}

// Play submits the holder's move. Legality, commit and scoring happen under the game's lock.
func (r *Registry) Play(gameID string, player int, req game.PlayRequest) (*game.TurnResult, error) {
	instance, err := r.get(gameID)
	if err != nil {
		return nil, err
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()

	res, err := instance.manager.Play(player, req)
	if err != nil {
		return nil, err
	}
	instance.lastActivity = r.nowFunc()
	r.publish(instance, player, res)
	return res, nil
}

// Snapshot returns a copy of the game
func (r *Registry) Snapshot(gameID string) (game.GameState, error) {
	instance, err := r.get(gameID)
	if err != nil {
		return game.GameState{}, err
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()
	return instance.manager.Snapshot(), nil
}

// RandomPlay picks a random legal move for the game's holder without playing it.
// ok is false when nobody holds a tile.
func (r *Registry) RandomPlay(gameID string, rng *rand.Rand) (holder int, req game.PlayRequest, ok bool, err error) {
	instance, err := r.get(gameID)
	if err != nil {
		return game.NoHolder, game.PlayRequest{}, false, err
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()
	req, ok = game.RandomPlay(instance.manager, rng)
	return instance.manager.Holder(), req, ok, nil
}

// Render draws the game's board
func (r *Registry) Render(gameID string, color bool) (string, error) {
	instance, err := r.get(gameID)
	if err != nil {
		return "", err
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()
	return instance.manager.BoardString(color), nil
}

// Remove drops a game, reporting whether it existed
func (r *Registry) Remove(gameID string) bool {
	r.mu.Lock()
	_, exists := r.games[gameID]
	delete(r.games, gameID)
	remaining := len(r.games)
	r.mu.Unlock()

	if exists {
		r.logger.Info().Str("game_id", gameID).Int("remaining", remaining).Msg("Game removed")
	}
	return exists
}

// Len returns the number of games held
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// GameIDs returns the ids of every game held
func (r *Registry) GameIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	return ids
}

// Cleanup removes games idle for longer than the idle timeout and returns how many went
func (r *Registry) Cleanup() int {
	if r.opts.IdleTimeout <= 0 {
		return 0
	}

	// Collect references without holding the registry lock while taking game locks
	r.mu.RLock()
	refs := make([]*gameInstance, 0, len(r.games))
	for _, instance := range r.games {
		refs = append(refs, instance)
	}
	r.mu.RUnlock()

	now := r.nowFunc()
	var toDelete []string
	for _, instance := range refs {
		instance.mu.Lock()
		inactive := now.Sub(instance.lastActivity)
		phase := instance.manager.Phase()
		instance.mu.Unlock()

		if inactive > r.opts.IdleTimeout {
			toDelete = append(toDelete, instance.id)
			r.logger.Info().
				Str("game_id", instance.id).
				Str("phase", phase.String()).
				Dur("age", now.Sub(instance.createdAt)).
				Dur("inactive", inactive).
				Msg("Cleaning up idle game")
		}
	}

	if len(toDelete) == 0 {
		return 0
	}

	r.mu.Lock()
	for _, id := range toDelete {
		delete(r.games, id)
	}
	remaining := len(r.games)
	r.mu.Unlock()

	r.logger.Info().
		Int("cleaned", len(toDelete)).
		Int("remaining", remaining).
		Msg("Game cleanup completed")
	return len(toDelete)
}

// StartCleanup runs Cleanup every interval until ctx is done
func (r *Registry) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error().
					Interface("panic", rec).
					Msg("Game cleanup goroutine panicked")
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Cleanup()
			}
		}
	}()
}

func (r *Registry) get(gameID string) (*gameInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	instance, exists := r.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return instance, nil
}

// publish turns a TurnResult into events. The caller holds the game's lock so events of
// one game go out in the order the calls happened.
func (r *Registry) publish(instance *gameInstance, player int, res *game.TurnResult) {
	id := instance.id

	if p := res.Placement; p != nil {
		placed := events.NewTilePlacedEvent(id, res.Turn, player, p.Tile.String(), p.Location, p.Orient.String())
		if res.AddedPiecen != nil {
			placed.WithPiecen(res.AddedPiecen.Feature, res.AddedPiecen.Group)
		}
		r.bus.Publish(placed)
	}

	for _, e := range res.Events {
		total := 0
		if e.Player >= 0 && e.Player < len(res.Totals) {
			total = res.Totals[e.Player]
		}
		r.bus.Publish(events.NewFeatureScoredEvent(id, e.Player, e.Points, e.Type.String(), e.Group, e.Complete, total))
	}

	for _, pc := range res.RemovedPiecens {
		r.bus.Publish(events.NewPiecenReturnedEvent(id, pc.Owner, pc.Location))
	}

	for _, tr := range res.Transitions {
		r.bus.Publish(events.NewStateTransitionEvent(id, tr.From.String(), tr.To.String(), tr.Reason))
		if tr.To == states.PhaseInPlay {
			r.bus.Publish(events.NewGameStartedEvent(id, instance.manager.PlayerCount(), res.Remaining))
		}
	}

	if res.TurnStarted && res.CurrentTile != nil {
		r.bus.Publish(events.NewTurnStartedEvent(id, res.Turn, res.Holder, res.CurrentTile.String(), res.Remaining, len(res.Skipped)))
	}

	if res.GameOver() && len(res.Transitions) > 0 {
		r.bus.Publish(events.NewGameEndedEvent(id, res.Winners, res.Totals, res.Turn, instance.manager.Elapsed()))
	}
}
