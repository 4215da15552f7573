package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/carcassonne/internal/config"
	"github.com/mitchelldurbincs/carcassonne/internal/game/board"
	"github.com/mitchelldurbincs/carcassonne/internal/game/rules"
	"github.com/mitchelldurbincs/carcassonne/internal/game/states"
	"github.com/mitchelldurbincs/carcassonne/internal/game/tiles"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// GameConfig holds the settings of one game. Zero values fall back to configuration
// defaults.
type GameConfig struct {
	GameID           string
	Players          int
	PiecensPerPlayer int
	Scores           rules.ScoreTable
	Tiles            []tiles.GameTile // bag contents, the full set when nil
	Starter          *tiles.GameTile  // tile fixed at the origin, StarterTile when nil
	Rng              *rand.Rand
	Logger           zerolog.Logger
}

// ManagerInitializer handles the construction of a game manager
type ManagerInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewManagerInitializer creates a new manager initializer
func NewManagerInitializer(cfg GameConfig) *ManagerInitializer {
	return &ManagerInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "GameManager").Logger(),
	}
}

// Initialize validates the configuration and creates a manager in PhasePreGame
func (mi *ManagerInitializer) Initialize() (*Manager, error) {
	mi.setupDefaults()

	if err := mi.validate(); err != nil {
		mi.logger.Error().Err(err).Msg("Invalid game configuration")
		return nil, err
	}

	m := mi.createManager()

	mi.logger.Info().
		Str("game_id", m.gameID).
		Int("players", mi.config.Players).
		Int("piecens_per_player", mi.config.PiecensPerPlayer).
		Int("tiles", len(mi.config.Tiles)).
		Msg("Game manager created")

	return m, nil
}

// setupDefaults sets up default values for missing configuration
func (mi *ManagerInitializer) setupDefaults() {
	if mi.config.Rng == nil {
		mi.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		mi.config.Rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	if mi.config.GameID == "" {
		mi.config.GameID = uuid.NewString()
	}
	mi.logger = mi.logger.With().Str("game_id", mi.config.GameID).Logger()

	if mi.config.Players == 0 {
		mi.config.Players = DefaultPlayers()
	}

	if mi.config.PiecensPerPlayer == 0 {
		mi.config.PiecensPerPlayer = DefaultPiecensPerPlayer()
	}

	if mi.config.Scores == (rules.ScoreTable{}) {
		mi.config.Scores = DefaultScoreTable()
	}

	if mi.config.Tiles == nil {
		mi.config.Tiles = tiles.FullSet()
	}

	if mi.config.Starter == nil {
		starter := tiles.StarterTile
		mi.config.Starter = &starter
	}
}

func (mi *ManagerInitializer) validate() error {
	if mi.config.Players < config.MinPlayers || mi.config.Players > config.MaxPlayers {
		return fmt.Errorf("players must be between %d and %d, got %d", config.MinPlayers, config.MaxPlayers, mi.config.Players)
	}
	if mi.config.PiecensPerPlayer < 0 {
		return fmt.Errorf("piecens per player must be non-negative, got %d", mi.config.PiecensPerPlayer)
	}
	if err := mi.config.Scores.Validate(); err != nil {
		return err
	}
	if !mi.config.Starter.Terrain.Valid() {
		return fmt.Errorf("starter tile has unknown terrain %d", int(mi.config.Starter.Terrain))
	}
	for _, t := range mi.config.Tiles {
		if !t.Terrain.Valid() {
			return fmt.Errorf("bag holds a tile with unknown terrain %d", int(t.Terrain))
		}
	}
	return nil
}

// createManager creates the manager with all its components
func (mi *ManagerInitializer) createManager() *Manager {
	players := make([]Player, mi.config.Players)
	for i := range players {
		players[i] = Player{ID: i}
	}

	gameContext := states.NewGameContext(mi.config.GameID, mi.config.Players, mi.config.Logger)

	return &Manager{
		gameID:       mi.config.GameID,
		config:       mi.config,
		logger:       mi.logger,
		rng:          mi.config.Rng,
		stateMachine: states.NewStateMachine(gameContext),
		board:        board.NewPlacements(),
		claims:       rules.NewClaimEngine(mi.logger),
		scorer:       rules.NewScorer(mi.config.Scores, mi.logger),
		winCondition: rules.NewWinConditionChecker(mi.logger),
		players:      players,
		holder:       NoHolder,
	}
}
