package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/carcassonne/internal/config"
	"github.com/mitchelldurbincs/carcassonne/internal/game"
	"github.com/mitchelldurbincs/carcassonne/internal/game/events"
	"github.com/mitchelldurbincs/carcassonne/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/carcassonne/internal/session"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Uint64("seed", 0, "Base RNG seed (0 to use config default, then the clock)")
	games := flag.Int("games", -1, "Number of games to play concurrently (-1 to use config default)")
	players := flag.Int("players", -1, "Players per game (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	showBoard := flag.Bool("show-board", false, "Print the final board of every game")
	watch := flag.Bool("watch", false, "Reload the log level when the config file changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	// Flags override the config file
	override := func(key string, value interface{}) {
		if err := config.Set(key, value); err != nil {
			log.Fatal().Err(err).Str("key", key).Msg("Invalid flag value")
		}
	}
	if *seed != 0 {
		override("simulate.seed", *seed)
	}
	if *games != -1 {
		override("simulate.games", *games)
	}
	if *players != -1 {
		override("game.players", *players)
	}
	if *logLevel != "" {
		override("server.log_level", *logLevel)
	}
	if *showBoard {
		override("development.show_board", true)
	}
	cfg := config.Get()

	baseSeed := cfg.Simulate.Seed
	if baseSeed == 0 {
		baseSeed = uint64(time.Now().UnixNano())
	}

	setupLogging(cfg.Server.LogLevel, cfg.Server.LogFormat)

	if *watch {
		// Only the level is live; the log writer is shared by running games
		config.WatchConfig(func(c *config.Config) {
			zerolog.SetGlobalLevel(parseLevel(c.Server.LogLevel))
			log.Info().Str("log_level", c.Server.LogLevel).Msg("Config reloaded")
		}, func(err error) {
			log.Error().Err(err).Msg("Config reload rejected, keeping previous settings")
		})
	}

	log.Info().
		Str("config_file", config.ConfigFilePath()).
		Uint64("seed", baseSeed).
		Int("games", cfg.Simulate.Games).
		Int("players", cfg.Game.Players).
		Msg("Starting simulation")

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bus := events.NewEventBus(log.Logger)
	journal := subscribers.NewLoggerSubscriber("journal", log.Logger, zerolog.DebugLevel)
	journal.SetDevMode(cfg.Development.VerboseLogging)
	bus.Subscribe(journal)

	var placed, points atomic.Int64
	bus.SubscribeFunc(func(e events.Event) {
		switch ev := e.(type) {
		case *events.TilePlacedEvent:
			placed.Add(1)
		case *events.FeatureScoredEvent:
			points.Add(int64(ev.Points))
		}
	}, events.TypeTilePlaced, events.TypeFeatureScored)

	registry := session.NewRegistry(session.Options{
		MaxGames:    cfg.Server.MaxGames,
		IdleTimeout: cfg.Server.IdleTimeout,
	}, bus, log.Logger)
	registry.StartCleanup(ctx, cfg.Server.CleanupInterval)

	var wg sync.WaitGroup
	results := make([]string, cfg.Simulate.Games)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := playGame(ctx, registry, baseSeed+uint64(i))
			if err != nil {
				log.Error().Err(err).Int("game", i).Msg("Game failed")
				results[i] = fmt.Sprintf("game %d failed: %v\n", i, err)
				return
			}
			results[i] = out
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		fmt.Print(r)
	}
	log.Info().
		Int64("tiles_placed", placed.Load()).
		Int64("points_scored", points.Load()).
		Msg("Simulation finished")
}

// playGame plays one game to the end with random legal moves and returns its summary
func playGame(ctx context.Context, registry *session.Registry, seed uint64) (string, error) {
	cfg := config.Get()
	players := cfg.Game.Players
	id, err := registry.CreateGame(game.GameConfig{
		Players:          players,
		PiecensPerPlayer: cfg.Game.PiecensPerPlayer,
		Scores:           cfg.Game.ScoreTable(),
		Rng:              rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return "", err
	}
	defer registry.Remove(id)

	for p := 0; p < players; p++ {
		if _, err := registry.Ready(id, p); err != nil {
			return "", err
		}
	}

	rng := rand.New(rand.NewSource(seed ^ 0x9e3779b97f4a7c15))
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		holder, req, ok, err := registry.RandomPlay(id, rng)
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		if _, err := registry.Play(id, holder, req); err != nil {
			return "", err
		}
	}

	snap, err := registry.Snapshot(id)
	if err != nil {
		return "", err
	}
	if !snap.Phase.IsTerminal() {
		return "", errors.New("game stopped before it ended")
	}

	out := fmt.Sprintf("game %s (seed %d): %d tiles, %d turns\n", id, seed, len(snap.Placements), snap.Turn)
	for _, p := range snap.Players {
		out += fmt.Sprintf("  player %d: %d points\n", p.ID, p.Score)
	}
	out += fmt.Sprintf("  winners: %v\n", snap.Winners)

	if cfg.Development.ShowBoard {
		board, err := registry.Render(id, true)
		if err != nil {
			return "", err
		}
		out += board
	}
	return out, nil
}

func parseLevel(level string) zerolog.Level {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return logLevel
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	// Pretty console output for development
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
