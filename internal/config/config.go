package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchelldurbincs/carcassonne/internal/game/rules"
	"github.com/spf13/viper"
)

// Player limits accepted by game.players
const (
	MinPlayers = 1
	MaxPlayers = 6
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Server      ServerConfig      `mapstructure:"server"`
	Simulate    SimulateConfig    `mapstructure:"simulate"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game rules configuration
type GameConfig struct {
	Players          int           `mapstructure:"players"`
	PiecensPerPlayer int           `mapstructure:"piecens_per_player"`
	Scoring          ScoringConfig `mapstructure:"scoring"`
}

// ScoringConfig holds the points awarded per tile, shield and bordered city
type ScoringConfig struct {
	CityTile        int `mapstructure:"city_tile"`
	CityShield      int `mapstructure:"city_shield"`
	RoadTile        int `mapstructure:"road_tile"`
	CloisterTile    int `mapstructure:"cloister_tile"`
	EndCityTile     int `mapstructure:"end_city_tile"`
	EndCityShield   int `mapstructure:"end_city_shield"`
	EndRoadTile     int `mapstructure:"end_road_tile"`
	EndCloisterTile int `mapstructure:"end_cloister_tile"`
	FarmCity        int `mapstructure:"farm_city"`
}

// ServerConfig holds session server configuration
type ServerConfig struct {
	MaxGames        int           `mapstructure:"max_games"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
}

// SimulateConfig holds settings for the simulate command
type SimulateConfig struct {
	Seed  uint64 `mapstructure:"seed"`
	Games int    `mapstructure:"games"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging bool `mapstructure:"verbose_logging"`
	ShowBoard      bool `mapstructure:"show_board"`
}

var (
	// Global config instance. A published *Config is never mutated; updates swap in a
	// fresh one under mu.
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.players", 2)
	v.SetDefault("game.piecens_per_player", 5)

	// Scoring defaults
	defaults := rules.DefaultScoreTable()
	v.SetDefault("game.scoring.city_tile", defaults.CityTile)
	v.SetDefault("game.scoring.city_shield", defaults.CityShield)
	v.SetDefault("game.scoring.road_tile", defaults.RoadTile)
	v.SetDefault("game.scoring.cloister_tile", defaults.CloisterTile)
	v.SetDefault("game.scoring.end_city_tile", defaults.EndCityTile)
	v.SetDefault("game.scoring.end_city_shield", defaults.EndCityShield)
	v.SetDefault("game.scoring.end_road_tile", defaults.EndRoadTile)
	v.SetDefault("game.scoring.end_cloister_tile", defaults.EndCloisterTile)
	v.SetDefault("game.scoring.farm_city", defaults.FarmCity)

	// Server defaults
	v.SetDefault("server.max_games", 100)
	v.SetDefault("server.idle_timeout", "30m")
	v.SetDefault("server.cleanup_interval", "1m")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")

	// Simulate defaults
	v.SetDefault("simulate.seed", 0)
	v.SetDefault("simulate.games", 1)

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_board", true)
}

// Init initializes the configuration. An explicit configPath must exist; without one the
// default locations are searched and a missing file falls back to defaults.
func Init(configPath string) error {
	vp := viper.New()

	// Set defaults before loading any config
	setViperDefaults(vp)

	// Set config file
	if configPath != "" {
		vp.SetConfigFile(configPath)
	} else {
		// Default config locations
		vp.SetConfigName("config")
		vp.SetConfigType("yaml")
		vp.AddConfigPath(".")
		vp.AddConfigPath("./config")
		vp.AddConfigPath("/etc/carcassonne")
	}

	// Set environment variable prefix
	vp.SetEnvPrefix("TLG")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	// Read config file
	if err := vp.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c, err := decode(vp)
	if err != nil {
		return err
	}

	mu.Lock()
	v, cfg = vp, c
	mu.Unlock()
	return nil
}

// decode unmarshals vp into a fresh Config and validates it
func decode(vp *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := vp.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Get returns the current config. Callers must treat it as read-only.
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}

	// Initialize with defaults if not already initialized
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Set overrides one key at runtime. The current config is left untouched when the
// result does not validate.
func Set(key string, value interface{}) error {
	mu.Lock()
	defer mu.Unlock()
	if v == nil {
		return errors.New("config not initialized - call Init() first")
	}

	prev := v.Get(key)
	v.Set(key, value)
	c, err := decode(v)
	if err != nil {
		v.Set(key, prev)
		return fmt.Errorf("set %s: %w", key, err)
	}
	cfg = c
	return nil
}

// ConfigFilePath returns the path of the loaded config file, empty when running on
// defaults
func ConfigFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. A reload that fails to decode
// or validate is passed to onError and the previous config stays current. Games already
// running keep the settings they were created with; only new games see the change.
func WatchConfig(onChange func(*Config), onError func(error)) {
	mu.RLock()
	vp := v
	mu.RUnlock()
	if vp == nil {
		if onError != nil {
			onError(errors.New("config not initialized - call Init() first"))
		}
		return
	}

	vp.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		if v != vp {
			// Init replaced the instance being watched
			mu.Unlock()
			return
		}
		c, err := decode(vp)
		if err == nil {
			cfg = c
		}
		mu.Unlock()

		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(c)
		}
	})
	vp.WatchConfig()
}

// ScoreTable converts the scoring section to the rules engine's table
func (g GameConfig) ScoreTable() rules.ScoreTable {
	s := g.Scoring
	return rules.ScoreTable{
		CityTile:        s.CityTile,
		CityShield:      s.CityShield,
		RoadTile:        s.RoadTile,
		CloisterTile:    s.CloisterTile,
		EndCityTile:     s.EndCityTile,
		EndCityShield:   s.EndCityShield,
		EndRoadTile:     s.EndRoadTile,
		EndCloisterTile: s.EndCloisterTile,
		FarmCity:        s.FarmCity,
	}
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate game rules
	if c.Game.Players < MinPlayers || c.Game.Players > MaxPlayers {
		return fmt.Errorf("game.players must be between %d and %d", MinPlayers, MaxPlayers)
	}
	if c.Game.PiecensPerPlayer < 0 {
		return fmt.Errorf("game.piecens_per_player must be non-negative")
	}
	if err := c.Game.ScoreTable().Validate(); err != nil {
		return fmt.Errorf("game.scoring: %w", err)
	}

	// Validate server configuration
	if c.Server.MaxGames <= 0 {
		return fmt.Errorf("server.max_games must be positive")
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative")
	}
	if c.Server.CleanupInterval < 0 {
		return fmt.Errorf("server.cleanup_interval must be non-negative")
	}
	switch c.Server.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("server.log_format must be console or json, got %q", c.Server.LogFormat)
	}

	// Validate simulate settings
	if c.Simulate.Games < 1 {
		return fmt.Errorf("simulate.games must be at least 1")
	}

	return nil
}
