package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/carcassonne/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("num_players", e.NumPlayers).
			Int("tiles_in_bag", e.TilesInBag)

	case *events.GameEndedEvent:
		logEvent.
			Ints("winners", e.Winners).
			Ints("scores", e.Scores).
			Int("final_turn", e.FinalTurn).
			Dur("duration", e.Duration)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("holder", e.Holder).
			Str("tile", e.Tile).
			Int("remaining", e.Remaining).
			Int("skipped", e.Skipped)

	case *events.TilePlacedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("player_id", e.PlayerID).
			Str("tile", e.Tile).
			Int("x", e.Location.X).
			Int("y", e.Location.Y).
			Str("orient", e.Orient)
		if e.PiecenFeature >= 0 {
			logEvent.
				Int("piecen_feature", e.PiecenFeature).
				Int("piecen_group", e.PiecenGroup)
		}

	case *events.FeatureScoredEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("points", e.Points).
			Str("feature", e.Feature).
			Int("group", e.Group).
			Bool("complete", e.Complete).
			Int("total", e.Total)

	case *events.PiecenReturnedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("x", e.Location.X).
			Int("y", e.Location.Y)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_state", e.FromState).
			Str("to_state", e.ToState).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Game event")
}
