package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/carcassonne/internal/game/core"
	"github.com/mitchelldurbincs/carcassonne/internal/game/events"
	"github.com/mitchelldurbincs/carcassonne/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeTilePlaced))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "GameStartedEvent",
			event: events.NewGameStartedEvent("test-game-1", 4, 70),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(4), logLine["num_players"])
				assert.Equal(t, float64(70), logLine["tiles_in_bag"])
			},
		},
		{
			name:  "TurnStartedEvent",
			event: events.NewTurnStartedEvent("test-game-1", 5, 2, "CITY_TWO", 60, 1),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["turn"])
				assert.Equal(t, float64(2), logLine["holder"])
				assert.Equal(t, "CITY_TWO", logLine["tile"])
				assert.Equal(t, float64(1), logLine["skipped"])
			},
		},
		{
			name: "TilePlacedEvent",
			event: events.NewTilePlacedEvent("test-game-1", 3, 1, "CITY_ONE", core.NewLocation(0, -1), "SOUTH").
				WithPiecen(0, 4),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(1), logLine["player_id"])
				assert.Equal(t, float64(0), logLine["x"])
				assert.Equal(t, float64(-1), logLine["y"])
				assert.Equal(t, "SOUTH", logLine["orient"])
				assert.Equal(t, float64(0), logLine["piecen_feature"])
				assert.Equal(t, float64(4), logLine["piecen_group"])
			},
		},
		{
			name:  "TilePlacedEventWithoutPiecen",
			event: events.NewTilePlacedEvent("test-game-1", 0, -1, "CITY_ONE_ROAD_STRAIGHT", core.Origin, "NORTH"),
			check: func(t *testing.T, logLine map[string]interface{}) {
				_, ok := logLine["piecen_feature"]
				assert.False(t, ok)
			},
		},
		{
			name:  "FeatureScoredEvent",
			event: events.NewFeatureScoredEvent("test-game-1", 0, 10, "CITY", 1, true, 12),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(10), logLine["points"])
				assert.Equal(t, "CITY", logLine["feature"])
				assert.Equal(t, true, logLine["complete"])
				assert.Equal(t, float64(12), logLine["total"])
			},
		},
		{
			name:  "PiecenReturnedEvent",
			event: events.NewPiecenReturnedEvent("test-game-1", 2, core.NewLocation(3, 4)),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(2), logLine["player_id"])
				assert.Equal(t, float64(3), logLine["x"])
				assert.Equal(t, float64(4), logLine["y"])
			},
		},
		{
			name:  "StateTransitionEvent",
			event: events.NewStateTransitionEvent("test-game-1", "PreGame", "InPlay", "all players ready"),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "PreGame", logLine["from_state"])
				assert.Equal(t, "InPlay", logLine["to_state"])
				assert.Equal(t, "all players ready", logLine["reason"])
			},
		},
		{
			name:  "GameEndedEvent",
			event: events.NewGameEndedEvent("test-game-1", []int{0}, []int{31, 20}, 71, 5*time.Minute),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, []interface{}{float64(0)}, logLine["winners"])
				assert.Equal(t, []interface{}{float64(31), float64(20)}, logLine["scores"])
				assert.Equal(t, float64(300000), logLine["duration"]) // 5 minutes in ms
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logOutput := buf.String()
			require.NotEmpty(t, logOutput, "Log output should not be empty")

			var logLine map[string]interface{}
			err := json.Unmarshal([]byte(logOutput), &logLine)
			require.NoError(t, err, "Should be able to parse log output as JSON")

			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-game-1", logLine["game_id"])

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("filtered-logger", logger, zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeGameStarted, events.TypeGameEnded})

	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeGameEnded))
	assert.False(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.False(t, logSub.InterestedIn(events.TypeFeatureScored))

	bus := events.NewEventBus(zerolog.Nop())
	bus.Subscribe(logSub)

	bus.Publish(events.NewTurnStartedEvent("game1", 1, 0, "CITY_ONE", 10, 0))
	assert.Empty(t, buf.String())

	bus.Publish(events.NewGameStartedEvent("game1", 2, 71))
	assert.Contains(t, buf.String(), events.TypeGameStarted)

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeTurnStarted))
}

func TestLoggerSubscriberLogLevels(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel zerolog.Level
		expected string
	}{
		{"Debug", zerolog.DebugLevel, "debug"},
		{"Info", zerolog.InfoLevel, "info"},
		{"Warn", zerolog.WarnLevel, "warn"},
		{"Error", zerolog.ErrorLevel, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(tc.logLevel)

			logSub := subscribers.NewLoggerSubscriber("level-logger", logger, tc.logLevel)
			logSub.HandleEvent(events.NewGameStartedEvent("game1", 2, 71))

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevelopmentMode(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("dev-logger", logger, zerolog.InfoLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewFeatureScoredEvent("dev-game", 1, 4, "ROAD", 2, false, 4))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))

	eventData, ok := logLine["event_data"]
	require.True(t, ok, "event_data should be present")

	eventDataBytes, err := json.Marshal(eventData)
	require.NoError(t, err)
	assert.Contains(t, string(eventDataBytes), events.TypeFeatureScored)
	assert.Contains(t, string(eventDataBytes), "player_id")
}
