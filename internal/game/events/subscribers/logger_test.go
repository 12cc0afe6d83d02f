package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/events"
	"github.com/frc2036/territory/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())

	// No filter means every event type is wanted
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logSub := subscribers.NewLoggerSubscriber("event-logger", logger, zerolog.InfoLevel)

	worker := &core.Unit{ID: 7, Kind: core.UnitWorker, Owner: 1, Pos: core.NewCoordinate(0, 6)}

	combat := events.NewCombatResolvedEvent("test-game-1", 0, 1, core.NewCoordinate(3, 4))
	combat.Defenders = 2
	combat.DefendersLost = 1
	combat.AttackerDamage = 30
	combat.DefenderDamage = 60

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "GameStartedEvent",
			event: events.NewGameStartedEvent("test-game-1", 4, 32, false),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(4), logLine["num_players"])
				assert.Equal(t, float64(32), logLine["map_size"])
				assert.Equal(t, false, logLine["resumed"])
			},
		},
		{
			name:  "TurnStartedEvent",
			event: events.NewTurnStartedEvent("test-game-1", 5, 2),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["turn"])
				assert.Equal(t, float64(2), logLine["player_id"])
			},
		},
		{
			name:  "HarvestAppliedEvent",
			event: events.NewHarvestAppliedEvent("test-game-1", 1, core.Yield{Food: 4, Production: 3, Trade: 2}, 9),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(4), logLine["food"])
				assert.Equal(t, float64(3), logLine["production"])
				assert.Equal(t, float64(2), logLine["trade"])
				assert.Equal(t, float64(9), logLine["tiles"])
			},
		},
		{
			name:  "UnitStarvedEvent",
			event: events.NewUnitStarvedEvent("test-game-1", worker),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(7), logLine["unit_id"])
				assert.Equal(t, "worker", logLine["unit_kind"])
				assert.Equal(t, "(0,6)", logLine["position"])
			},
		},
		{
			name:  "CombatResolvedEvent",
			event: combat,
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(0), logLine["attacker_id"])
				assert.Equal(t, float64(1), logLine["defender_id"])
				assert.Equal(t, "(3,4)", logLine["location"])
				assert.Equal(t, float64(1), logLine["defenders_lost"])
				assert.Equal(t, float64(30), logLine["attacker_damage"])
				assert.Equal(t, float64(60), logLine["defender_damage"])
			},
		},
		{
			name:  "CityCapturedEvent",
			event: events.NewCityCapturedEvent("test-game-1", 0, 3, core.NewCoordinate(7, 7), 2),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(0), logLine["new_owner"])
				assert.Equal(t, float64(3), logLine["previous_owner"])
				assert.Equal(t, float64(2), logLine["units_transferred"])
			},
		},
		{
			name:  "PlayerRenamedEvent",
			event: events.NewPlayerRenamedEvent("test-game-1", 2, "Blue"),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Blue", logLine["name"])
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
			require.NoError(t, json.Unmarshal([]byte(logOutput), &logLine))

			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-game-1", logLine["game_id"])

			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberWithFilter(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("filtered-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeGameStarted, events.TypeCityCaptured})

	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn(events.TypeCityCaptured))
	assert.False(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.False(t, logSub.InterestedIn(events.TypeUnitMoved))

	// Clearing the filter restores interest in everything
	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeUnitMoved))
}

func TestLoggerSubscriberThroughBus(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("bus-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeGameStopped})

	bus := events.NewEventBus(zerolog.Nop())
	bus.Subscribe(logSub)

	bus.Publish(events.NewTurnStartedEvent("g", 1, 0))
	assert.Empty(t, buf.String())

	bus.Publish(events.NewGameStoppedEvent("g", 12, "admin"))
	assert.Contains(t, buf.String(), `"reason":"admin"`)
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
		{"Unsupported falls back to info", zerolog.TraceLevel, "info"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("level-logger", zerolog.New(&buf), tc.logLevel)

			logSub.HandleEvent(events.NewGameStartedEvent("game1", 2, 8, false))

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, tc.expected, logLine["level"])
		})
	}
}

func TestLoggerSubscriberDevelopmentMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetDevMode(true)

	army := &core.Unit{ID: 3, Kind: core.UnitArmy, Owner: 0, Pos: core.NewCoordinate(2, 3)}
	logSub.HandleEvent(events.NewUnitMovedEvent("dev-game", army, core.NewCoordinate(2, 2)))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))

	eventData, ok := logLine["event_data"]
	require.True(t, ok, "event_data should be present")

	eventDataBytes, err := json.Marshal(eventData)
	require.NoError(t, err)
	assert.Contains(t, string(eventDataBytes), events.TypeUnitMoved)
	assert.Contains(t, string(eventDataBytes), "PlayerID")
}
