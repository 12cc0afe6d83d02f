package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/frc2036/territory/internal/game/events"
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

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
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
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level()).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("num_players", e.NumPlayers).
			Int("map_size", e.MapSize).
			Bool("resumed", e.Resumed)

	case *events.GameStoppedEvent:
		logEvent.
			Int("turn", e.Turn).
			Str("reason", e.Reason)

	case *events.MapRegeneratedEvent:
		logEvent.Int("map_size", e.MapSize)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Int("player_id", e.PlayerID)

	case *events.HarvestAppliedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("food", e.Yield.Food).
			Int("production", e.Yield.Production).
			Int("trade", e.Yield.Trade).
			Int("tiles", e.TilesHarvest)

	case *events.UnitStarvedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("unit_id", int(e.UnitID)).
			Str("unit_kind", e.Kind.String()).
			Str("position", e.Position.String())

	case *events.UnitProducedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("unit_id", int(e.UnitID)).
			Str("unit_kind", e.Kind.String()).
			Str("position", e.Position.String()).
			Int("cost", e.Cost)

	case *events.UnitMovedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("unit_id", int(e.UnitID)).
			Str("unit_kind", e.Kind.String()).
			Str("from", e.From.String()).
			Str("to", e.To.String())

	case *events.TechResearchedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Str("tech", e.Tech.String()).
			Float64("strength", e.NewStrength)

	case *events.CombatResolvedEvent:
		logEvent.
			Int("attacker_id", e.AttackerID).
			Int("defender_id", e.DefenderID).
			Str("location", e.Location.String()).
			Int("defenders", e.Defenders).
			Int("defenders_lost", e.DefendersLost).
			Int("workers_killed", e.WorkersKilled).
			Int("attacker_damage", e.AttackerDamage).
			Int("defender_damage", e.DefenderDamage).
			Bool("attacker_died", e.AttackerDied).
			Bool("attacker_moved", e.AttackerMoved)

	case *events.CityCapturedEvent:
		logEvent.
			Int("new_owner", e.NewOwner).
			Int("previous_owner", e.PreviousOwner).
			Str("location", e.Location.String()).
			Int("units_transferred", e.UnitsTransferred)

	case *events.PlayerRenamedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Str("name", e.Name)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromState).
			Str("to", e.ToState).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	default:
		return zerolog.InfoLevel
	}
}
