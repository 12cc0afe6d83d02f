package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/frc2036/territory/internal/config"
	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/events"
	"github.com/frc2036/territory/internal/game/mapgen"
	"github.com/frc2036/territory/internal/game/states"
)

// GameConfig holds the parameters fixed when a game is built
type GameConfig struct {
	Players int
	Map     mapgen.MapConfig
	// Rules are copied into the game. The zero value means the rules of
	// the current config snapshot.
	Rules Rules
	// EventBus receives game events. A private bus is created when nil.
	EventBus *events.EventBus
	Logger   zerolog.Logger
}

// GameConfigFrom derives a GameConfig from loaded settings
func GameConfigFrom(c *config.Config, logger zerolog.Logger) GameConfig {
	return GameConfig{
		Players: c.Game.Players,
		Map: mapgen.MapConfig{
			Size:      c.Game.Map.Size,
			Frequency: c.Game.Map.NoiseFrequency,
			Octaves:   c.Game.Map.NoiseOctaves,
		},
		Rules:  RulesFrom(c),
		Logger: logger,
	}
}

// NewGame builds a game in the lobby phase: a fresh map and one city per
// player in its corner. More than four players, or fewer than one, is a
// programming error and panics. rng drives map generation and starvation
// order; a nil rng is seeded from the clock.
func NewGame(cfg GameConfig, rng *rand.Rand) *Game {
	if cfg.Players < 1 || cfg.Players > core.MaxPlayers {
		panic(fmt.Sprintf("game supports 1 to %d players, got %d", core.MaxPlayers, cfg.Players))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rules := cfg.Rules
	if rules == (Rules{}) {
		rules = CurrentRules()
	}

	id := uuid.NewString()
	logger := cfg.Logger.With().Str("game_id", id).Logger()

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewEventBus(logger)
	}

	grid := mapgen.NewGenerator(cfg.Map, rng).GenerateMap()

	gs := &GameState{
		Grid:    grid,
		Players: make([]*Player, cfg.Players),
		Roster:  core.NewRoster(),
	}
	for i := range gs.Players {
		gs.Players[i] = newPlayer(i)
		gs.Roster.Add(core.UnitCity, i, core.StartingCorner(i, grid.Size), 0)
	}

	g := &Game{
		id:        id,
		gs:        gs,
		mapConfig: cfg.Map,
		rules:     rules,
		rng:       rng,
		bus:       bus,
		logger:    logger.With().Str("component", "Game").Logger(),
		economy:   NewEconomy(bus, id, rules, logger),
		combat:    NewCombat(bus, id, rules, logger),
	}
	g.machine = states.NewStateMachine(states.NewGameContext(id, cfg.Players, logger), bus)

	g.logger.Info().
		Int("players", cfg.Players).
		Int("map_size", grid.Size).
		Int("fog_radius", rules.FogRadius).
		Msg("Game created")

	return g
}
