package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/events"
	"github.com/frc2036/territory/internal/game/mapgen"
	"github.com/frc2036/territory/internal/game/states"
	"github.com/frc2036/territory/internal/testutil"
)

// newTestGame builds a lobby game of the given size with default rules
func newTestGame(t *testing.T, players, size int) *Game {
	t.Helper()
	testutil.UseDefaultConfig(t, nil)
	return NewGame(GameConfig{
		Players: players,
		Map:     mapgen.DefaultMapConfig(size),
		Logger:  testutil.NopLogger(),
	}, testutil.NewTestRNG(42))
}

// newFixtureGame builds a game whose terrain and units are replaced by the
// given fixtures, then marks it running without a pre-turn sequence so
// resources start at zero.
func newFixtureGame(t *testing.T, players int, grid *core.Grid, roster *core.Roster) *Game {
	t.Helper()
	g := newTestGame(t, players, grid.Size)
	g.gs.Grid = grid
	g.gs.Roster = roster
	require.NoError(t, g.machine.TransitionTo(states.PhaseRunning, "fixture"))
	return g
}

// recordEvents collects every event of the given types published by g
func recordEvents(g *Game, types ...string) *[]events.Event {
	var got []events.Event
	for _, eventType := range types {
		g.EventBus().SubscribeFunc(eventType, func(e events.Event) {
			got = append(got, e)
		})
	}
	return &got
}

func pos(row, col int) core.Coordinate {
	return core.NewCoordinate(row, col)
}
