package main

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frc2036/territory/internal/game"
	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/mapgen"
	"github.com/frc2036/territory/internal/game/states"
)

func newDemoGame(t *testing.T, start bool) *game.Game {
	t.Helper()
	g := game.NewGame(game.GameConfig{
		Players: 2,
		Map:     mapgen.DefaultMapConfig(8),
		Logger:  zerolog.Nop(),
	}, rand.New(rand.NewSource(1)))
	if start {
		require.NoError(t, g.AdminStart(core.Admin))
	}
	return g
}

func TestRunDemo_StopsAtMaxTurns(t *testing.T) {
	g := newDemoGame(t, true)
	var out bytes.Buffer

	played := runDemo(context.Background(), g, rand.New(rand.NewSource(2)), 3, core.Observer, &out)

	assert.Equal(t, 3, played)
	assert.Equal(t, 3, strings.Count(out.String(), "Turn "))
	assert.Equal(t, states.PhaseRunning, g.Phase())
}

func TestRunDemo_ShutdownStopsGame(t *testing.T) {
	g := newDemoGame(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	played := runDemo(ctx, g, rand.New(rand.NewSource(2)), 10, core.Observer, &out)

	assert.Zero(t, played)
	assert.Empty(t, out.String())
	assert.Equal(t, states.PhaseStopped, g.Phase())
}

func TestRunDemo_IdleUnlessRunning(t *testing.T) {
	g := newDemoGame(t, false)

	played := runDemo(context.Background(), g, rand.New(rand.NewSource(2)), 10, core.Observer, &bytes.Buffer{})

	assert.Zero(t, played)
	assert.Equal(t, states.PhaseLobby, g.Phase())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
}
