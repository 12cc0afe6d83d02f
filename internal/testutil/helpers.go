package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/frc2036/territory/internal/config"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// UseDefaultConfig loads the built-in defaults, applies overrides (viper
// keys such as "game.fog_of_war.visibility_radius") and restores defaults
// when the test ends.
func UseDefaultConfig(t *testing.T, overrides map[string]interface{}) {
	t.Helper()
	require.NoError(t, config.Init(""))
	for key, value := range overrides {
		require.NoError(t, config.Set(key, value))
	}
	t.Cleanup(func() {
		_ = config.Init("")
	})
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
