package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext carries the game-level facts states use during transitions
type GameContext struct {
	GameID string

	Logger zerolog.Logger

	// PlayerCount is fixed at construction
	PlayerCount int

	// StartTime is when the game first entered PhaseRunning
	StartTime time.Time

	// StopTime is when the game last entered PhaseStopped
	StopTime time.Time

	// TotalStoppedDuration excludes time spent stopped from the elapsed clock
	TotalStoppedDuration time.Duration

	// Now is swapped in tests
	Now func() time.Time
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, playerCount int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:      gameID,
		PlayerCount: playerCount,
		Logger:      logger.With().Str("game_id", gameID).Logger(),
		Now:         time.Now,
	}
}

// GetElapsedTime returns the running time since the first start, excluding stops
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}

	end := gc.Now()
	if !gc.StopTime.IsZero() {
		// currently stopped; the open stop interval is not running time
		end = gc.StopTime
	}
	return end.Sub(gc.StartTime) - gc.TotalStoppedDuration
}
