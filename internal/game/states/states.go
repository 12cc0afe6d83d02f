package states

import (
	"fmt"
	"time"

	"github.com/frc2036/territory/internal/game/core"
)

// LobbyState is the phase between construction and the first admin start
type LobbyState struct{}

func NewLobbyState() State {
	return &LobbyState{}
}

func (s *LobbyState) Phase() GamePhase {
	return PhaseLobby
}

func (s *LobbyState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Int("player_count", ctx.PlayerCount).Msg("Game lobby opened")
	return nil
}

func (s *LobbyState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("player_count", ctx.PlayerCount).
		Msg("Closing lobby, game starting")
	return nil
}

func (s *LobbyState) Validate(ctx *GameContext) error {
	return validatePlayerCount(ctx)
}

// RunningState represents active play
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() GamePhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *GameContext) error {
	now := ctx.Now()
	if ctx.StartTime.IsZero() {
		ctx.StartTime = now
		ctx.Logger.Info().Msg("Game started")
		return nil
	}

	if !ctx.StopTime.IsZero() {
		stopped := now.Sub(ctx.StopTime)
		ctx.TotalStoppedDuration += stopped
		ctx.StopTime = time.Time{}
		ctx.Logger.Info().Dur("stopped_for", stopped).Msg("Game resumed")
	}
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	return validatePlayerCount(ctx)
}

// StoppedState represents a game whose turns have been halted
type StoppedState struct{}

func NewStoppedState() State {
	return &StoppedState{}
}

func (s *StoppedState) Phase() GamePhase {
	return PhaseStopped
}

func (s *StoppedState) Enter(ctx *GameContext) error {
	ctx.StopTime = ctx.Now()
	ctx.Logger.Info().
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Game stopped")
	return nil
}

func (s *StoppedState) Exit(ctx *GameContext) error {
	return nil
}

func (s *StoppedState) Validate(ctx *GameContext) error {
	return nil
}

func validatePlayerCount(ctx *GameContext) error {
	if ctx.PlayerCount < 1 || ctx.PlayerCount > core.MaxPlayers {
		return fmt.Errorf("player count must be between 1 and %d, got %d", core.MaxPlayers, ctx.PlayerCount)
	}
	return nil
}
