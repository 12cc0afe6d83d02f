package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIdentity       = errors.New("invalid key")
	ErrNotAdmin              = errors.New("admin key required")
	ErrNotPlayer             = errors.New("player key required")
	ErrGameNotStarted        = errors.New("no active game")
	ErrGameRunning           = errors.New("game is already running")
	ErrNotYourTurn           = errors.New("not your turn")
	ErrInvalidCoordinates    = errors.New("invalid coordinates")
	ErrNoUnitAtSource        = errors.New("no unit at source")
	ErrUnitAlreadyMoved      = errors.New("unit already moved")
	ErrMoveTooFar            = errors.New("move distance too large")
	ErrMoveToSelf            = errors.New("unit must move to a different tile")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvalidUnitKind       = errors.New("invalid unit kind")
	ErrInvalidTechnology     = errors.New("invalid technology")
	ErrTileNotOwned          = errors.New("no owned city on target tile")
	ErrTileNotVisible        = errors.New("target tile not visible")
	ErrTileOccupied          = errors.New("target tile already has a city")
	ErrTileHostile           = errors.New("target tile holds enemy units")
	ErrInvalidName           = errors.New("invalid player name")
	ErrNoActivePlayers       = errors.New("no player holds a city")
)

// WrapActionError adds the acting player and the request to err.
func WrapActionError(action Action, err error) error {
	if err == nil {
		return nil
	}
	if action == nil {
		return fmt.Errorf("player action: %w", err)
	}
	return fmt.Errorf("player %d: %s: %w", action.GetPlayerID(), action.Describe(), err)
}

// WrapGameStateError adds the turn number and phase to err.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapPlayerError adds a player and operation name to err.
func WrapPlayerError(playerID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d %s: %w", playerID, operation, err)
}
