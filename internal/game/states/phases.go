package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseLobby - game constructed, corner cities placed, no turns taken yet
	PhaseLobby GamePhase = iota

	// PhaseRunning - turns are being played
	PhaseRunning

	// PhaseStopped - turns halted by an admin or because nobody holds a city
	PhaseStopped
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseLobby:
		return "Lobby"
	case PhaseRunning:
		return "Running"
	case PhaseStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// HasStarted reports whether the game has left the lobby at least once.
// Queries are served from any started phase.
func (p GamePhase) HasStarted() bool {
	return p == PhaseRunning || p == PhaseStopped
}

// CanReceiveActions returns true if the game can process player actions in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseLobby:
		return []GamePhase{PhaseRunning}
	case PhaseRunning:
		return []GamePhase{PhaseStopped}
	case PhaseStopped:
		return []GamePhase{PhaseRunning}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	switch s {
	case "Lobby":
		return PhaseLobby, nil
	case "Running":
		return PhaseRunning, nil
	case "Stopped":
		return PhaseStopped, nil
	default:
		return PhaseLobby, fmt.Errorf("unknown game phase %q", s)
	}
}
