package core

import "fmt"

// ActionType represents the type of action
type ActionType int

const (
	ActionMove ActionType = iota
	ActionProduce
	ActionResearch
	ActionEndTurn
)

// Action represents a player request against the game
type Action interface {
	GetPlayerID() int
	GetType() ActionType
	Describe() string
}

// MoveAction relocates one worker or army by a single step
type MoveAction struct {
	PlayerID int
	Unit     UnitKind
	From     Coordinate
	To       Coordinate
}

func (m *MoveAction) GetPlayerID() int    { return m.PlayerID }
func (m *MoveAction) GetType() ActionType { return ActionMove }
func (m *MoveAction) Describe() string {
	return fmt.Sprintf("move %s from %s to %s", m.Unit, m.From, m.To)
}

// Validate checks the geometry of the move against the grid. Unit presence
// and turn ownership are checked by the game.
func (m *MoveAction) Validate(g *Grid) error {
	if m.Unit == UnitCity {
		return ErrInvalidUnitKind
	}
	if !g.InBounds(m.From) || !g.InBounds(m.To) {
		return ErrInvalidCoordinates
	}
	if m.From == m.To {
		return ErrMoveToSelf
	}
	if m.From.DistanceTo(m.To) > 1 {
		return ErrMoveTooFar
	}
	return nil
}

// ProduceAction builds a new unit at a position
type ProduceAction struct {
	PlayerID int
	Unit     UnitKind
	At       Coordinate
}

func (p *ProduceAction) GetPlayerID() int    { return p.PlayerID }
func (p *ProduceAction) GetType() ActionType { return ActionProduce }
func (p *ProduceAction) Describe() string {
	return fmt.Sprintf("produce %s at %s", p.Unit, p.At)
}

// Technology is a purchasable strength upgrade.
type Technology int

const (
	TechOffense Technology = iota
	TechDefense
)

func (t Technology) String() string {
	switch t {
	case TechOffense:
		return "offense"
	case TechDefense:
		return "defense"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseTechnology maps a request string onto a technology.
func ParseTechnology(s string) (Technology, error) {
	switch s {
	case "offense":
		return TechOffense, nil
	case "defense":
		return TechDefense, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidTechnology)
	}
}

// ResearchAction spends trade on a technology
type ResearchAction struct {
	PlayerID int
	Tech     Technology
}

func (r *ResearchAction) GetPlayerID() int    { return r.PlayerID }
func (r *ResearchAction) GetType() ActionType { return ActionResearch }
func (r *ResearchAction) Describe() string    { return fmt.Sprintf("research %s", r.Tech) }

// EndTurnAction hands the turn to the next player
type EndTurnAction struct {
	PlayerID int
}

func (e *EndTurnAction) GetPlayerID() int    { return e.PlayerID }
func (e *EndTurnAction) GetType() ActionType { return ActionEndTurn }
func (e *EndTurnAction) Describe() string    { return "end turn" }
