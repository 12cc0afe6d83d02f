package events

import (
	"github.com/frc2036/territory/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameStopped     = "game.stopped"
	TypeMapRegenerated  = "map.regenerated"
	TypeTurnStarted     = "turn.started"
	TypeHarvestApplied  = "harvest.applied"
	TypeUnitStarved     = "unit.starved"
	TypeUnitProduced    = "unit.produced"
	TypeUnitMoved       = "unit.moved"
	TypeTechResearched  = "tech.researched"
	TypeCombatResolved  = "combat.resolved"
	TypeCityCaptured    = "city.captured"
	TypePlayerRenamed   = "player.renamed"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when an admin starts or resumes the game
type GameStartedEvent struct {
	BaseEvent
	NumPlayers int
	MapSize    int
	Resumed    bool
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, numPlayers, mapSize int, resumed bool) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID),
		NumPlayers: numPlayers,
		MapSize:    mapSize,
		Resumed:    resumed,
	}
}

// GameStoppedEvent is published when turns are halted
type GameStoppedEvent struct {
	BaseEvent
	Turn   int
	Reason string
}

// NewGameStoppedEvent creates a new GameStoppedEvent
func NewGameStoppedEvent(gameID string, turn int, reason string) *GameStoppedEvent {
	return &GameStoppedEvent{
		BaseEvent: newBase(TypeGameStopped, gameID),
		Turn:      turn,
		Reason:    reason,
	}
}

// MapRegeneratedEvent is published after an admin replaces the terrain
type MapRegeneratedEvent struct {
	BaseEvent
	MapSize int
}

// NewMapRegeneratedEvent creates a new MapRegeneratedEvent
func NewMapRegeneratedEvent(gameID string, mapSize int) *MapRegeneratedEvent {
	return &MapRegeneratedEvent{
		BaseEvent: newBase(TypeMapRegenerated, gameID),
		MapSize:   mapSize,
	}
}

// TurnStartedEvent is published when a player's turn begins
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int
	PlayerID   int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn, playerID int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID),
		TurnNumber: turn,
		PlayerID:   playerID,
	}
}

// HarvestAppliedEvent reports what a player gathered at the start of a turn
type HarvestAppliedEvent struct {
	BaseEvent
	PlayerID     int
	Yield        core.Yield
	TilesHarvest int
}

// NewHarvestAppliedEvent creates a new HarvestAppliedEvent
func NewHarvestAppliedEvent(gameID string, playerID int, yield core.Yield, tiles int) *HarvestAppliedEvent {
	return &HarvestAppliedEvent{
		BaseEvent:    newBase(TypeHarvestApplied, gameID),
		PlayerID:     playerID,
		Yield:        yield,
		TilesHarvest: tiles,
	}
}

// UnitStarvedEvent is published for each unit lost to a food shortage
type UnitStarvedEvent struct {
	BaseEvent
	PlayerID int
	UnitID   core.UnitID
	Kind     core.UnitKind
	Position core.Coordinate
}

// NewUnitStarvedEvent creates a new UnitStarvedEvent
func NewUnitStarvedEvent(gameID string, u *core.Unit) *UnitStarvedEvent {
	return &UnitStarvedEvent{
		BaseEvent: newBase(TypeUnitStarved, gameID),
		PlayerID:  u.Owner,
		UnitID:    u.ID,
		Kind:      u.Kind,
		Position:  u.Pos,
	}
}

// UnitProducedEvent is published when a player builds a unit
type UnitProducedEvent struct {
	BaseEvent
	PlayerID int
	UnitID   core.UnitID
	Kind     core.UnitKind
	Position core.Coordinate
	Cost     int
}

// NewUnitProducedEvent creates a new UnitProducedEvent
func NewUnitProducedEvent(gameID string, u *core.Unit, cost int) *UnitProducedEvent {
	return &UnitProducedEvent{
		BaseEvent: newBase(TypeUnitProduced, gameID),
		PlayerID:  u.Owner,
		UnitID:    u.ID,
		Kind:      u.Kind,
		Position:  u.Pos,
		Cost:      cost,
	}
}

// UnitMovedEvent is published when a worker or army relocates
type UnitMovedEvent struct {
	BaseEvent
	PlayerID int
	UnitID   core.UnitID
	Kind     core.UnitKind
	From     core.Coordinate
	To       core.Coordinate
}

// NewUnitMovedEvent creates a new UnitMovedEvent
func NewUnitMovedEvent(gameID string, u *core.Unit, from core.Coordinate) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, gameID),
		PlayerID:  u.Owner,
		UnitID:    u.ID,
		Kind:      u.Kind,
		From:      from,
		To:        u.Pos,
	}
}

// TechResearchedEvent is published when a player buys a strength upgrade
type TechResearchedEvent struct {
	BaseEvent
	PlayerID    int
	Tech        core.Technology
	NewStrength float64
}

// NewTechResearchedEvent creates a new TechResearchedEvent
func NewTechResearchedEvent(gameID string, playerID int, tech core.Technology, strength float64) *TechResearchedEvent {
	return &TechResearchedEvent{
		BaseEvent:   newBase(TypeTechResearched, gameID),
		PlayerID:    playerID,
		Tech:        tech,
		NewStrength: strength,
	}
}

// CombatResolvedEvent summarises one attack
type CombatResolvedEvent struct {
	BaseEvent
	AttackerID     int
	DefenderID     int // -1 when the tile held no defending army
	Location       core.Coordinate
	Defenders      int
	DefendersLost  int
	WorkersKilled  int
	AttackerDamage int
	DefenderDamage int
	AttackerDied   bool
	AttackerMoved  bool
}

// NewCombatResolvedEvent creates a new CombatResolvedEvent
func NewCombatResolvedEvent(gameID string, attackerID, defenderID int, location core.Coordinate) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:  newBase(TypeCombatResolved, gameID),
		AttackerID: attackerID,
		DefenderID: defenderID,
		Location:   location,
	}
}

// CityCapturedEvent is published when a city and its surroundings change hands
type CityCapturedEvent struct {
	BaseEvent
	NewOwner         int
	PreviousOwner    int
	Location         core.Coordinate
	UnitsTransferred int
}

// NewCityCapturedEvent creates a new CityCapturedEvent
func NewCityCapturedEvent(gameID string, newOwner, previousOwner int, location core.Coordinate, transferred int) *CityCapturedEvent {
	return &CityCapturedEvent{
		BaseEvent:        newBase(TypeCityCaptured, gameID),
		NewOwner:         newOwner,
		PreviousOwner:    previousOwner,
		Location:         location,
		UnitsTransferred: transferred,
	}
}

// PlayerRenamedEvent is published when a player changes display name
type PlayerRenamedEvent struct {
	BaseEvent
	PlayerID int
	Name     string
}

// NewPlayerRenamedEvent creates a new PlayerRenamedEvent
func NewPlayerRenamedEvent(gameID string, playerID int, name string) *PlayerRenamedEvent {
	return &PlayerRenamedEvent{
		BaseEvent: newBase(TypePlayerRenamed, gameID),
		PlayerID:  playerID,
		Name:      name,
	}
}

// StateTransitionEvent is published by the phase machine
type StateTransitionEvent struct {
	BaseEvent
	FromState string
	ToState   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, from, to, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromState: from,
		ToState:   to,
		Reason:    reason,
	}
}
