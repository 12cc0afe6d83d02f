package game

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/events"
)

// AttackResult summarises one ResolveAttack call
type AttackResult struct {
	DefenderOwner  int // -1 when no army defended the tile
	Defenders      int
	DefendersLost  int
	WorkersKilled  int
	AttackerDamage int
	DefenderDamage int
	AttackerDied   bool
	AttackerMoved  bool
	Captured       *CaptureResult
}

// CaptureResult describes a city changing hands
type CaptureResult struct {
	City             core.UnitID
	PreviousOwner    int
	UnitsTransferred int
}

// Combat resolves army moves against whatever occupies the target tile
type Combat struct {
	publisher events.Publisher
	gameID    string
	rules     Rules
	logger    zerolog.Logger
}

// NewCombat creates a new combat engine
func NewCombat(publisher events.Publisher, gameID string, rules Rules, logger zerolog.Logger) *Combat {
	return &Combat{
		publisher: publisher,
		gameID:    gameID,
		rules:     rules,
		logger:    logger.With().Str("component", "Combat").Logger(),
	}
}

// ResolveAttack moves army onto target, fighting anything hostile there.
// The move itself must already be validated.
//
// Enemy workers on target always die. If no enemy army holds target the
// attacker walks in, capturing an enemy city if one stands there.
// Otherwise both sides trade damage computed from pre-combat values; the
// attacker walks in (and captures) only if every defender died, stays put
// with its move spent if any survived, and is removed if it died.
func (cb *Combat) ResolveAttack(gs *GameState, army *core.Unit, target core.Coordinate) AttackResult {
	attacker := gs.Player(army.Owner)
	result := AttackResult{DefenderOwner: -1}

	for _, u := range gs.Roster.At(target) {
		if u.Kind == core.UnitWorker && u.Owner != attacker.Index {
			u.TakeDamage(1)
			gs.Roster.Remove(u.ID)
			result.WorkersKilled++
		}
	}

	defenders := cb.defendingGroup(gs.Roster, attacker.Index, target)
	result.Defenders = len(defenders)

	if len(defenders) == 0 {
		army.MoveTo(target)
		result.AttackerMoved = true
		result.Captured = cb.captureIfEnemyCity(gs, attacker.Index, target)
		cb.publishCombat(attacker.Index, target, result)
		return result
	}

	defender := gs.Player(defenders[0].Owner)
	result.DefenderOwner = defender.Index

	attackMult := cb.tileMultiplier(gs, army.Pos, attacker.Index)
	defendMult := cb.tileMultiplier(gs, target, defender.Index)
	n := float64(len(defenders))
	scale := cb.rules.DamageScale

	atkOffense, atkDefense := attacker.Strength(core.TechOffense), attacker.Strength(core.TechDefense)
	defOffense, defDefense := defender.Strength(core.TechOffense), defender.Strength(core.TechDefense)

	result.DefenderDamage = roundDamage(atkOffense / defDefense * (1 / n) * (attackMult / defendMult) * scale)
	result.AttackerDamage = roundDamage(defOffense / atkDefense * n * (defendMult / attackMult) * scale)

	army.TakeDamage(result.AttackerDamage)
	for _, d := range defenders {
		d.TakeDamage(result.DefenderDamage)
		if d.IsDead() {
			gs.Roster.Remove(d.ID)
			result.DefendersLost++
		}
	}

	switch {
	case army.IsDead():
		gs.Roster.Remove(army.ID)
		result.AttackerDied = true
	case result.DefendersLost < len(defenders):
		army.Moved = true
	default:
		army.MoveTo(target)
		result.AttackerMoved = true
		result.Captured = cb.captureIfEnemyCity(gs, attacker.Index, target)
	}

	cb.logger.Debug().
		Int("attacker_id", attacker.Index).
		Int("defender_id", defender.Index).
		Str("target", target.String()).
		Int("defenders", result.Defenders).
		Int("defenders_lost", result.DefendersLost).
		Int("attacker_damage", result.AttackerDamage).
		Int("defender_damage", result.DefenderDamage).
		Bool("attacker_died", result.AttackerDied).
		Msg("Combat resolved")

	cb.publishCombat(attacker.Index, target, result)
	return result
}

// defendingGroup returns the armies on target not owned by attacker.
// Armies of two different players on one tile is a broken invariant.
func (cb *Combat) defendingGroup(roster *core.Roster, attacker int, target core.Coordinate) []*core.Unit {
	var defenders []*core.Unit
	for _, u := range roster.At(target) {
		if u.Kind != core.UnitArmy || u.Owner == attacker {
			continue
		}
		if len(defenders) > 0 && defenders[0].Owner != u.Owner {
			panic(fmt.Sprintf("armies of players %d and %d share tile %s", defenders[0].Owner, u.Owner, target))
		}
		defenders = append(defenders, u)
	}
	return defenders
}

// captureIfEnemyCity hands an enemy city on pos to newOwner together with
// every worker and army its previous owner has within the capture radius.
func (cb *Combat) captureIfEnemyCity(gs *GameState, newOwner int, pos core.Coordinate) *CaptureResult {
	city := gs.Roster.CityAt(pos)
	if city == nil || city.Owner == newOwner {
		return nil
	}

	capture := &CaptureResult{City: city.ID, PreviousOwner: city.Owner}
	radius := cb.rules.CaptureRadius

	for _, u := range gs.Roster.OwnedBy(capture.PreviousOwner) {
		if u.Kind == core.UnitCity || u.DistanceTo(pos) > radius {
			continue
		}
		gs.Roster.Transfer(u.ID, newOwner)
		capture.UnitsTransferred++
	}
	gs.Roster.Transfer(city.ID, newOwner)

	cb.logger.Info().
		Int("new_owner", newOwner).
		Int("previous_owner", capture.PreviousOwner).
		Str("city", pos.String()).
		Int("units_transferred", capture.UnitsTransferred).
		Msg("City captured")

	if cb.publisher != nil {
		cb.publisher.Publish(events.NewCityCapturedEvent(cb.gameID, newOwner, capture.PreviousOwner, pos, capture.UnitsTransferred))
	}
	return capture
}

func (cb *Combat) publishCombat(attacker int, target core.Coordinate, r AttackResult) {
	if cb.publisher == nil || (r.Defenders == 0 && r.WorkersKilled == 0) {
		return
	}
	e := events.NewCombatResolvedEvent(cb.gameID, attacker, r.DefenderOwner, target)
	e.Defenders = r.Defenders
	e.DefendersLost = r.DefendersLost
	e.WorkersKilled = r.WorkersKilled
	e.AttackerDamage = r.AttackerDamage
	e.DefenderDamage = r.DefenderDamage
	e.AttackerDied = r.AttackerDied
	e.AttackerMoved = r.AttackerMoved
	cb.publisher.Publish(e)
}

// tileMultiplier is the terrain multiplier for a unit of owner standing on
// pos, plus the city bonus when owner holds a city there.
func (cb *Combat) tileMultiplier(gs *GameState, pos core.Coordinate, owner int) float64 {
	m := core.CombatMultiplier(gs.Grid.Kind(pos))
	if city := gs.Roster.CityAt(pos); city != nil && city.Owner == owner {
		m += cb.rules.CityDefenseBonus
	}
	return m
}

func roundDamage(d float64) int {
	return int(math.Round(d))
}
