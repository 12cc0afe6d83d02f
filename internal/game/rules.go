package game

import (
	"github.com/frc2036/territory/internal/config"
	"github.com/frc2036/territory/internal/game/core"
)

// Rules are the constants one match is played under. A game copies them
// when it is built and never consults configuration again, so editing the
// config file during a match leaves it untouched.
type Rules struct {
	// Visibility
	FogRadius int

	// Units
	ArmyHitPoints int
	CaptureRadius int

	// Prices, in production for units and trade for technology
	WorkerCost     int
	ArmyCost       int
	CityCost       int
	TechnologyCost int

	// Combat
	DamageScale      float64
	CityDefenseBonus float64
	TechIncrement    float64

	// Economy
	TradeRouteBonus int
	FoodPerUnit     int
}

// RulesFrom copies the game rules out of a config snapshot
func RulesFrom(c *config.Config) Rules {
	return Rules{
		FogRadius:        c.Game.FogOfWar.VisibilityRadius,
		ArmyHitPoints:    c.Game.Units.ArmyHitPoints,
		CaptureRadius:    c.Game.Units.CaptureRadius,
		WorkerCost:       c.Game.Costs.Worker,
		ArmyCost:         c.Game.Costs.Army,
		CityCost:         c.Game.Costs.City,
		TechnologyCost:   c.Game.Costs.Technology,
		DamageScale:      c.Game.Combat.DamageScale,
		CityDefenseBonus: c.Game.Combat.CityDefenseBonus,
		TechIncrement:    c.Game.Combat.TechIncrement,
		TradeRouteBonus:  c.Game.Economy.TradeRouteBonus,
		FoodPerUnit:      c.Game.Economy.FoodPerUnit,
	}
}

// CurrentRules copies the rules from the current config snapshot
func CurrentRules() Rules {
	return RulesFrom(config.Get())
}

// UnitCost returns the production price of kind.
func (r Rules) UnitCost(kind core.UnitKind) int {
	switch kind {
	case core.UnitWorker:
		return r.WorkerCost
	case core.UnitArmy:
		return r.ArmyCost
	case core.UnitCity:
		return r.CityCost
	default:
		panic("no cost for unit kind " + kind.String())
	}
}
