package game

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/events"
)

// Economy runs the per-turn harvest and upkeep for one player. Each
// operation must run exactly once per turn; calling either twice
// double-applies it.
type Economy struct {
	publisher events.Publisher
	gameID    string
	rules     Rules
	logger    zerolog.Logger
}

// NewEconomy creates a new economy engine
func NewEconomy(publisher events.Publisher, gameID string, rules Rules, logger zerolog.Logger) *Economy {
	return &Economy{
		publisher: publisher,
		gameID:    gameID,
		rules:     rules,
		logger:    logger.With().Str("component", "Economy").Logger(),
	}
}

// Harvest credits p with the yield of every tile it occupies. Cities are
// visited before workers and each tile pays out once no matter how many of
// p's units share it. A worker on a tile hosting any city also earns the
// trade route bonus.
func (ec *Economy) Harvest(p *Player, roster *core.Roster, grid *core.Grid) core.Yield {
	harvested := make(map[core.Coordinate]struct{})
	total := core.Yield{}

	collect := func(pos core.Coordinate) {
		if _, done := harvested[pos]; done {
			return
		}
		harvested[pos] = struct{}{}
		total = total.Add(grid.HarvestYield(pos))
	}

	for _, city := range roster.Owned(p.Index, core.UnitCity) {
		collect(city.Pos)
	}

	routes := 0
	for _, worker := range roster.Owned(p.Index, core.UnitWorker) {
		collect(worker.Pos)
		if roster.CityAt(worker.Pos) != nil {
			routes++
		}
	}
	total.Trade += routes * ec.rules.TradeRouteBonus

	p.AddYield(total)

	ec.logger.Debug().
		Int("player_id", p.Index).
		Int("tiles", len(harvested)).
		Int("trade_routes", routes).
		Int("food", total.Food).
		Int("production", total.Production).
		Int("trade", total.Trade).
		Msg("Harvest applied")

	if ec.publisher != nil {
		ec.publisher.Publish(events.NewHarvestAppliedEvent(ec.gameID, p.Index, total, len(harvested)))
	}

	return total
}

// FeedAndStarve makes every worker, then every army, of p eat. Order within
// each group is shuffled with rng so a shortage does not always hit the same
// units. A unit that drives Food below zero starves and leaves the board.
// Food is clamped to zero afterwards. The starved units are returned.
func (ec *Economy) FeedAndStarve(p *Player, roster *core.Roster, rng *rand.Rand) []*core.Unit {
	ration := ec.rules.FoodPerUnit
	var starved []*core.Unit

	for _, kind := range []core.UnitKind{core.UnitWorker, core.UnitArmy} {
		units := roster.Owned(p.Index, kind)
		rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })

		for _, u := range units {
			p.Food -= ration
			if p.Food >= 0 {
				continue
			}
			roster.Remove(u.ID)
			starved = append(starved, u)
			if ec.publisher != nil {
				ec.publisher.Publish(events.NewUnitStarvedEvent(ec.gameID, u))
			}
		}
	}

	if p.Food < 0 {
		p.Food = 0
	}

	if len(starved) > 0 {
		ec.logger.Info().
			Int("player_id", p.Index).
			Int("starved", len(starved)).
			Msg("Units starved")
	}

	return starved
}
