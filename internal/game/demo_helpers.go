package game

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/frc2036/territory/internal/game/core"
)

// GenerateRandomActions picks a plausible set of actions for the player
// whose turn it is, ending with an end-turn. It is meant for demos and
// smoke tests, not play: some actions may still be rejected.
func GenerateRandomActions(g *Game, rng *rand.Rand) []core.Action {
	g.mu.Lock()
	defer g.mu.Unlock()

	gs := g.gs
	p := gs.Player(gs.Current)
	var actions []core.Action

	if p.Trade >= g.rules.TechnologyCost && rng.Float32() < 0.5 {
		tech := core.TechOffense
		if rng.Intn(2) == 0 {
			tech = core.TechDefense
		}
		actions = append(actions, &core.ResearchAction{PlayerID: p.Index, Tech: tech})
	}

	budget := p.Production
	for _, city := range gs.Roster.Owned(p.Index, core.UnitCity) {
		kind := core.UnitWorker
		if rng.Float32() < 0.5 {
			kind = core.UnitArmy
		}
		if budget < g.rules.UnitCost(kind) {
			continue
		}
		budget -= g.rules.UnitCost(kind)
		actions = append(actions, &core.ProduceAction{PlayerID: p.Index, Unit: kind, At: city.Pos})
	}

	for _, u := range gs.Roster.OwnedBy(p.Index) {
		if !u.IsMobile() || u.Moved || rng.Float32() > 0.7 {
			continue
		}
		options := u.Pos.ValidNeighbors(gs.Grid.Size)
		if len(options) == 0 {
			continue
		}
		to := options[rng.Intn(len(options))]
		actions = append(actions, &core.MoveAction{PlayerID: p.Index, Unit: u.Kind, From: u.Pos, To: to})
		log.Debug().
			Int("player_id", p.Index).
			Str("unit_kind", u.Kind.String()).
			Str("from", u.Pos.String()).
			Str("to", to.String()).
			Msg("Generated random action")
	}

	return append(actions, &core.EndTurnAction{PlayerID: p.Index})
}
