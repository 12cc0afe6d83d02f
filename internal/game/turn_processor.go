package game

import (
	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/events"
	"github.com/frc2036/territory/internal/game/states"
)

// advance hands the turn to the next player holding a city and runs that
// player's pre-turn sequence. Players without cities are skipped for good.
// The search visits each seat at most once; if nobody holds a city the game
// stops and ErrNoActivePlayers is returned.
//
// Calling advance on a game that is not running is a programming error.
func (g *Game) advance() error {
	if phase := g.machine.CurrentPhase(); phase != states.PhaseRunning {
		panic("advance called on a game in phase " + phase.String())
	}

	n := len(g.gs.Players)
	for i := 0; i < n; i++ {
		g.gs.Current = (g.gs.Current + 1) % n
		if !g.gs.HasCity(g.gs.Current) {
			g.logger.Debug().Int("player_id", g.gs.Current).Msg("Skipping eliminated player")
			continue
		}
		g.beginTurn()
		return nil
	}

	g.logger.Warn().Int("turn", g.gs.Turn).Msg("No player holds a city")
	if err := g.stop(core.ErrNoActivePlayers.Error()); err != nil {
		return err
	}
	return core.WrapGameStateError(g.gs.Turn, states.PhaseStopped.String(), core.ErrNoActivePlayers)
}

// beginTurn runs the pre-turn sequence for the current player: clear moved
// flags, harvest, then feed and starve.
func (g *Game) beginTurn() {
	g.gs.Turn++
	p := g.gs.Player(g.gs.Current)

	g.bus.Publish(events.NewTurnStartedEvent(g.id, g.gs.Turn, p.Index))

	for _, u := range g.gs.Roster.OwnedBy(p.Index) {
		u.Moved = false
	}

	g.economy.Harvest(p, g.gs.Roster, g.gs.Grid)
	g.economy.FeedAndStarve(p, g.gs.Roster, g.rng)

	g.logger.Debug().
		Int("turn", g.gs.Turn).
		Int("player_id", p.Index).
		Int("food", p.Food).
		Int("production", p.Production).
		Int("trade", p.Trade).
		Msg("Turn started")
}

func (g *Game) stop(reason string) error {
	if err := g.machine.TransitionTo(states.PhaseStopped, reason); err != nil {
		return err
	}
	g.bus.Publish(events.NewGameStoppedEvent(g.id, g.gs.Turn, reason))
	return nil
}
