package game

import (
	"fmt"

	"github.com/frc2036/territory/internal/game/core"
)

// Submit applies a queued action on behalf of its player. It is how drivers
// that work in terms of core.Action replay a turn.
func (g *Game) Submit(action core.Action) error {
	id := core.PlayerIdentity(action.GetPlayerID())

	switch a := action.(type) {
	case *core.MoveAction:
		if a.Unit == core.UnitArmy {
			_, err := g.MoveArmy(id, a.From, a.To)
			return err
		}
		if a.Unit == core.UnitWorker {
			return g.MoveWorker(id, a.From, a.To)
		}
		return core.WrapActionError(a, core.ErrInvalidUnitKind)
	case *core.ProduceAction:
		return g.Produce(id, a.Unit, a.At)
	case *core.ResearchAction:
		return g.Research(id, a.Tech)
	case *core.EndTurnAction:
		return g.EndTurn(id)
	default:
		panic(fmt.Sprintf("unknown action type %T", action))
	}
}
