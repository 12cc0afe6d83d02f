package game

import (
	"math/rand"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/game/events"
	"github.com/frc2036/territory/internal/game/mapgen"
	"github.com/frc2036/territory/internal/game/states"
)

// MaxNameLength bounds player display names, in characters
const MaxNameLength = 32

// Game is the authoritative simulation of one match. Every exported method
// holds mu for the whole call; unexported methods expect it to be held.
// Event handlers run while mu is held and must not call back into the Game.
type Game struct {
	mu sync.Mutex

	id        string
	gs        *GameState
	machine   *states.StateMachine
	mapConfig mapgen.MapConfig
	rules     Rules
	rng       *rand.Rand
	bus       *events.EventBus
	logger    zerolog.Logger
	economy   *Economy
	combat    *Combat
}

// ID returns the unique id of this game
func (g *Game) ID() string { return g.id }

// Rules returns the constants this match is played under. They are fixed
// when the game is built.
func (g *Game) Rules() Rules { return g.rules }

// EventBus returns the bus the game publishes on
func (g *Game) EventBus() *events.EventBus { return g.bus }

// Phase returns the current lifecycle phase
func (g *Game) Phase() states.GamePhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.machine.CurrentPhase()
}

// History returns the recorded phase transitions
func (g *Game) History() []states.Transition {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.machine.GetHistory()
}

// AdminStart starts the game from the lobby, running the first player's
// pre-turn sequence, or resumes a stopped game where it left off.
func (g *Game) AdminStart(id core.Identity) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireAdmin(id); err != nil {
		return err
	}

	phase := g.machine.CurrentPhase()
	switch phase {
	case states.PhaseRunning:
		return core.WrapGameStateError(g.gs.Turn, phase.String(), core.ErrGameRunning)
	case states.PhaseStopped:
		if err := g.machine.TransitionTo(states.PhaseRunning, "admin resume"); err != nil {
			return err
		}
		g.bus.Publish(events.NewGameStartedEvent(g.id, len(g.gs.Players), g.gs.Grid.Size, true))
		return nil
	}

	if err := g.machine.TransitionTo(states.PhaseRunning, "admin start"); err != nil {
		return err
	}
	g.bus.Publish(events.NewGameStartedEvent(g.id, len(g.gs.Players), g.gs.Grid.Size, false))

	if !g.gs.HasCity(g.gs.Current) {
		// only reachable if the lobby map lost a city; let advance find a holder
		return g.advance()
	}
	g.beginTurn()
	return nil
}

// AdminStop halts a running game. Queries keep working; actions fail until
// an admin starts it again.
func (g *Game) AdminStop(id core.Identity) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireAdmin(id); err != nil {
		return err
	}
	if err := g.requireRunning(); err != nil {
		return err
	}
	return g.stop("admin stop")
}

// AdminNewMap regenerates the terrain in place. Units and players are kept.
func (g *Game) AdminNewMap(id core.Identity) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireAdmin(id); err != nil {
		return err
	}

	cfg := g.mapConfig
	cfg.Size = g.gs.Grid.Size
	g.gs.Grid.Replace(mapgen.NewGenerator(cfg, g.rng).GenerateMap())

	g.logger.Info().Int("map_size", cfg.Size).Msg("Map regenerated")
	g.bus.Publish(events.NewMapRegeneratedEvent(g.id, cfg.Size))
	return nil
}

// EndTurn passes play to the next player still holding a city.
func (g *Game) EndTurn(id core.Identity) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	action := &core.EndTurnAction{PlayerID: id.Player}
	if _, err := g.requireTurn(id); err != nil {
		return core.WrapActionError(action, err)
	}
	return g.advance()
}

// Produce builds a unit of kind at pos. Workers and armies need an own city
// on pos; a city needs pos visible and free of any city.
func (g *Game) Produce(id core.Identity, kind core.UnitKind, pos core.Coordinate) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	action := &core.ProduceAction{PlayerID: id.Player, Unit: kind, At: pos}
	p, err := g.requireTurn(id)
	if err != nil {
		return core.WrapActionError(action, err)
	}
	if !g.gs.Grid.InBounds(pos) {
		return core.WrapActionError(action, core.ErrInvalidCoordinates)
	}
	if kind != core.UnitWorker && kind != core.UnitArmy && kind != core.UnitCity {
		return core.WrapActionError(action, core.ErrInvalidUnitKind)
	}

	cost := g.rules.UnitCost(kind)
	if p.Production < cost {
		return core.WrapActionError(action, core.ErrInsufficientResources)
	}

	city := g.gs.Roster.CityAt(pos)
	if kind == core.UnitCity {
		if !computeVisibility(g.gs.Roster, p.Index, g.gs.Grid.Size, g.rules.FogRadius).IsVisible(pos) {
			return core.WrapActionError(action, core.ErrTileNotVisible)
		}
		if city != nil {
			return core.WrapActionError(action, core.ErrTileOccupied)
		}
	} else if city == nil || city.Owner != p.Index {
		return core.WrapActionError(action, core.ErrTileNotOwned)
	}

	p.Production -= cost
	u := g.gs.Roster.Add(kind, p.Index, pos, g.rules.ArmyHitPoints)

	g.logger.Debug().
		Int("player_id", p.Index).
		Str("unit_kind", kind.String()).
		Str("position", pos.String()).
		Int("cost", cost).
		Msg("Unit produced")
	g.bus.Publish(events.NewUnitProducedEvent(g.id, u, cost))
	return nil
}

// Research spends trade to raise the offensive or defensive strength.
func (g *Game) Research(id core.Identity, tech core.Technology) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	action := &core.ResearchAction{PlayerID: id.Player, Tech: tech}
	p, err := g.requireTurn(id)
	if err != nil {
		return core.WrapActionError(action, err)
	}
	if tech != core.TechOffense && tech != core.TechDefense {
		return core.WrapActionError(action, core.ErrInvalidTechnology)
	}

	cost := g.rules.TechnologyCost
	if p.Trade < cost {
		return core.WrapActionError(action, core.ErrInsufficientResources)
	}

	p.Trade -= cost
	strength := p.Upgrade(tech, g.rules.TechIncrement)

	g.logger.Debug().
		Int("player_id", p.Index).
		Str("tech", tech.String()).
		Float64("strength", strength).
		Msg("Technology researched")
	g.bus.Publish(events.NewTechResearchedEvent(g.id, p.Index, tech, strength))
	return nil
}

// MoveWorker relocates one of the caller's workers by one step. Workers
// cannot fight, so a tile holding another player's workers or armies is
// closed to them; another player's city is not.
func (g *Game) MoveWorker(id core.Identity, src, dst core.Coordinate) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	action := &core.MoveAction{PlayerID: id.Player, Unit: core.UnitWorker, From: src, To: dst}
	u, err := g.selectMover(id, action)
	if err != nil {
		return core.WrapActionError(action, err)
	}
	for _, other := range g.gs.Roster.At(dst) {
		if other.Owner != u.Owner && other.Kind != core.UnitCity {
			return core.WrapActionError(action, core.ErrTileHostile)
		}
	}

	u.MoveTo(dst)
	g.bus.Publish(events.NewUnitMovedEvent(g.id, u, src))
	return nil
}

// MoveArmy moves one of the caller's armies by one step, fighting whatever
// holds dst.
func (g *Game) MoveArmy(id core.Identity, src, dst core.Coordinate) (AttackResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	action := &core.MoveAction{PlayerID: id.Player, Unit: core.UnitArmy, From: src, To: dst}
	u, err := g.selectMover(id, action)
	if err != nil {
		return AttackResult{}, core.WrapActionError(action, err)
	}

	result := g.combat.ResolveAttack(g.gs, u, dst)
	if result.AttackerMoved {
		g.bus.Publish(events.NewUnitMovedEvent(g.id, u, src))
	}
	return result, nil
}

// RenamePlayer changes the caller's display name. It is allowed in any
// phase. Names are trimmed and must be 1 to MaxNameLength characters.
func (g *Game) RenamePlayer(id core.Identity, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.requirePlayer(id)
	if err != nil {
		return core.WrapPlayerError(id.Player, "rename", err)
	}

	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > MaxNameLength {
		return core.WrapPlayerError(p.Index, "rename", core.ErrInvalidName)
	}

	p.Name = name
	g.bus.Publish(events.NewPlayerRenamedEvent(g.id, p.Index, name))
	return nil
}

// selectMover runs the shared move checks in request order and returns the
// first unmoved unit of the requested kind the caller has on the source.
func (g *Game) selectMover(id core.Identity, action *core.MoveAction) (*core.Unit, error) {
	p, err := g.requireTurn(id)
	if err != nil {
		return nil, err
	}
	if !g.gs.Grid.InBounds(action.From) || !g.gs.Grid.InBounds(action.To) {
		return nil, core.ErrInvalidCoordinates
	}

	candidates := g.gs.Roster.Select(func(u *core.Unit) bool {
		return u.Owner == p.Index && u.Kind == action.Unit && u.Pos == action.From
	})
	if len(candidates) == 0 {
		return nil, core.ErrNoUnitAtSource
	}

	var mover *core.Unit
	for _, u := range candidates {
		if !u.Moved {
			mover = u
			break
		}
	}
	if mover == nil {
		return nil, core.ErrUnitAlreadyMoved
	}

	if err := action.Validate(g.gs.Grid); err != nil {
		return nil, err
	}
	return mover, nil
}

func (g *Game) requireAdmin(id core.Identity) error {
	switch id.Role {
	case core.RoleAdmin:
		return nil
	case core.RolePlayer, core.RoleObserver:
		return core.ErrNotAdmin
	default:
		return core.ErrInvalidIdentity
	}
}

// requireIdentity rejects identities that do not resolve to a caller of
// this game.
func (g *Game) requireIdentity(id core.Identity) error {
	switch id.Role {
	case core.RoleObserver, core.RoleAdmin:
		return nil
	case core.RolePlayer:
		if id.Player >= 0 && id.Player < len(g.gs.Players) {
			return nil
		}
	}
	return core.ErrInvalidIdentity
}

func (g *Game) requirePlayer(id core.Identity) (*Player, error) {
	if err := g.requireIdentity(id); err != nil {
		return nil, err
	}
	if !id.IsPlayer() {
		return nil, core.ErrNotPlayer
	}
	return g.gs.Player(id.Player), nil
}

func (g *Game) requireStarted() error {
	phase := g.machine.CurrentPhase()
	if !phase.HasStarted() {
		return core.WrapGameStateError(g.gs.Turn, phase.String(), core.ErrGameNotStarted)
	}
	return nil
}

func (g *Game) requireRunning() error {
	phase := g.machine.CurrentPhase()
	if !phase.CanReceiveActions() {
		return core.WrapGameStateError(g.gs.Turn, phase.String(), core.ErrGameNotStarted)
	}
	return nil
}

// requireTurn checks identity, phase and turn ownership, in that order.
func (g *Game) requireTurn(id core.Identity) (*Player, error) {
	p, err := g.requirePlayer(id)
	if err != nil {
		return nil, err
	}
	if err := g.requireRunning(); err != nil {
		return nil, err
	}
	if g.gs.Current != p.Index {
		return nil, core.ErrNotYourTurn
	}
	return p, nil
}
