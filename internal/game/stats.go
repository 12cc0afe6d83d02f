package game

import (
	"github.com/frc2036/territory/internal/game/core"
)

// UnitView is the outward description of a city, worker or army
type UnitView struct {
	ID    core.UnitID
	Owner int
	Pos   core.Coordinate
	Moved bool
	HP    int // armies only
}

// PlayerView is the public scoreboard entry of one player
type PlayerView struct {
	Index      int
	Name       string
	Cities     int
	Workers    int
	Armies     int
	Eliminated bool
}

// ResourceView is a player's private stockpile and strengths
type ResourceView struct {
	Player     int
	Production int
	Trade      int
	Food       int
	Offense    float64
	Defense    float64
}

// TurnView says whose turn it is
type TurnView struct {
	Turn   int
	Player int
	Phase  string
}

// Board returns the terrain as id may see it: tiles outside a player's
// visibility come back as core.TileFogged.
func (g *Game) Board(id core.Identity) (*core.Grid, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.boardView(id)
}

func (g *Game) boardView(id core.Identity) (*core.Grid, error) {
	mask, err := g.queryMask(id)
	if err != nil {
		return nil, err
	}

	view := g.gs.Grid.Clone()
	for i := range view.Tiles {
		if !mask.Visible[i] {
			view.Tiles[i] = core.TileFogged
		}
	}
	return view, nil
}

// Cities returns every city id can see
func (g *Game) Cities(id core.Identity) ([]UnitView, error) {
	return g.unitsOfKind(id, core.UnitCity)
}

// Armies returns every army id can see
func (g *Game) Armies(id core.Identity) ([]UnitView, error) {
	return g.unitsOfKind(id, core.UnitArmy)
}

// Workers returns every worker id can see
func (g *Game) Workers(id core.Identity) ([]UnitView, error) {
	return g.unitsOfKind(id, core.UnitWorker)
}

// Players returns the public standings of every player
func (g *Game) Players(id core.Identity) ([]PlayerView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireQuery(id); err != nil {
		return nil, err
	}

	views := make([]PlayerView, len(g.gs.Players))
	for i, p := range g.gs.Players {
		views[i] = PlayerView{
			Index:   p.Index,
			Name:    p.Name,
			Cities:  g.gs.Roster.Count(p.Index, core.UnitCity),
			Workers: g.gs.Roster.Count(p.Index, core.UnitWorker),
			Armies:  g.gs.Roster.Count(p.Index, core.UnitArmy),
		}
		views[i].Eliminated = views[i].Cities == 0
	}
	return views, nil
}

// Resources returns the caller's own stockpile, or every player's for
// observers and admins.
func (g *Game) Resources(id core.Identity) ([]ResourceView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireQuery(id); err != nil {
		return nil, err
	}

	players := g.gs.Players
	if id.IsPlayer() {
		players = []*Player{g.gs.Player(id.Player)}
	}

	views := make([]ResourceView, len(players))
	for i, p := range players {
		views[i] = ResourceView{
			Player:     p.Index,
			Production: p.Production,
			Trade:      p.Trade,
			Food:       p.Food,
			Offense:    p.Offense,
			Defense:    p.Defense,
		}
	}
	return views, nil
}

// CurrentTurn returns the turn counter and whose turn it is
func (g *Game) CurrentTurn(id core.Identity) (TurnView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireQuery(id); err != nil {
		return TurnView{}, err
	}
	return TurnView{
		Turn:   g.gs.Turn,
		Player: g.gs.Current,
		Phase:  g.machine.CurrentPhase().String(),
	}, nil
}

func (g *Game) unitsOfKind(id core.Identity, kind core.UnitKind) ([]UnitView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unitViews(id, kind)
}

func (g *Game) unitViews(id core.Identity, kind core.UnitKind) ([]UnitView, error) {
	mask, err := g.queryMask(id)
	if err != nil {
		return nil, err
	}

	units := g.gs.Roster.Select(func(u *core.Unit) bool {
		if u.Kind != kind {
			return false
		}
		return (id.IsPlayer() && u.Owner == id.Player) || mask.IsVisible(u.Pos)
	})

	views := make([]UnitView, len(units))
	for i, u := range units {
		views[i] = UnitView{ID: u.ID, Owner: u.Owner, Pos: u.Pos, Moved: u.Moved, HP: u.HP}
	}
	return views, nil
}

// requireQuery checks identity then that the game has been started.
func (g *Game) requireQuery(id core.Identity) error {
	if err := g.requireIdentity(id); err != nil {
		return err
	}
	return g.requireStarted()
}

// queryMask returns what id may see. Observers and admins see everything.
func (g *Game) queryMask(id core.Identity) (core.VisibilityMask, error) {
	if err := g.requireQuery(id); err != nil {
		return core.VisibilityMask{}, err
	}
	if id.SeesEverything() {
		return core.FullVisibility(g.gs.Grid.Size), nil
	}
	return computeVisibility(g.gs.Roster, id.Player, g.gs.Grid.Size, g.rules.FogRadius), nil
}
