package game

import (
	"fmt"

	"github.com/frc2036/territory/internal/game/core"
)

// Player holds one participant's stockpile and strengths. Units are not
// stored here; they live in the roster keyed by Index.
type Player struct {
	Index      int
	Name       string
	Production int
	Trade      int
	Food       int
	Offense    float64
	Defense    float64
}

func newPlayer(idx int) *Player {
	return &Player{
		Index:   idx,
		Name:    fmt.Sprintf("Player %d", idx),
		Offense: 1.0,
		Defense: 1.0,
	}
}

// AddYield credits a harvest.
func (p *Player) AddYield(y core.Yield) {
	p.Food += y.Food
	p.Production += y.Production
	p.Trade += y.Trade
}

// Strength returns the multiplier tech improves.
func (p *Player) Strength(tech core.Technology) float64 {
	if tech == core.TechOffense {
		return p.Offense
	}
	return p.Defense
}

// Upgrade raises the multiplier tech improves by inc and returns the new value.
func (p *Player) Upgrade(tech core.Technology, inc float64) float64 {
	if tech == core.TechOffense {
		p.Offense += inc
		return p.Offense
	}
	p.Defense += inc
	return p.Defense
}

// GameState is the authoritative board. It carries no lock of its own;
// Game serialises all access to it.
type GameState struct {
	Grid    *core.Grid
	Players []*Player
	Roster  *core.Roster
	// Current is the index of the player whose turn it is
	Current int
	// Turn counts turns begun since the game first started
	Turn int
}

// Player returns the player at idx. It panics on an index outside the roster.
func (gs *GameState) Player(idx int) *Player {
	if idx < 0 || idx >= len(gs.Players) {
		panic(fmt.Sprintf("player index %d outside roster of %d", idx, len(gs.Players)))
	}
	return gs.Players[idx]
}

// HasCity reports whether idx still holds at least one city.
func (gs *GameState) HasCity(idx int) bool {
	return gs.Roster.Count(idx, core.UnitCity) > 0
}
