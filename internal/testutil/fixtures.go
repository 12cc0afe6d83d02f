package testutil

import (
	"fmt"

	"github.com/frc2036/territory/internal/game/core"
)

var fixtureKinds = map[rune]core.TileKind{
	'~': core.TileOcean,
	'.': core.TileGrassland,
	'n': core.TileHills,
	'T': core.TileForest,
	'^': core.TileMountains,
}

// UniformGrid creates a size×size grid of a single terrain kind
func UniformGrid(size int, kind core.TileKind) *core.Grid {
	return core.NewGrid(size, kind)
}

// GridFromRows builds a grid from one string per row using
// ~ ocean, . grassland, n hills, T forest, ^ mountains.
func GridFromRows(rows ...string) *core.Grid {
	grid := core.NewGrid(len(rows), core.TileGrassland)
	for r, row := range rows {
		cols := []rune(row)
		if len(cols) != len(rows) {
			panic(fmt.Sprintf("fixture row %d has %d tiles, want %d", r, len(cols), len(rows)))
		}
		for c, ch := range cols {
			kind, ok := fixtureKinds[ch]
			if !ok {
				panic(fmt.Sprintf("unknown fixture tile %q", ch))
			}
			grid.Set(core.NewCoordinate(r, c), kind)
		}
	}
	return grid
}

// Placement is one unit to put on a fixture roster
type Placement struct {
	Kind  core.UnitKind
	Owner int
	Pos   core.Coordinate
	HP    int
}

// City, Worker and Army build placements
func City(owner, row, col int) Placement {
	return Placement{Kind: core.UnitCity, Owner: owner, Pos: core.NewCoordinate(row, col)}
}

func Worker(owner, row, col int) Placement {
	return Placement{Kind: core.UnitWorker, Owner: owner, Pos: core.NewCoordinate(row, col)}
}

func Army(owner, row, col, hp int) Placement {
	return Placement{Kind: core.UnitArmy, Owner: owner, Pos: core.NewCoordinate(row, col), HP: hp}
}

// RosterWith creates a roster holding the placements in order, so unit ids
// follow the argument order starting at 1.
func RosterWith(placements ...Placement) *core.Roster {
	roster := core.NewRoster()
	for _, p := range placements {
		roster.Add(p.Kind, p.Owner, p.Pos, p.HP)
	}
	return roster
}
