package game

import (
	"fmt"
	"strings"

	"github.com/frc2036/territory/internal/game/core"
)

// ANSI color codes for terminal rendering
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

var playerColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow}

const playerSymbols = "ABCD"

var terrainSymbols = map[core.TileKind]string{
	core.TileOcean:     "~",
	core.TileGrassland: ".",
	core.TileHills:     "n",
	core.TileForest:    "T",
	core.TileMountains: "^",
	core.TileFogged:    " ",
}

// Render draws the board as id sees it. Each cell is two characters: the
// owner letter (or a space) and a symbol for the top object on the tile,
// city over army over worker, falling back to terrain.
func (g *Game) Render(id core.Identity) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	board, err := g.boardView(id)
	if err != nil {
		return "", err
	}
	cities, _ := g.unitViews(id, core.UnitCity)
	armies, _ := g.unitViews(id, core.UnitArmy)
	workers, _ := g.unitViews(id, core.UnitWorker)

	type mark struct {
		owner  int
		symbol string
	}
	marks := make(map[core.Coordinate]mark)
	// later layers overwrite earlier ones
	for _, layer := range []struct {
		units  []UnitView
		symbol string
	}{
		{workers, "w"},
		{armies, "a"},
		{cities, "#"},
	} {
		for _, u := range layer.units {
			marks[u.Pos] = mark{owner: u.Owner, symbol: layer.symbol}
		}
	}

	var sb strings.Builder
	sb.Grow((board.Size*12 + 8) * (board.Size + 3))

	sb.WriteString("   ")
	for c := 0; c < board.Size; c++ {
		fmt.Fprintf(&sb, "%2d ", c)
	}
	sb.WriteString("\n")

	for r := 0; r < board.Size; r++ {
		fmt.Fprintf(&sb, "%2d ", r)
		for c := 0; c < board.Size; c++ {
			pos := core.NewCoordinate(r, c)
			if m, ok := marks[pos]; ok {
				sb.WriteString(getPlayerColor(m.owner))
				sb.WriteByte(playerSymbols[m.owner%len(playerSymbols)])
				sb.WriteString(m.symbol)
			} else {
				kind := board.Kind(pos)
				sb.WriteString(terrainColor(kind))
				sb.WriteString(" ")
				sb.WriteString(terrainSymbols[kind])
			}
			sb.WriteString(ColorReset)
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n#=city a=army w=worker ~=ocean .=grassland n=hills T=forest ^=mountains A-D=players\n")
	return sb.String(), nil
}

func terrainColor(kind core.TileKind) string {
	switch kind {
	case core.TileOcean:
		return ColorCyan
	case core.TileGrassland, core.TileForest:
		return ColorGreen
	case core.TileHills, core.TileMountains:
		return ColorWhite
	default:
		return ColorGray
	}
}

// getPlayerColor returns the color for the given player ID
func getPlayerColor(playerID int) string {
	if playerID < 0 || playerID >= len(playerColors) {
		return ColorWhite
	}
	return playerColors[playerID]
}
