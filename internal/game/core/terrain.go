package core

import "fmt"

// TileKind is the terrain type of a single grid cell.
type TileKind int

const (
	TileOcean TileKind = iota
	TileGrassland
	TileHills
	TileForest
	TileMountains

	// TileFogged only appears in views handed to players; the authoritative
	// grid never contains it.
	TileFogged TileKind = -1
)

// TerrainKinds lists the kinds a generated grid may contain, in index order.
var TerrainKinds = []TileKind{TileOcean, TileGrassland, TileHills, TileForest, TileMountains}

func (k TileKind) String() string {
	switch k {
	case TileOcean:
		return "Ocean"
	case TileGrassland:
		return "Grassland"
	case TileHills:
		return "Hills"
	case TileForest:
		return "Forest"
	case TileMountains:
		return "Mountains"
	case TileFogged:
		return "Fogged"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Yield is what one harvest of a tile adds to a player's stockpile.
type Yield struct {
	Food       int
	Production int
	Trade      int
}

// Add returns the component-wise sum of two yields.
func (y Yield) Add(other Yield) Yield {
	return Yield{
		Food:       y.Food + other.Food,
		Production: y.Production + other.Production,
		Trade:      y.Trade + other.Trade,
	}
}

var harvestYields = map[TileKind]Yield{
	TileOcean:     {Food: 2, Production: 0, Trade: 2},
	TileGrassland: {Food: 3, Production: 1, Trade: 1},
	TileHills:     {Food: 1, Production: 2, Trade: 1},
	TileForest:    {Food: 1, Production: 3, Trade: 0},
	TileMountains: {Food: 0, Production: 2, Trade: 2},
}

// YieldFor returns the harvest yield of a tile kind.
// It panics for TileFogged or any kind outside the terrain table.
func YieldFor(kind TileKind) Yield {
	y, ok := harvestYields[kind]
	if !ok {
		panic(fmt.Sprintf("no harvest yield for tile kind %s", kind))
	}
	return y
}

var combatMultipliers = map[TileKind]float64{
	TileOcean:     0.75,
	TileGrassland: 1.0,
	TileHills:     1.25,
	TileForest:    1.25,
	TileMountains: 1.5,
}

// CombatMultiplier returns the terrain strength multiplier for a unit on kind.
func CombatMultiplier(kind TileKind) float64 {
	m, ok := combatMultipliers[kind]
	if !ok {
		panic(fmt.Sprintf("no combat multiplier for tile kind %s", kind))
	}
	return m
}

// Grid is the square terrain matrix. Contents are row-major.
type Grid struct {
	Size  int
	Tiles []TileKind
}

// NewGrid returns a size×size grid filled with fill.
func NewGrid(size int, fill TileKind) *Grid {
	g := &Grid{Size: size, Tiles: make([]TileKind, size*size)}
	for i := range g.Tiles {
		g.Tiles[i] = fill
	}
	return g
}

// InBounds checks if a coordinate is on the grid
func (g *Grid) InBounds(c Coordinate) bool {
	return c.IsValid(g.Size)
}

// Kind returns the tile kind at c. The caller must check bounds.
func (g *Grid) Kind(c Coordinate) TileKind {
	return g.Tiles[c.ToIndex(g.Size)]
}

// Set overwrites the tile kind at c.
func (g *Grid) Set(c Coordinate, kind TileKind) {
	g.Tiles[c.ToIndex(g.Size)] = kind
}

// HarvestYield returns the yield of the tile at c.
func (g *Grid) HarvestYield(c Coordinate) Yield {
	return YieldFor(g.Kind(c))
}

// Replace copies other's contents into g in place.
func (g *Grid) Replace(other *Grid) {
	if other.Size != g.Size {
		panic(fmt.Sprintf("cannot replace a %dx%d grid with a %dx%d grid", g.Size, g.Size, other.Size, other.Size))
	}
	copy(g.Tiles, other.Tiles)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Size: g.Size, Tiles: make([]TileKind, len(g.Tiles))}
	copy(c.Tiles, g.Tiles)
	return c
}
