package mapgen

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/frc2036/territory/internal/game/core"
)

// MapConfig holds configuration for map generation
type MapConfig struct {
	Size      int
	Frequency float64 // noise samples per tile
	Octaves   int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(size int) MapConfig {
	return MapConfig{
		Size:      size,
		Frequency: 0.18,
		Octaves:   3,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a new terrain grid. Noise is sampled only on the
// wedge row < half, col <= row of the top-left quadrant; every other tile
// is a mirror of it, so all four corners see the same map.
func (g *Generator) GenerateMap() *core.Grid {
	size := g.config.Size
	grid := core.NewGrid(size, core.TileGrassland)
	noise := opensimplex.NewNormalized(g.rng.Int63())

	half := (size + 1) / 2
	for r := 0; r < half; r++ {
		for c := 0; c <= r; c++ {
			v := octaveNoise(noise, float64(r), float64(c), g.config.Octaves, g.config.Frequency, 0.5)
			kind := classify(v)
			grid.Set(core.NewCoordinate(r, c), kind)
			grid.Set(core.NewCoordinate(c, r), kind)
		}
	}

	for r := 0; r < half; r++ {
		for c := 0; c < half; c++ {
			src := core.NewCoordinate(r, c)
			kind := grid.Kind(src)
			grid.Set(src.Mirror(size, true, false), kind)
			grid.Set(src.Mirror(size, false, true), kind)
			grid.Set(src.Mirror(size, true, true), kind)
		}
	}

	return grid
}

// classify maps a normalized noise sample onto a terrain kind.
func classify(v float64) core.TileKind {
	switch {
	case v < 0.38:
		return core.TileOcean
	case v < 0.50:
		return core.TileGrassland
	case v < 0.60:
		return core.TileForest
	case v < 0.70:
		return core.TileHills
	default:
		return core.TileMountains
	}
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
