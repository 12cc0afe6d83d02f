package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frc2036/territory/internal/game/core"
	"github.com/frc2036/territory/internal/testutil"
)

func TestComputeVisibility_Diamond(t *testing.T) {
	roster := testutil.RosterWith(testutil.City(0, 4, 4))

	mask := computeVisibility(roster, 0, 9, 2)

	// 2r^2 + 2r + 1 tiles for an unclipped diamond
	assert.Equal(t, 13, mask.CountVisible())
	assert.True(t, mask.IsVisible(pos(2, 4)))
	assert.True(t, mask.IsVisible(pos(3, 3)))
	assert.False(t, mask.IsVisible(pos(2, 3)), "distance 3 is outside radius 2")
	assert.False(t, mask.IsVisible(pos(6, 5)))
}

func TestComputeVisibility_ClippedAtCorner(t *testing.T) {
	roster := testutil.RosterWith(testutil.City(0, 0, 0))

	mask := computeVisibility(roster, 0, 8, 2)

	assert.Equal(t, 6, mask.CountVisible())
	for _, c := range []core.Coordinate{pos(0, 0), pos(0, 1), pos(0, 2), pos(1, 0), pos(1, 1), pos(2, 0)} {
		assert.True(t, mask.IsVisible(c), "%s should be visible", c)
	}
}

func TestComputeVisibility_MatchesDistanceDefinition(t *testing.T) {
	roster := testutil.RosterWith(
		testutil.City(0, 0, 0),
		testutil.Worker(0, 5, 2),
		testutil.Army(0, 9, 9, 100),
		testutil.City(1, 0, 11),
		testutil.Army(1, 6, 6, 100),
	)
	const size, radius = 12, 3

	mask := computeVisibility(roster, 0, size, radius)
	owned := roster.OwnedBy(0)

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			want := false
			for _, u := range owned {
				if u.DistanceTo(pos(r, c)) <= radius {
					want = true
					break
				}
			}
			assert.Equal(t, want, mask.IsVisible(pos(r, c)), "tile (%d,%d)", r, c)
		}
	}
}

func TestComputeVisibility_Deterministic(t *testing.T) {
	roster := testutil.RosterWith(testutil.City(0, 1, 1), testutil.Worker(0, 3, 4))
	grid := testutil.UniformGrid(8, core.TileGrassland)

	first := ComputeVisibility(roster, 0, grid, 3)
	second := ComputeVisibility(roster, 0, grid, 3)

	assert.Equal(t, first, second)
}

func TestComputeVisibility_UsesConfiguredRadius(t *testing.T) {
	testutil.UseDefaultConfig(t, map[string]interface{}{"game.fog_of_war.visibility_radius": 1})
	roster := testutil.RosterWith(testutil.City(0, 3, 3))

	mask := ComputeVisibility(roster, 0, testutil.UniformGrid(8, core.TileOcean), CurrentRules().FogRadius)

	assert.Equal(t, 5, mask.CountVisible())
}

func TestComputeVisibility_NoUnitsSeesNothing(t *testing.T) {
	roster := testutil.RosterWith(testutil.City(1, 3, 3))

	mask := computeVisibility(roster, 0, 8, 3)

	assert.Zero(t, mask.CountVisible())
	assert.Equal(t, 64, core.FullVisibility(8).CountVisible())
}
