package game

import (
	"github.com/frc2036/territory/internal/game/core"
)

// ComputeVisibility returns the tiles owner can see: everything within
// radius (Manhattan) of one of its cities, workers or armies. Nothing is
// cached; two calls on the same state return equal masks.
func ComputeVisibility(roster *core.Roster, owner int, grid *core.Grid, radius int) core.VisibilityMask {
	return computeVisibility(roster, owner, grid.Size, radius)
}

func computeVisibility(roster *core.Roster, owner int, size, radius int) core.VisibilityMask {
	mask := core.NewVisibilityMask(size)
	for _, u := range roster.OwnedBy(owner) {
		revealAround(mask, u.Pos, radius)
	}
	return mask
}

// revealAround marks the diamond of the given radius around center
func revealAround(mask core.VisibilityMask, center core.Coordinate, radius int) {
	for dr := -radius; dr <= radius; dr++ {
		span := radius - abs(dr)
		for dc := -span; dc <= span; dc++ {
			c := core.NewCoordinate(center.Row+dr, center.Col+dc)
			if c.IsValid(mask.Size) {
				mask.SetVisible(c)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
