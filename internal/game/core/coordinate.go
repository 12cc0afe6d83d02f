package core

import "fmt"

// Coordinate represents a position on the game grid
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a grid array index using row-major ordering
func FromIndex(idx, size int) Coordinate {
	return Coordinate{
		Row: idx / size,
		Col: idx % size,
	}
}

// IsValid checks if the coordinate is within a square grid of the given size
func (c Coordinate) IsValid(size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// ToIndex converts the coordinate to a grid array index using row-major ordering
func (c Coordinate) ToIndex(size int) int {
	return c.Row*size + c.Col
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// IsAdjacentTo reports whether other is exactly one step away
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return c.DistanceTo(other) == 1
}

// Neighbors returns the four orthogonal neighbors of this coordinate
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		{Row: c.Row - 1, Col: c.Col}, // North
		{Row: c.Row, Col: c.Col + 1}, // East
		{Row: c.Row + 1, Col: c.Col}, // South
		{Row: c.Row, Col: c.Col - 1}, // West
	}
}

// ValidNeighbors returns only the neighbors that are within the grid
func (c Coordinate) ValidNeighbors(size int) []Coordinate {
	neighbors := c.Neighbors()
	valid := make([]Coordinate, 0, 4)
	for _, n := range neighbors {
		if n.IsValid(size) {
			valid = append(valid, n)
		}
	}
	return valid
}

// Mirror returns the coordinate reflected across the vertical and/or
// horizontal centerline of a grid of the given size.
func (c Coordinate) Mirror(size int, rows, cols bool) Coordinate {
	m := c
	if rows {
		m.Row = size - 1 - c.Row
	}
	if cols {
		m.Col = size - 1 - c.Col
	}
	return m
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// StartingCorner returns the fixed city position for a player index.
// 0 is top-left, 1 top-right, 2 bottom-left, 3 bottom-right.
func StartingCorner(playerIdx, size int) Coordinate {
	switch playerIdx {
	case 0:
		return Coordinate{Row: 0, Col: 0}
	case 1:
		return Coordinate{Row: 0, Col: size - 1}
	case 2:
		return Coordinate{Row: size - 1, Col: 0}
	case 3:
		return Coordinate{Row: size - 1, Col: size - 1}
	default:
		panic(fmt.Sprintf("no starting corner for player %d: at most %d players are supported", playerIdx, MaxPlayers))
	}
}
