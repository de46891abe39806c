package patrol

import (
	"cmp"
	"slices"
)

// Grid is the immutable patrol area: half-open bounds [0,Rows)×[0,Cols),
// an obstacle set and the start cell. The agent always starts facing North.
//
// A Grid is safe for concurrent reads. Variants produced by WithObstacle share
// the base obstacle set read-only and carry their extra cells separately.
type Grid struct {
	rows, cols int
	start      Position
	obstacles  map[Position]struct{}
	extra      []Position // obstacles added by WithObstacle, never aliased
}

// NewGrid constructs a Grid from its dimensions, obstacle cells and start cell.
// It copies obstacles so later changes to the slice do not leak into the Grid.
// Duplicate obstacles collapse; obstacles outside the bounds are kept as-is
// and still turn an agent standing next to them.
// Returns ErrEmptyGrid if rows or cols is not positive, ErrStartOutOfBounds if
// start lies outside the bounds, ErrStartBlocked if start is an obstacle.
// Complexity: O(len(obstacles)) time and memory.
func NewGrid(rows, cols int, obstacles []Position, start Position) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	g := &Grid{
		rows:      rows,
		cols:      cols,
		start:     start,
		obstacles: make(map[Position]struct{}, len(obstacles)),
	}
	if !g.InBounds(start) {
		return nil, ErrStartOutOfBounds
	}
	for _, p := range obstacles {
		if p == start {
			return nil, ErrStartBlocked
		}
		g.obstacles[p] = struct{}{}
	}

	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Start returns the start cell.
func (g *Grid) Start() Position { return g.start }

// StartState returns the initial agent state: the start cell, facing North.
func (g *Grid) StartState() State {
	return State{Pos: g.start, Heading: North}
}

// MaxStates is the number of distinct agent states inside the bounds,
// Rows×Cols×4. Any walk longer than this must repeat a state.
func (g *Grid) MaxStates() int {
	return g.rows * g.cols * numHeadings
}

// InBounds reports whether p lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// IsObstacle reports whether p holds an obstacle, including any cell added
// through WithObstacle.
// Complexity: O(1) amortised; variants add O(len(extra)).
func (g *Grid) IsObstacle(p Position) bool {
	if _, ok := g.obstacles[p]; ok {
		return true
	}
	for _, e := range g.extra {
		if e == p {
			return true
		}
	}

	return false
}

// WithObstacle returns a logical copy of g with one additional obstacle at p.
// The receiver is left untouched; the base obstacle map is shared read-only.
// Placing the obstacle on the start cell is allowed here and is simply never
// evaluated by the cycle search.
// Complexity: O(len(extra)) time and memory.
func (g *Grid) WithObstacle(p Position) *Grid {
	variant := *g
	variant.extra = make([]Position, len(g.extra), len(g.extra)+1)
	copy(variant.extra, g.extra)
	variant.extra = append(variant.extra, p)

	return &variant
}

// Obstacles returns every obstacle cell in row-major order.
// Complexity: O(N log N) for N obstacles.
func (g *Grid) Obstacles() []Position {
	out := make([]Position, 0, len(g.obstacles)+len(g.extra))
	for p := range g.obstacles {
		out = append(out, p)
	}
	for _, p := range g.extra {
		if _, dup := g.obstacles[p]; !dup && !slices.Contains(out[len(g.obstacles):], p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, comparePositions)

	return out
}

// comparePositions orders positions row-major.
func comparePositions(a, b Position) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

// index maps p to a row-major index: Row*Cols + Col.
func (g *Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

// Coordinate converts a row-major index back to a Position.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Position {
	return Position{Row: idx / g.cols, Col: idx % g.cols}
}
