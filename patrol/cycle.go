package patrol

// visitedMask walks the unmodified grid and flags every cell the agent stands
// on, indexed row-major. The walk is bounded by MaxStates.
func (g *Grid) visitedMask() ([]bool, int, error) {
	seen := make([]bool, g.rows*g.cols)
	distinct, steps, limit := 0, 0, g.MaxStates()
	for s := range g.Walk(g.StartState()) {
		if steps == limit {
			return nil, 0, ErrUnboundedWalk
		}
		steps++
		if i := g.index(s.Pos); !seen[i] {
			seen[i] = true
			distinct++
		}
	}

	return seen, distinct, nil
}

// VisitedCells returns the set of distinct cells the agent stands on during
// the unmodified walk, start cell included.
// Returns ErrUnboundedWalk if that walk never leaves the grid.
// Complexity: O(R×C×4) time, O(R×C) memory.
func (g *Grid) VisitedCells() (map[Position]struct{}, error) {
	seen, distinct, err := g.visitedMask()
	if err != nil {
		return nil, err
	}
	cells := make(map[Position]struct{}, distinct)
	for i, ok := range seen {
		if ok {
			cells[g.Coordinate(i)] = struct{}{}
		}
	}

	return cells, nil
}

// Candidates returns the obstruction candidates in row-major order: every
// cell of the unmodified walk except the start cell. An obstacle anywhere
// else cannot alter the path.
// Complexity: O(R×C×4) time, O(R×C) memory.
func (g *Grid) Candidates() ([]Position, error) {
	seen, distinct, err := g.visitedMask()
	if err != nil {
		return nil, err
	}
	seen[g.index(g.start)] = false
	out := make([]Position, 0, distinct-1)
	for i, ok := range seen {
		if ok {
			out = append(out, g.Coordinate(i))
		}
	}

	return out, nil
}

// Loops reports whether the walk from the start state of g revisits an
// agent state before leaving the grid.
//
// Every yielded state goes into a visited set local to this call; the first
// repeat stops consumption of the walk. The set never grows beyond
// MaxStates, which bounds the run.
// Complexity: O(R×C×4) time and memory.
func (g *Grid) Loops() bool {
	seen := make(map[State]struct{})
	for s := range g.Walk(g.StartState()) {
		if _, dup := seen[s]; dup {
			return true
		}
		seen[s] = struct{}{}
	}

	return false
}

// LoopsWith reports whether adding a single obstacle at p traps the agent in
// a cycle. g itself is not modified. The start cell is never a valid
// obstruction, since the agent already stands there, so p == Start() reports
// false.
// Complexity: O(R×C×4) time and memory.
func (g *Grid) LoopsWith(p Position) bool {
	if p == g.start {
		return false
	}

	return g.WithObstacle(p).Loops()
}
