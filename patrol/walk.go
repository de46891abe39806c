package patrol

import (
	"iter"
)

// Step applies one transition of the agent state machine to s.
//
// Behavior:
//  1. If the cell ahead holds an obstacle, the agent turns 90° clockwise in place.
//  2. Otherwise, if the cell ahead lies outside the bounds, there is no
//     successor and ok is false.
//  3. Otherwise the agent moves one cell forward, keeping its heading.
//
// The obstacle check runs first, so an obstacle sitting beyond the edge still
// turns the agent instead of letting it leave.
// Complexity: O(1).
func (g *Grid) Step(s State) (next State, ok bool) {
	ahead := s.Ahead()
	if g.IsObstacle(ahead) {
		return State{Pos: s.Pos, Heading: s.Heading.Rotate()}, true
	}
	if !g.InBounds(ahead) {
		return State{}, false
	}

	return State{Pos: ahead, Heading: s.Heading}, true
}

// Walk returns the lazy sequence of agent states starting at start.
// start is always yielded first, then Step is applied until the agent leaves
// the grid or the consumer stops ranging. The sequence performs no cycle
// detection and is infinite when the agent loops; callers bound it.
//
// Each call returns an independent, restartable sequence.
func (g *Grid) Walk(start State) iter.Seq[State] {
	return func(yield func(State) bool) {
		s := start
		for {
			if !yield(s) {
				return
			}
			next, ok := g.Step(s)
			if !ok {
				return
			}
			s = next
		}
	}
}

// Walker drives a walk one state at a time. The zero value is not usable;
// construct one with NewWalker.
type Walker struct {
	grid  *Grid
	state State
	first bool
	done  bool
}

// NewWalker returns a Walker positioned before start.
func NewWalker(g *Grid, start State) *Walker {
	return &Walker{grid: g, state: start, first: true}
}

// Next returns the next state of the walk, or ok=false once the agent has
// left the grid. The first call always returns the start state.
func (w *Walker) Next() (State, bool) {
	if w.done {
		return State{}, false
	}
	if w.first {
		w.first = false
		return w.state, true
	}
	next, ok := w.grid.Step(w.state)
	if !ok {
		w.done = true
		return State{}, false
	}
	w.state = next

	return next, true
}

// Path materialises the walk from the start state of g.
// Returns ErrUnboundedWalk if the walk yields more than MaxStates states,
// which can only happen when it loops.
// Complexity: O(R×C×4) time and memory.
func (g *Grid) Path() ([]State, error) {
	limit := g.MaxStates()
	var path []State
	for s := range g.Walk(g.StartState()) {
		if len(path) == limit {
			return nil, ErrUnboundedWalk
		}
		path = append(path, s)
	}

	return path, nil
}
