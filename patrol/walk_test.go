package patrol_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patrol/patrol"
)

// referenceMap is the 10×10 scenario with 8 obstacles, start at (6,4).
const referenceMap = `....#.....
.........#
..........
..#.......
.......#..
..........
.#..^.....
........#.
#.........
......#...
`

// loopMap traps the agent immediately: it circles the 2×2 block around the start.
//
//	. # . .
//	. ^ . #
//	# . . .
//	. . # .
const loopMap = `.#..
.^.#
#...
..#.
`

// openLoopMap is loopMap without the obstacle at (3,2); the agent escapes south.
const openLoopMap = `.#..
.^.#
#...
....
`

func mustParse(t testing.TB, s string) *patrol.Grid {
	t.Helper()
	g, err := patrol.ParseString(s)
	require.NoError(t, err)
	return g
}

func st(row, col int, h patrol.Heading) patrol.State {
	return patrol.State{Pos: patrol.Position{Row: row, Col: col}, Heading: h}
}

//----------------------------------------------------------------------------//
// Step Tests
//----------------------------------------------------------------------------//

// TestStep_Transitions covers move, rotate and exit.
func TestStep_Transitions(t *testing.T) {
	// 3×3, obstacle at (0,1), start at (1,1)
	g := mustParse(t, ".#.\n.^.\n...\n")

	cases := []struct {
		name   string
		in     patrol.State
		want   patrol.State
		wantOK bool
	}{
		{"RotateAtObstacle", st(1, 1, patrol.North), st(1, 1, patrol.East), true},
		{"MoveEast", st(1, 1, patrol.East), st(1, 2, patrol.East), true},
		{"MoveSouth", st(1, 1, patrol.South), st(2, 1, patrol.South), true},
		{"MoveWest", st(1, 1, patrol.West), st(1, 0, patrol.West), true},
		{"ExitEast", st(1, 2, patrol.East), patrol.State{}, false},
		{"ExitNorth", st(0, 0, patrol.North), patrol.State{}, false},
		{"ExitWest", st(2, 0, patrol.West), patrol.State{}, false},
		{"ExitSouth", st(2, 2, patrol.South), patrol.State{}, false},
		{"RotateFromWest", st(0, 2, patrol.West), st(0, 2, patrol.North), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := g.Step(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestStep_ObstacleBeyondEdge keeps the obstacle-before-boundary precedence:
// an obstacle outside the bounds still turns the agent.
func TestStep_ObstacleBeyondEdge(t *testing.T) {
	g := mustParse(t, "^\n")
	v := g.WithObstacle(patrol.Position{Row: -1, Col: 0})

	next, ok := v.Step(g.StartState())
	require.True(t, ok)
	assert.Equal(t, st(0, 0, patrol.East), next)

	path, err := v.Path()
	require.NoError(t, err)
	assert.Equal(t, []patrol.State{st(0, 0, patrol.North), st(0, 0, patrol.East)}, path)
}

//----------------------------------------------------------------------------//
// Walk Tests
//----------------------------------------------------------------------------//

// TestWalk_EdgeStartYieldsOnlyStart: a start on the north edge with nothing
// ahead exits right after the first state.
func TestWalk_EdgeStartYieldsOnlyStart(t *testing.T) {
	g := mustParse(t, "..^..\n.....\n")
	var got []patrol.State
	for s := range g.Walk(g.StartState()) {
		got = append(got, s)
	}
	assert.Equal(t, []patrol.State{st(0, 2, patrol.North)}, got)
}

// TestWalk_ObstacleDirectlyAhead: the first transition must be a rotation.
func TestWalk_ObstacleDirectlyAhead(t *testing.T) {
	g := mustParse(t, "#\n^\n")
	path, err := g.Path()
	require.NoError(t, err)
	want := []patrol.State{st(1, 0, patrol.North), st(1, 0, patrol.East)}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("Path() mismatch (-want +got):\n%s", diff)
	}
}

// TestWalk_StopsEarly ensures a looping walk can be abandoned by the consumer.
func TestWalk_StopsEarly(t *testing.T) {
	g := mustParse(t, loopMap)
	n := 0
	for range g.Walk(g.StartState()) {
		n++
		if n == 100 {
			break
		}
	}
	assert.Equal(t, 100, n)
}

// TestWalk_Restartable checks that two walks over the same grid are identical.
func TestWalk_Restartable(t *testing.T) {
	g := mustParse(t, referenceMap)
	first, err := g.Path()
	require.NoError(t, err)
	second, err := g.Path()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, g.StartState(), first[0])
}

// TestWalker_MatchesWalk compares caller-driven iteration with the range form.
func TestWalker_MatchesWalk(t *testing.T) {
	g := mustParse(t, referenceMap)
	want, err := g.Path()
	require.NoError(t, err)

	w := patrol.NewWalker(g, g.StartState())
	var got []patrol.State
	for s, ok := w.Next(); ok; s, ok = w.Next() {
		got = append(got, s)
	}
	assert.Equal(t, want, got)

	_, ok := w.Next()
	assert.False(t, ok, "exhausted walker must stay exhausted")
}

// TestPath_Unbounded reports ErrUnboundedWalk when the original walk loops.
func TestPath_Unbounded(t *testing.T) {
	g := mustParse(t, loopMap)
	_, err := g.Path()
	assert.True(t, errors.Is(err, patrol.ErrUnboundedWalk), "got %v", err)
}
