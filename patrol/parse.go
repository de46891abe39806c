package patrol

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Map alphabet.
const (
	MarkObstacle = '#'
	MarkStart    = '^'
	MarkFloor    = '.'
	MarkVisited  = 'X'
	MarkBlocker  = 'O'
)

// maxLineBytes bounds a single map row read by ParseGrid.
const maxLineBytes = 1 << 20

// ParseGrid reads a rectangular character map: '#' marks an obstacle, '^' the
// single start cell (heading North), anything else is open floor. Height is
// the line count, width the byte length of the first line. Trailing '\r' and
// trailing blank lines are ignored.
// Errors wrap ErrMalformedGrid: ErrEmptyGrid, ErrNonRectangular, ErrNoStart,
// ErrMultipleStarts; read errors are returned wrapped.
// Complexity: O(R×C) time, O(obstacles) memory.
func ParseGrid(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var (
		lines     []string
		obstacles []Position
		start     Position
		starts    int
	)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("patrol: ParseGrid: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	width := len(lines[0])
	for row, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, row, len(line), width)
		}
		for col := 0; col < len(line); col++ {
			switch line[col] {
			case MarkObstacle:
				obstacles = append(obstacles, Position{Row: row, Col: col})
			case MarkStart:
				start = Position{Row: row, Col: col}
				starts++
			}
		}
	}
	switch {
	case starts == 0:
		return nil, ErrNoStart
	case starts > 1:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleStarts, starts)
	}

	return NewGrid(len(lines), width, obstacles, start)
}

// ParseString is ParseGrid over an in-memory map.
func ParseString(s string) (*Grid, error) {
	return ParseGrid(strings.NewReader(s))
}

// Render draws g in the map alphabet, one line per row, each terminated by
// '\n'. marks overrides individual cells, e.g. MarkVisited for a walked path
// or MarkBlocker for a tested obstruction. Obstacles outside the bounds are
// not drawn.
// Complexity: O(R×C) time and memory.
func (g *Grid) Render(marks map[Position]rune) string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			p := Position{Row: row, Col: col}
			if m, ok := marks[p]; ok {
				b.WriteRune(m)
				continue
			}
			switch {
			case p == g.start:
				b.WriteRune(MarkStart)
			case g.IsObstacle(p):
				b.WriteRune(MarkObstacle)
			default:
				b.WriteRune(MarkFloor)
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}
