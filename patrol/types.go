// Package patrol defines positions, headings, agent states and sentinel errors.
package patrol

import (
	"errors"
	"fmt"
)

// Sentinel errors for patrol operations.
var (
	// ErrMalformedGrid is the parent of every grid-shape error raised while
	// parsing a character map.
	ErrMalformedGrid = errors.New("patrol: malformed grid")
	// ErrEmptyGrid indicates the grid has no rows or no columns.
	ErrEmptyGrid = fmt.Errorf("%w: grid must have at least one row and one column", ErrMalformedGrid)
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = fmt.Errorf("%w: all rows must have the same length", ErrMalformedGrid)
	// ErrNoStart indicates the map contains no '^' start marker.
	ErrNoStart = fmt.Errorf("%w: no start marker", ErrMalformedGrid)
	// ErrMultipleStarts indicates the map contains more than one '^'.
	ErrMultipleStarts = fmt.Errorf("%w: more than one start marker", ErrMalformedGrid)

	// ErrStartOutOfBounds indicates the start position lies outside the bounds.
	ErrStartOutOfBounds = errors.New("patrol: start position out of bounds")
	// ErrStartBlocked indicates an obstacle was placed on the start cell.
	ErrStartBlocked = errors.New("patrol: start position is an obstacle")
	// ErrUnboundedWalk indicates the unmodified walk never leaves the grid.
	ErrUnboundedWalk = errors.New("patrol: walk does not leave the grid")
	// ErrGridNil is returned when a nil *Grid is passed to a counting operation.
	ErrGridNil = errors.New("patrol: grid is nil")
)

// Position is a row/column pair. Row grows southwards, Col eastwards.
// It may be transiently negative while computing the cell ahead of an agent.
type Position struct {
	Row, Col int
}

// Add returns p shifted by (dRow, dCol).
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Heading is one of the four compass directions. The declaration order is the
// clockwise rotation order.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West

	numHeadings = 4
)

// headingDeltas holds the (dRow, dCol) unit step for each Heading.
var headingDeltas = [numHeadings][2]int{
	North: {-1, 0},
	East:  {0, 1},
	South: {1, 0},
	West:  {0, -1},
}

var headingNames = [numHeadings]string{"North", "East", "South", "West"}

// Rotate returns the heading 90° clockwise from h.
func (h Heading) Rotate() Heading {
	return (h + 1) % numHeadings
}

// Delta returns the unit step of h as (dRow, dCol).
func (h Heading) Delta() (dRow, dCol int) {
	d := headingDeltas[h%numHeadings]
	return d[0], d[1]
}

func (h Heading) String() string {
	if h >= numHeadings {
		return fmt.Sprintf("Heading(%d)", uint8(h))
	}
	return headingNames[h]
}

// State is the complete agent state: where it stands and which way it faces.
// States are comparable and serve directly as visited-set keys.
type State struct {
	Pos     Position
	Heading Heading
}

// Ahead returns the cell directly in front of the agent.
func (s State) Ahead() Position {
	dr, dc := s.Heading.Delta()
	return s.Pos.Add(dr, dc)
}

func (s State) String() string {
	return fmt.Sprintf("%s %s", s.Pos, s.Heading)
}
