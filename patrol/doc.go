// Package patrol simulates a directional agent patrolling a bounded 2D grid
// with obstacles, and finds the single-cell obstructions that trap it in a loop.
//
// What:
//
//   - Grid: immutable bounds, obstacle set and start cell. WithObstacle builds
//     a variant with one extra obstacle without touching the original.
//   - Step: the move-or-rotate state machine. An obstacle ahead turns the agent
//     90° clockwise (North→East→South→West→North); an open cell ahead is
//     entered; a cell ahead outside the bounds ends the walk.
//   - Walk / Walker: the lazy sequence of agent states from a start state.
//     The walk itself never checks for cycles, so consumers bound it.
//   - VisitedCells / Candidates: the cells touched by the unmodified walk.
//   - LoopsWith: visited-state cycle detection for one obstruction.
//   - CountObstructionCycles: parallel fan-out of LoopsWith over all candidates.
//
// Why:
//
//   - Only cells on the original path can change it, so the candidate pool is
//     exactly the visited set minus the start.
//   - A walk has at most Rows×Cols×4 distinct states; a repeated state proves
//     the agent never leaves.
//
// Complexity:
//
//   - Walk / VisitedCells:       O(R×C×4) time, O(R×C) memory.
//   - LoopsWith:                 O(R×C×4) time and memory per candidate.
//   - CountObstructionCycles:    O(K×R×C×4) total work over K candidates,
//     divided across Workers goroutines.
//
// Errors:
//
//   - ErrMalformedGrid and its refinements (ErrEmptyGrid, ErrNonRectangular,
//     ErrNoStart, ErrMultipleStarts) from ParseGrid.
//   - ErrStartOutOfBounds, ErrStartBlocked from NewGrid.
//   - ErrUnboundedWalk when the unmodified walk itself never exits.
//   - context.Canceled / DeadlineExceeded from CountObstructionCycles.
package patrol
