package patrol

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/katalvlaran/patrol/patrol"

// CountVisitedCells returns how many distinct cells the agent stands on
// before it leaves g, start cell included. The result is always ≥ 1.
// Returns ErrGridNil for a nil grid and ErrUnboundedWalk if the unmodified
// walk never leaves the grid.
// Complexity: O(R×C×4) time, O(R×C) memory.
func CountVisitedCells(g *Grid) (int, error) {
	if g == nil {
		return 0, ErrGridNil
	}
	cells, err := g.VisitedCells()
	if err != nil {
		return 0, fmt.Errorf("patrol: CountVisitedCells: %w", err)
	}

	return len(cells), nil
}

// CountObstructionCycles counts the cells where a single added obstacle
// traps the agent in a loop.
//
// Behavior:
//  1. Enumerate the candidates: cells of the unmodified walk, minus the start.
//  2. Fan the candidates out over at most Workers goroutines. Each worker
//     builds its own grid variant and visited set; the base grid is only read.
//  3. Sum the positive results. The sum is order-independent, so the count is
//     the same for any worker count or scheduling.
//
// Returns ErrGridNil for a nil grid, ErrUnboundedWalk if the unmodified walk
// never leaves the grid, or the context error if the search was cancelled.
// Complexity: O(K×R×C×4) total work for K candidates.
func CountObstructionCycles(g *Grid, opts ...Option) (int, error) {
	if g == nil {
		return 0, ErrGridNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger

	// 1) Candidate pool from the unmodified walk
	candidates, err := g.Candidates()
	if err != nil {
		return 0, fmt.Errorf("patrol: CountObstructionCycles: %w", err)
	}

	ctx, span := otel.Tracer(tracerName).Start(o.Ctx, "patrol.CountObstructionCycles",
		trace.WithAttributes(
			attribute.Int("grid.rows", g.rows),
			attribute.Int("grid.cols", g.cols),
			attribute.Int("candidates", len(candidates)),
			attribute.Int("workers", o.Workers),
		))
	defer span.End()

	// 2) Parallel map over independent candidates
	started := time.Now()
	var loops atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.Workers)
	for _, p := range candidates {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			hit := g.LoopsWith(p)
			if hit {
				loops.Add(1)
			}
			log.Debug("obstruction evaluated",
				zap.Int("row", p.Row),
				zap.Int("col", p.Col),
				zap.Bool("loops", hit))
			if o.OnCandidate != nil {
				o.OnCandidate(p, hit)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("patrol: CountObstructionCycles: %w", err)
	}
	// The loop above may stop spawning without any worker observing the
	// cancellation.
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("patrol: CountObstructionCycles: %w", err)
	}

	// 3) Reduce
	total := int(loops.Load())
	span.SetAttributes(attribute.Int("loops", total))
	log.Info("obstruction search finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("loops", total),
		zap.Int("workers", o.Workers),
		zap.Duration("elapsed", time.Since(started)))

	return total, nil
}
