package patrol

import (
	"context"
	"runtime"

	"go.uber.org/zap"
)

// Option configures optional behavior of CountObstructionCycles.
type Option func(*SearchOptions)

// SearchOptions holds configurable parameters for the parallel obstruction
// search. None of them changes the result, only how it is computed.
type SearchOptions struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	// Candidates not yet started when it is cancelled are skipped and the
	// search returns the context error.
	Ctx context.Context

	// Workers caps the number of concurrent cycle checks. Values < 1 fall
	// back to runtime.GOMAXPROCS(0).
	Workers int

	// Logger receives a debug entry per candidate and an info summary.
	// Defaults to a no-op logger.
	Logger *zap.Logger

	// OnCandidate, if non-nil, is invoked after each candidate is evaluated.
	// It is called from worker goroutines and must be safe for concurrent use.
	OnCandidate func(p Position, loops bool)
}

// DefaultOptions returns a SearchOptions struct with:
//   - Background context
//   - Workers = runtime.GOMAXPROCS(0)
//   - No-op logger
//   - No candidate hook
func DefaultOptions() SearchOptions {
	return SearchOptions{
		Ctx:         context.Background(),
		Workers:     runtime.GOMAXPROCS(0),
		Logger:      zap.NewNop(),
		OnCandidate: nil,
	}
}

// WithContext returns an Option that sets the Context for the search.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *SearchOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithWorkers returns an Option that limits concurrency to n goroutines.
// n < 1 keeps the default.
func WithWorkers(n int) Option {
	return func(o *SearchOptions) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithLogger returns an Option that installs l for search diagnostics.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *SearchOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnCandidate returns an Option that installs fn as a per-candidate hook.
func WithOnCandidate(fn func(p Position, loops bool)) Option {
	return func(o *SearchOptions) {
		o.OnCandidate = fn
	}
}
