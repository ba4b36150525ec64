package hpa

import (
	"log/slog"

	"github.com/katalvlaran/hpastar/grid"
	"github.com/katalvlaran/hpastar/metrics"
)

// Unbounded disables the refinement budget.
const Unbounded = -1

// PathNode is one element of a query result. Level 1 nodes are grid cells and
// ID is their grid id; higher levels are unrefined abstract nodes and ID is
// the abstract id.
type PathNode struct {
	Level int
	Pos   grid.Position
	ID    int
}

// Concrete reports whether n is a grid cell.
func (n PathNode) Concrete() bool { return n.Level == 1 }

// Options configures a Searcher or a single FindPath call.
type Options struct {
	MaxPathsToRefine int  // refinement budget, Unbounded for no cap
	Smooth           bool // straighten the concrete prefix
	Logger           *slog.Logger
	Metrics          *metrics.Metrics
}

// Option represents a functional option for NewSearcher and FindPath.
type Option func(*Options)

// WithMaxPathsToRefine caps the hops refined per query. Negative means no cap.
func WithMaxPathsToRefine(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = Unbounded
		}
		o.MaxPathsToRefine = n
	}
}

// WithSmoothing turns the final smoothing pass on or off.
func WithSmoothing(on bool) Option {
	return func(o *Options) {
		o.Smooth = on
	}
}

// WithLogger overrides the map's logger. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics overrides the map's metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}
