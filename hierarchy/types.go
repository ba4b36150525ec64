package hierarchy

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/hpastar/cluster"
	"github.com/katalvlaran/hpastar/metrics"
)

// Sentinel errors returned by Build, Insert and Remove.
var (
	// ErrNilGrid indicates that Build received no grid.
	ErrNilGrid = errors.New("hierarchy: grid is nil")
	// ErrOutOfBounds indicates an insert position outside the map.
	ErrOutOfBounds = errors.New("hierarchy: position out of bounds")
	// ErrObstacle indicates an insert position on an obstacle cell.
	ErrObstacle = errors.New("hierarchy: position is an obstacle")
	// ErrNoCluster indicates that no cluster contains a position; the clusters
	// do not match the grid.
	ErrNoCluster = errors.New("hierarchy: no cluster contains position")
	// ErrNotInserted indicates Remove of a node with no outstanding Insert.
	ErrNotInserted = errors.New("hierarchy: node was not inserted")
)

// Options configures Build.
type Options struct {
	ClusterSize   int                   // cells per cluster side
	MaxLevel      int                   // number of abstraction levels
	EntranceStyle cluster.EntranceStyle // how wide border runs become entrances
	Workers       int                   // parallel cluster path precomputation
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
}

// Option represents a functional option for Build.
type Option func(*Options)

// WithClusterSize sets the cluster side length. Panics if n <= 0.
func WithClusterSize(n int) Option {
	if n <= 0 {
		panic(cluster.ErrBadClusterSize.Error())
	}
	return func(o *Options) {
		o.ClusterSize = n
	}
}

// WithMaxLevel sets the number of abstraction levels. Panics if n < 1.
func WithMaxLevel(n int) Option {
	if n < 1 {
		panic("hierarchy: max level must be at least 1")
	}
	return func(o *Options) {
		o.MaxLevel = n
	}
}

// WithEntranceStyle selects midpoint or end-pair entrances.
func WithEntranceStyle(s cluster.EntranceStyle) Option {
	return func(o *Options) {
		o.EntranceStyle = s
	}
}

// WithWorkers bounds the goroutines computing cluster paths. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("hierarchy: workers must be at least 1")
	}
	return func(o *Options) {
		o.Workers = n
	}
}

// WithLogger sets the logger. nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics records build and insert/remove activity into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// DefaultOptions returns the defaults used by Build:
// ClusterSize 10, MaxLevel 2, EndEntrance, one worker, discarded logs, no metrics.
func DefaultOptions() Options {
	return Options{
		ClusterSize:   10,
		MaxLevel:      2,
		EntranceStyle: cluster.EndEntrance,
		Workers:       1,
		Logger:        slog.New(slog.DiscardHandler),
	}
}
