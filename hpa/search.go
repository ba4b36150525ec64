package hpa

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/hpastar/grid"
	"github.com/katalvlaran/hpastar/hierarchy"
	"github.com/katalvlaran/hpastar/metrics"
	"github.com/katalvlaran/hpastar/smooth"
)

// Searcher answers path queries against one map. Like the map itself it is
// not safe for concurrent use.
type Searcher struct {
	m    *hierarchy.Map
	opts Options
}

// NewSearcher returns a Searcher over m. Logger and metrics default to the
// map's own.
func NewSearcher(m *hierarchy.Map, opts ...Option) *Searcher {
	cfg := Options{
		MaxPathsToRefine: Unbounded,
		Smooth:           true,
		Logger:           m.Logger(),
		Metrics:          m.Metrics(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Searcher{m: m, opts: cfg}
}

// hop is a path element during refinement.
type hop struct {
	id    int // abstract id
	level int
}

// FindPath returns a path from start to end, or an empty path if end cannot
// be reached. Errors report invalid positions only.
func (s *Searcher) FindPath(start, end grid.Position, opts ...Option) (path []PathNode, err error) {
	cfg := s.opts
	for _, opt := range opts {
		opt(&cfg)
	}
	began := time.Now()
	result := metrics.ResultFound
	defer func() {
		if err != nil {
			result = metrics.ResultError
		}
		cfg.Metrics.ObserveQuery(result, time.Since(began))
	}()

	// 1) Validate and short-circuit the trivial query.
	g := s.m.Grid()
	for _, p := range []grid.Position{start, end} {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("%w: %v", hierarchy.ErrOutOfBounds, p)
		}
		if g.IsObstacle(g.ID(p)) {
			return nil, fmt.Errorf("%w: %v", hierarchy.ErrObstacle, p)
		}
	}
	if start == end {
		result = metrics.ResultTrivial
		return []PathNode{{Level: 1, Pos: start, ID: g.ID(start)}}, nil
	}

	// 2) Insert both ends; remove them again on the way out.
	from, err := s.m.Insert(start)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, s.m.Remove(from)) }()
	to, err := s.m.Insert(end)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, s.m.Remove(to)) }()

	// 3) Coarse search on the top layer.
	top := s.m.MaxLevel()
	coarse := s.m.Search(top, s.m.WholeMap(), from, to)
	if !coarse.Found() {
		result = metrics.ResultUnreachable
		cfg.Logger.Debug("no path", slog.Any("start", start), slog.Any("end", end))
		return []PathNode{}, nil
	}
	hops := make([]hop, len(coarse.Nodes))
	for i, id := range coarse.Nodes {
		hops[i] = hop{id: id, level: top}
	}

	// 4) Refine level by level with one shared budget.
	budget := cfg.MaxPathsToRefine
	if budget < 0 {
		budget = math.MaxInt
	}
	refined := 0
	for level := top; level > 1; level-- {
		var n int
		hops, n = s.refine(hops, level, &budget)
		refined += n
	}
	cfg.Metrics.AddRefinements(refined)

	// 5) Cells, then smoothing of the concrete prefix.
	path = s.expand(hops)
	if cfg.Smooth {
		path = s.smooth(path, cfg.Metrics)
	}

	cfg.Logger.Debug("path found",
		slog.Any("start", start),
		slog.Any("end", end),
		slog.Int("cost", coarse.Cost),
		slog.Int("nodes", len(path)),
		slog.Int("refined", refined))
	return path, nil
}

// smooth runs the smoother over the leading cells of path and keeps the
// remainder as is.
func (s *Searcher) smooth(path []PathNode, m *metrics.Metrics) []PathNode {
	g := s.m.Grid()
	steps := make([]smooth.Step, len(path))
	for i, n := range path {
		steps[i] = smooth.Step{ID: n.ID, Abstract: !n.Concrete()}
	}
	sm := smooth.New(g)
	cells, rest := sm.Smooth(steps)
	m.AddExpansions(metrics.ScopeConcrete, sm.Expanded())

	out := make([]PathNode, 0, len(cells)+len(path)-rest)
	for _, id := range cells {
		out = append(out, PathNode{Level: 1, Pos: g.Position(id), ID: id})
	}
	return append(out, path[rest:]...)
}
