package hierarchy

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hpastar/abstract"
	"github.com/katalvlaran/hpastar/astar"
	"github.com/katalvlaran/hpastar/cluster"
	"github.com/katalvlaran/hpastar/grid"
	"github.com/katalvlaran/hpastar/metrics"
)

// Map is a grid together with its clusters and layered abstract graph.
type Map struct {
	grid     *grid.Graph
	opts     Options
	clusters []*cluster.Cluster
	perRow   int
	layers   *abstract.Layers

	concreteToAbstract map[int]int
	backups            map[int]Backup
	refs               map[int]int
	nextID             int
}

// Build constructs the hierarchy of g. ctx cancels the cluster path
// precomputation, the only step that may run in parallel.
func Build(ctx context.Context, g *grid.Graph, opts ...Option) (*Map, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	started := time.Now()

	// 1) Clusters and transient entrances.
	clusters, entrances, err := cluster.Build(g, cfg.ClusterSize, cfg.EntranceStyle)
	if err != nil {
		return nil, fmt.Errorf("hierarchy: %w", err)
	}
	m := &Map{
		grid:               g,
		opts:               cfg,
		clusters:           clusters,
		perRow:             (g.Width() + cfg.ClusterSize - 1) / cfg.ClusterSize,
		layers:             abstract.NewLayers(cfg.MaxLevel),
		concreteToAbstract: make(map[int]int),
		backups:            make(map[int]Backup),
		refs:               make(map[int]int),
	}

	// 2) Abstract nodes, then 3) inter-cluster edges.
	m.createEntranceNodes(entrances)
	for _, e := range entrances {
		level := e.Level(cfg.MaxLevel)
		src, dst := m.concreteToAbstract[e.Src], m.concreteToAbstract[e.Dst]
		cost := cluster.InterEdgeCost(g.Tile(), e.Orientation)
		for l := 1; l <= level; l++ {
			m.layers.At(l).AddEdge(src, dst, cost, nil)
			m.layers.At(l).AddEdge(dst, src, cost, nil)
		}
	}

	// 4) Per-cluster path caches and level-1 intra-cluster edges.
	if err = m.computeClusterPaths(ctx); err != nil {
		return nil, err
	}
	m.createIntraClusterEdges()

	// 5) Levels 2..MaxLevel.
	for level := 2; level <= cfg.MaxLevel; level++ {
		m.createHierarchicalEdges(level)
	}

	elapsed := time.Since(started)
	cfg.Metrics.ObserveBuild(elapsed)
	attrs := []any{
		slog.Int("width", g.Width()),
		slog.Int("height", g.Height()),
		slog.String("tile", g.Tile().String()),
		slog.Int("clusters", len(clusters)),
		slog.Int("entrances", len(entrances)),
		slog.Duration("elapsed", elapsed),
	}
	for level := 1; level <= cfg.MaxLevel; level++ {
		nodes, edges := m.NodeCount(level), m.EdgeCount(level)
		cfg.Metrics.SetLevelSize(strconv.Itoa(level), nodes, edges)
		attrs = append(attrs, slog.Group("level"+strconv.Itoa(level), slog.Int("nodes", nodes), slog.Int("edges", edges)))
	}
	cfg.Logger.Info("hierarchical map built", attrs...)

	return m, nil
}

// createEntranceNodes gives every entrance cell one abstract node in
// first-seen order and registers it up to its highest entrance level.
func (m *Map) createEntranceNodes(entrances []cluster.Entrance) {
	byConcrete := make(map[int]*abstract.NodeInfo)
	var order []*abstract.NodeInfo
	for _, e := range entrances {
		level := e.Level(m.opts.MaxLevel)
		ends := [2]struct {
			concrete int
			owner    *cluster.Cluster
		}{{e.Src, e.Cluster1}, {e.Dst, e.Cluster2}}
		for _, end := range ends {
			if info, ok := byConcrete[end.concrete]; ok {
				info.Level = max(info.Level, level)
				continue
			}
			pos := m.grid.Position(end.concrete)
			end.owner.AddEntrance(m.nextID, end.owner.Local(pos))
			info := &abstract.NodeInfo{
				ID:         m.nextID,
				Level:      level,
				ClusterID:  end.owner.ID,
				Pos:        pos,
				ConcreteID: end.concrete,
			}
			byConcrete[end.concrete] = info
			order = append(order, info)
			m.nextID++
		}
	}
	for _, info := range order {
		m.concreteToAbstract[info.ConcreteID] = info.ID
		for l := 1; l <= info.Level; l++ {
			m.layers.At(l).AddNode(info)
		}
	}
}

// computeClusterPaths fills every cluster cache, Workers clusters at a time.
// Each cluster owns its cache, so the result does not depend on Workers.
func (m *Map) computeClusterPaths(ctx context.Context) error {
	expanded := make([]int, len(m.clusters))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(m.opts.Workers)
	for i, c := range m.clusters {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			expanded[i] = c.ComputePaths()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("hierarchy: cluster paths: %w", err)
	}
	total := 0
	for _, n := range expanded {
		total += n
	}
	m.opts.Metrics.AddExpansions(metrics.ScopeCluster, total)
	return nil
}

func (m *Map) createIntraClusterEdges() {
	l1 := m.layers.At(1)
	for _, c := range m.clusters {
		for _, p1 := range c.Entrances() {
			for _, p2 := range c.Entrances() {
				if p1.AbstractID == p2.AbstractID {
					continue
				}
				if d, ok := c.Distance(p1.AbstractID, p2.AbstractID); ok {
					l1.AddEdge(p1.AbstractID, p2.AbstractID, d, nil)
				}
			}
		}
	}
}

// createHierarchicalEdges links every pair of level nodes sharing a block.
func (m *Map) createHierarchicalEdges(level int) {
	n := 1 << (level - 1)
	layer := m.layers.At(level)

	type key struct{ x, y int }
	groups := make(map[key][]*cluster.Cluster)
	var order []key
	for _, c := range m.clusters {
		k := key{c.X / n, c.Y / n}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], c)
	}

	for _, k := range order {
		var ids []int
		for _, c := range groups[k] {
			for _, e := range c.Entrances() {
				if layer.HasNode(e.AbstractID) {
					ids = append(ids, e.AbstractID)
				}
			}
		}
		if len(ids) == 0 {
			continue
		}
		win := m.GroupWindow(layer.Info(ids[0]).Pos, level)
		for _, a := range ids {
			for _, b := range ids {
				if a != b {
					m.connect(a, b, level, win)
				}
			}
		}
	}
}

// connect searches a→b on the layer below level inside win and, if found,
// stores the result as a pair of level edges.
func (m *Map) connect(a, b, level int, win abstract.Window) {
	layer := m.layers.At(level)
	if _, ok := layer.Edge(a, b); ok {
		return
	}
	p := m.Search(level-1, win, a, b)
	if !p.Found() {
		return
	}
	fwd := abstract.Edge{Target: b, Cost: p.Cost, InnerPath: p.Nodes}
	layer.AddEdge(a, b, fwd.Cost, fwd.InnerPath)
	back := fwd.Reversed(a)
	layer.AddEdge(b, a, back.Cost, back.InnerPath)
}

// Search runs A* on one layer restricted to win.
func (m *Map) Search(level int, win abstract.Window, from, to int) astar.Path {
	p := astar.FindPath(m.View(level, win), from, to)
	m.opts.Metrics.AddExpansions(metrics.ScopeAbstract, p.Expanded)
	return p
}

// View returns the layer of level restricted to win.
func (m *Map) View(level int, win abstract.Window) abstract.View {
	return abstract.NewView(m.layers.At(level), win, m.grid.PositionHeuristic())
}

//----------------------------------------------------------------------------//
// Accessors
//----------------------------------------------------------------------------//

// Grid returns the concrete graph.
func (m *Map) Grid() *grid.Graph { return m.grid }

// MaxLevel returns the number of abstraction levels.
func (m *Map) MaxLevel() int { return m.opts.MaxLevel }

// ClusterSize returns the cluster side length.
func (m *Map) ClusterSize() int { return m.opts.ClusterSize }

// Logger returns the configured logger.
func (m *Map) Logger() *slog.Logger { return m.opts.Logger }

// Metrics returns the configured metrics, possibly nil.
func (m *Map) Metrics() *metrics.Metrics { return m.opts.Metrics }

// Clusters returns every cluster in id order.
func (m *Map) Clusters() []*cluster.Cluster { return m.clusters }

// Cluster returns the cluster with the given id.
func (m *Map) Cluster(id int) *cluster.Cluster { return m.clusters[id] }

// Layer returns the abstract graph of level.
func (m *Map) Layer(level int) *abstract.Graph { return m.layers.At(level) }

// Info returns the node record of an abstract id, or nil.
func (m *Map) Info(id int) *abstract.NodeInfo { return m.layers.Info(id) }

// NodeCount returns the number of nodes at level.
func (m *Map) NodeCount(level int) int { return m.layers.At(level).NodeCount() }

// EdgeCount returns the number of directed edges at level.
func (m *Map) EdgeCount(level int) int { return m.layers.At(level).EdgeCount() }

// AbstractNodeAt returns the abstract node standing on pos, if any.
func (m *Map) AbstractNodeAt(pos grid.Position) (int, bool) {
	if !m.grid.InBounds(pos) {
		return 0, false
	}
	id, ok := m.concreteToAbstract[m.grid.ID(pos)]
	return id, ok
}

// Backup returns the snapshot held for an inserted entrance node.
func (m *Map) Backup(id int) (Backup, bool) {
	b, ok := m.backups[id]
	return b, ok
}

// FindClusterForPosition returns the cluster containing pos.
func (m *Map) FindClusterForPosition(pos grid.Position) (*cluster.Cluster, bool) {
	if !m.grid.InBounds(pos) {
		return nil, false
	}
	i := (pos.Y/m.opts.ClusterSize)*m.perRow + pos.X/m.opts.ClusterSize
	if i >= len(m.clusters) || !m.clusters[i].Contains(pos) {
		return nil, false
	}
	return m.clusters[i], true
}

func (m *Map) blockSize(level int) int { return m.opts.ClusterSize << (level - 1) }

// GroupWindow returns the window of the level block containing pos,
// clipped to the map.
func (m *Map) GroupWindow(pos grid.Position, level int) abstract.Window {
	off := m.blockSize(level)
	x0, y0 := pos.X-pos.X%off, pos.Y-pos.Y%off
	return abstract.Window{
		X0: x0,
		Y0: y0,
		X1: min(m.grid.Width()-1, x0+off-1),
		Y1: min(m.grid.Height()-1, y0+off-1),
	}
}

// WholeMap returns the window covering every cell.
func (m *Map) WholeMap() abstract.Window {
	return abstract.Window{X0: 0, Y0: 0, X1: m.grid.Width() - 1, Y1: m.grid.Height() - 1}
}

// SameGroup reports whether two abstract nodes lie in the same level block.
func (m *Map) SameGroup(a, b, level int) bool {
	pa, pb := m.Info(a).Pos, m.Info(b).Pos
	off := m.blockSize(level)
	return pa.X/off == pb.X/off && pa.Y/off == pb.Y/off
}
