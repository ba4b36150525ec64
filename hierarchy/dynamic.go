package hierarchy

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/katalvlaran/hpastar/abstract"
	"github.com/katalvlaran/hpastar/grid"
	"github.com/katalvlaran/hpastar/metrics"
)

// Insert makes pos an abstract node on every level and returns its id.
//
//   - A cell already inserted gets its reference count raised.
//   - An entrance cell keeps its id; its edges are snapshotted before the
//     higher-level links are added.
//   - Any other free cell gets a fresh id, becomes an entrance point of its
//     cluster and is linked to every reachable entrance point there.
//
// Every Insert must be paired with one Remove of the returned id.
func (m *Map) Insert(pos grid.Position) (int, error) {
	if !m.grid.InBounds(pos) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
	}
	concrete := m.grid.ID(pos)
	if m.grid.IsObstacle(concrete) {
		return 0, fmt.Errorf("%w: %v", ErrObstacle, pos)
	}
	m.opts.Metrics.IncDynamic(metrics.OpInsert)

	if id, ok := m.concreteToAbstract[concrete]; ok {
		if m.refs[id] > 0 {
			m.refs[id]++
			return id, nil
		}
		info := m.layers.Info(id)
		m.backups[id] = snapshot(m.layers, info)
		m.refs[id] = 1
		m.layers.AddNodeToAll(info)
		m.addHierarchicalEdges(info)
		m.opts.Logger.Debug("entrance node taken over",
			slog.Int("id", id), slog.Any("pos", pos), slog.Int("backup_level", m.backups[id].level))
		return id, nil
	}

	c, ok := m.FindClusterForPosition(pos)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNoCluster, pos)
	}
	id := m.nextID
	m.nextID++
	c.AddEntrance(id, c.Local(pos))
	m.opts.Metrics.AddExpansions(metrics.ScopeCluster, c.UpdatePathsFor(id))
	m.concreteToAbstract[concrete] = id

	info := &abstract.NodeInfo{ID: id, Level: 1, ClusterID: c.ID, Pos: pos, ConcreteID: concrete}
	m.layers.AddNodeToAll(info)
	l1 := m.layers.At(1)
	for _, e := range c.Entrances() {
		if e.AbstractID == id {
			continue
		}
		if d, ok := c.Distance(id, e.AbstractID); ok {
			l1.AddEdge(e.AbstractID, id, d, nil)
			l1.AddEdge(id, e.AbstractID, d, nil)
		}
	}
	m.refs[id] = 1
	m.addHierarchicalEdges(info)
	m.opts.Logger.Debug("node inserted", slog.Int("id", id), slog.Any("pos", pos), slog.Int("cluster", c.ID))
	return id, nil
}

// addHierarchicalEdges links info on levels 2..MaxLevel to every node of its
// block, the same way Build links entrances.
func (m *Map) addHierarchicalEdges(info *abstract.NodeInfo) {
	info.Level = m.opts.MaxLevel
	for level := 2; level <= m.opts.MaxLevel; level++ {
		win := m.GroupWindow(info.Pos, level)
		layer := m.layers.At(level)
		for _, c := range m.clusters {
			if !win.Contains(c.Origin) {
				continue
			}
			for _, e := range c.Entrances() {
				if e.AbstractID == info.ID || !layer.HasNode(e.AbstractID) {
					continue
				}
				m.connect(info.ID, e.AbstractID, level, win)
			}
		}
	}
}

// Remove undoes one Insert of id. When the last reference goes away the node
// is either restored from its backup or deleted from every layer.
func (m *Map) Remove(id int) error {
	if m.refs[id] <= 0 {
		return fmt.Errorf("%w: %d", ErrNotInserted, id)
	}
	m.opts.Metrics.IncDynamic(metrics.OpRemove)
	m.refs[id]--
	if m.refs[id] > 0 {
		return nil
	}
	delete(m.refs, id)
	info := m.layers.Info(id)

	if b, ok := m.backups[id]; ok {
		delete(m.backups, id)
		m.restore(info, b)
		m.opts.Logger.Debug("entrance node restored", slog.Int("id", id), slog.Int("level", b.level))
		return nil
	}

	m.clusters[info.ClusterID].RemoveEntrance(id)
	delete(m.concreteToAbstract, info.ConcreteID)
	for l := 1; l <= m.opts.MaxLevel; l++ {
		layer := m.layers.At(l)
		layer.RemoveEdgesFromAndTo(id)
		layer.RemoveNode(id)
	}
	m.opts.Logger.Debug("node removed", slog.Int("id", id))
	return nil
}

// restore puts an entrance node back into the state captured by b.
//
// On each level up to the backup level the node gets its saved edges back in
// their saved order, minus those whose target is gone. Edges towards nodes
// that are still inserted follow them, so the layer ends up as if only those
// nodes had been inserted. Every other edge is dropped together with its
// reverse. Surviving reverse edges keep their place in their owner's list.
func (m *Map) restore(info *abstract.NodeInfo, b Backup) {
	info.Level = b.level
	for l := 1; l <= b.level; l++ {
		layer := m.layers.At(l)
		layer.AddNode(info)
		current := slices.Clone(layer.Edges(info.ID))

		kept := make(map[int]bool, len(b.edges[l])+len(current))
		edges := make([]abstract.Edge, 0, len(b.edges[l])+len(current))
		for _, e := range b.edges[l] {
			if kept[e.Target] || !layer.HasNode(e.Target) {
				continue
			}
			kept[e.Target] = true
			edges = append(edges, e.Clone())
		}
		for _, e := range current {
			if kept[e.Target] || m.refs[e.Target] <= 0 {
				continue
			}
			kept[e.Target] = true
			edges = append(edges, e)
		}
		for _, e := range current {
			if !kept[e.Target] {
				layer.RemoveEdge(e.Target, info.ID)
			}
		}
		layer.SetEdges(info.ID, edges)

		for _, e := range edges {
			back := e.Reversed(info.ID)
			layer.AddEdge(e.Target, back.Target, back.Cost, back.InnerPath)
		}
	}
	for l := b.level + 1; l <= m.opts.MaxLevel; l++ {
		layer := m.layers.At(l)
		layer.RemoveEdgesFromAndTo(info.ID)
		layer.RemoveNode(info.ID)
	}
}
