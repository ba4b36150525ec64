package abstract

import "slices"

type slot struct {
	info  *NodeInfo
	edges []Edge
}

// Graph is one abstraction layer.
type Graph struct {
	level int
	nodes []*slot
	count int
}

// NewGraph returns an empty layer for the given level.
func NewGraph(level int) *Graph {
	return &Graph{level: level}
}

// Level returns the abstraction level of the layer.
func (g *Graph) Level() int { return g.level }

// AddNode registers info in the layer. A node that is already present keeps
// its edges.
func (g *Graph) AddNode(info *NodeInfo) {
	if g.HasNode(info.ID) {
		return
	}
	if info.ID >= len(g.nodes) {
		g.nodes = append(g.nodes, make([]*slot, info.ID+1-len(g.nodes))...)
	}
	g.nodes[info.ID] = &slot{info: info}
	g.count++
}

// HasNode reports whether id is present in the layer.
func (g *Graph) HasNode(id int) bool {
	return id >= 0 && id < len(g.nodes) && g.nodes[id] != nil
}

// Info returns the node record of id, or nil if absent.
func (g *Graph) Info(id int) *NodeInfo {
	if !g.HasNode(id) {
		return nil
	}
	return g.nodes[id].info
}

// AddEdge appends src→dst unless src already has an edge to dst.
// It reports whether an edge was added. src must be present.
func (g *Graph) AddEdge(src, dst, cost int, inner []int) bool {
	s := g.nodes[src]
	for _, e := range s.edges {
		if e.Target == dst {
			return false
		}
	}
	s.edges = append(s.edges, Edge{Target: dst, Cost: cost, InnerPath: inner})
	return true
}

// Edge returns the edge src→dst if it exists.
func (g *Graph) Edge(src, dst int) (Edge, bool) {
	if !g.HasNode(src) {
		return Edge{}, false
	}
	for _, e := range g.nodes[src].edges {
		if e.Target == dst {
			return e, true
		}
	}
	return Edge{}, false
}

// Edges returns the outgoing edges of id in insertion order.
// The slice belongs to the layer and must not be modified.
func (g *Graph) Edges(id int) []Edge {
	if !g.HasNode(id) {
		return nil
	}
	return g.nodes[id].edges
}

// RemoveEdgesFromAndTo drops every outgoing edge of id together with the
// reverse edge held by each of its targets.
func (g *Graph) RemoveEdgesFromAndTo(id int) {
	if !g.HasNode(id) {
		return
	}
	for _, e := range g.nodes[id].edges {
		if !g.HasNode(e.Target) {
			continue
		}
		t := g.nodes[e.Target]
		t.edges = slices.DeleteFunc(t.edges, func(back Edge) bool { return back.Target == id })
	}
	g.nodes[id].edges = nil
}

// RemoveEdge drops src→dst, keeping the order of the other edges of src.
// It reports whether an edge was removed.
func (g *Graph) RemoveEdge(src, dst int) bool {
	if !g.HasNode(src) {
		return false
	}
	s := g.nodes[src]
	i := slices.IndexFunc(s.edges, func(e Edge) bool { return e.Target == dst })
	if i < 0 {
		return false
	}
	s.edges = slices.Delete(s.edges, i, i+1)
	return true
}

// SetEdges replaces the outgoing edges of id. Reverse edges are not touched.
func (g *Graph) SetEdges(id int, edges []Edge) {
	if !g.HasNode(id) {
		return
	}
	g.nodes[id].edges = edges
}

// RemoveNode deletes id and its outgoing edges. Incoming edges are left to
// RemoveEdgesFromAndTo.
func (g *Graph) RemoveNode(id int) {
	if !g.HasNode(id) {
		return
	}
	g.nodes[id] = nil
	g.count--
}

// NodeCount returns the number of nodes present.
func (g *Graph) NodeCount() int { return g.count }

// EdgeCount returns the number of directed edges present.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, s := range g.nodes {
		if s != nil {
			n += len(s.edges)
		}
	}
	return n
}

// NodeIDs returns the ids present, ascending.
func (g *Graph) NodeIDs() []int {
	ids := make([]int, 0, g.count)
	for id, s := range g.nodes {
		if s != nil {
			ids = append(ids, id)
		}
	}
	return ids
}
