package cluster

import (
	"slices"

	"github.com/katalvlaran/hpastar/astar"
	"github.com/katalvlaran/hpastar/grid"
)

type pair struct{ from, to int }

// Cluster is one rectangular block of the grid.
type Cluster struct {
	ID     int
	X, Y   int           // coordinates in the cluster grid
	Origin grid.Position // top-left cell
	Width  int
	Height int

	sub       *grid.Graph
	entrances []EntrancePoint
	dist      map[pair]int
	paths     map[pair][]int
	computed  map[pair]bool
}

func newCluster(g *grid.Graph, id, x, y int, origin grid.Position, w, h int) (*Cluster, error) {
	sub, err := g.Slice(origin, w, h)
	if err != nil {
		return nil, err
	}
	return &Cluster{
		ID:       id,
		X:        x,
		Y:        y,
		Origin:   origin,
		Width:    w,
		Height:   h,
		sub:      sub,
		dist:     make(map[pair]int),
		paths:    make(map[pair][]int),
		computed: make(map[pair]bool),
	}, nil
}

// Entrances returns the entrance points in insertion order.
// The slice belongs to the cluster and must not be modified.
func (c *Cluster) Entrances() []EntrancePoint { return c.entrances }

// Entrance returns the entrance point bound to abstract id.
func (c *Cluster) Entrance(id int) (EntrancePoint, bool) {
	for _, e := range c.entrances {
		if e.AbstractID == id {
			return e, true
		}
	}
	return EntrancePoint{}, false
}

// AddEntrance binds abstract id to the local cell.
func (c *Cluster) AddEntrance(id int, local grid.Position) {
	c.entrances = append(c.entrances, EntrancePoint{AbstractID: id, Local: local})
}

// RemoveEntrance unbinds abstract id and forgets every cached pair it is part
// of. It reports whether id was bound.
func (c *Cluster) RemoveEntrance(id int) bool {
	n := len(c.entrances)
	c.entrances = slices.DeleteFunc(c.entrances, func(e EntrancePoint) bool { return e.AbstractID == id })
	if len(c.entrances) == n {
		return false
	}
	for k := range c.computed {
		if k.from == id || k.to == id {
			delete(c.computed, k)
			delete(c.dist, k)
			delete(c.paths, k)
		}
	}
	return true
}

// ComputePaths searches every pair of entrance points not searched yet and
// returns the number of nodes expanded.
func (c *Cluster) ComputePaths() int {
	expanded := 0
	for _, e1 := range c.entrances {
		for _, e2 := range c.entrances {
			expanded += c.compute(e1, e2)
		}
	}
	return expanded
}

// UpdatePathsFor searches the pairs between id and every other entrance point
// and returns the number of nodes expanded.
func (c *Cluster) UpdatePathsFor(id int) int {
	e1, ok := c.Entrance(id)
	if !ok {
		return 0
	}
	expanded := 0
	for _, e2 := range c.entrances {
		expanded += c.compute(e1, e2)
	}
	return expanded
}

func (c *Cluster) compute(e1, e2 EntrancePoint) int {
	if e1.AbstractID == e2.AbstractID {
		return 0
	}
	fwd := pair{e1.AbstractID, e2.AbstractID}
	if c.computed[fwd] {
		return 0
	}
	back := pair{e2.AbstractID, e1.AbstractID}

	p := astar.FindPath(c.sub, c.sub.ID(e1.Local), c.sub.ID(e2.Local))
	if p.Found() {
		c.dist[fwd] = p.Cost
		c.dist[back] = p.Cost
		c.paths[fwd] = p.Nodes
		rev := slices.Clone(p.Nodes)
		slices.Reverse(rev)
		c.paths[back] = rev
	}
	c.computed[fwd] = true
	c.computed[back] = true
	return p.Expanded
}

// Distance returns the cached cost between two entrance points.
func (c *Cluster) Distance(from, to int) (int, bool) {
	d, ok := c.dist[pair{from, to}]
	return d, ok
}

// Connected reports whether a cached path joins the two entrance points.
func (c *Cluster) Connected(from, to int) bool {
	_, ok := c.dist[pair{from, to}]
	return ok
}

// Path returns the cached path between two entrance points as local ids.
// The slice belongs to the cluster and must not be modified.
func (c *Cluster) Path(from, to int) ([]int, bool) {
	p, ok := c.paths[pair{from, to}]
	return p, ok
}

// Contains reports whether the global cell p lies in the cluster.
func (c *Cluster) Contains(p grid.Position) bool {
	return p.X >= c.Origin.X && p.X < c.Origin.X+c.Width &&
		p.Y >= c.Origin.Y && p.Y < c.Origin.Y+c.Height
}

// LocalToGlobal converts a local node id of the cluster slice to a global cell.
func (c *Cluster) LocalToGlobal(local int) grid.Position {
	return grid.Position{X: c.Origin.X + local%c.Width, Y: c.Origin.Y + local/c.Width}
}

// Local converts a global cell to the cluster's local coordinates.
func (c *Cluster) Local(p grid.Position) grid.Position {
	return grid.Position{X: p.X - c.Origin.X, Y: p.Y - c.Origin.Y}
}
