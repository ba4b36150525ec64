package abstract

import (
	"slices"

	"github.com/katalvlaran/hpastar/grid"
)

// NodeInfo describes an abstract node. One record is shared by every layer
// holding the node.
type NodeInfo struct {
	ID         int           // abstract id, unique for the lifetime of the map
	Level      int           // highest layer the node belongs to
	ClusterID  int           // owning cluster
	Pos        grid.Position // cell the node stands on
	ConcreteID int           // grid node id of Pos
}

// Edge is a directed abstract edge. InnerPath, when set, lists the ids of the
// level-below path the edge stands for, endpoints included.
type Edge struct {
	Target    int
	Cost      int
	InnerPath []int
}

// Clone returns a deep copy of e.
func (e Edge) Clone() Edge {
	e.InnerPath = slices.Clone(e.InnerPath)
	return e
}

// Reversed returns the edge from e.Target back to source with the inner path
// reversed.
func (e Edge) Reversed(source int) Edge {
	var inner []int
	if e.InnerPath != nil {
		inner = slices.Clone(e.InnerPath)
		slices.Reverse(inner)
	}
	return Edge{Target: source, Cost: e.Cost, InnerPath: inner}
}

// Window is an inclusive rectangle of cells.
type Window struct {
	X0, Y0, X1, Y1 int
}

// Contains reports whether p lies inside w.
func (w Window) Contains(p grid.Position) bool {
	return p.X >= w.X0 && p.X <= w.X1 && p.Y >= w.Y0 && p.Y <= w.Y1
}
