package abstract

import (
	"github.com/katalvlaran/hpastar/astar"
	"github.com/katalvlaran/hpastar/grid"
)

// View is a layer restricted to a window. It satisfies astar.Graph.
type View struct {
	layer     *Graph
	window    Window
	heuristic grid.Heuristic
}

// NewView binds layer, window and heuristic together.
func NewView(layer *Graph, window Window, h grid.Heuristic) View {
	return View{layer: layer, window: window, heuristic: h}
}

// Connections returns the edges of id whose target lies inside the window.
func (v View) Connections(id int) []astar.Connection {
	edges := v.layer.Edges(id)
	out := make([]astar.Connection, 0, len(edges))
	for _, e := range edges {
		info := v.layer.Info(e.Target)
		if info == nil || !v.window.Contains(info.Pos) {
			continue
		}
		out = append(out, astar.Connection{Target: e.Target, Cost: e.Cost})
	}
	return out
}

// Heuristic applies the position heuristic to the two nodes.
func (v View) Heuristic(from, to int) int {
	return v.heuristic(v.layer.Info(from).Pos, v.layer.Info(to).Pos)
}
