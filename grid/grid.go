package grid

import (
	"fmt"

	"github.com/katalvlaran/hpastar/astar"
)

// Graph is the concrete map graph. It satisfies astar.Graph.
type Graph struct {
	width, height int
	tile          TileType
	parity        int // column parity of local column 0 in the source map
	heuristic     Heuristic
	obstacle      []bool
	cost          []int
	edges         [][]astar.Connection
}

// New builds a width×height Graph, querying pass once per cell.
//
// Steps:
//  1. Validate dimensions, tiling and passability source.
//  2. Record obstacle flag and cost of every cell.
//  3. Create one edge per in-bounds neighbour in the fixed order
//     N, S, W, E followed by the tiling's extra neighbours.
func New(width, height int, tile TileType, pass Passability) (*Graph, error) {
	return build(width, height, tile, 0, pass)
}

// build is New for a graph whose column 0 has the given parity.
func build(width, height int, tile TileType, parity int, pass Passability) (*Graph, error) {
	// 1) Validate inputs.
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	if tile < Tile || tile > Hex {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTile, int(tile))
	}
	if pass == nil {
		return nil, ErrNilPassability
	}

	n := width * height
	g := &Graph{
		width:     width,
		height:    height,
		tile:      tile,
		parity:    parity,
		heuristic: HeuristicFor(tile),
		obstacle:  make([]bool, n),
		cost:      make([]int, n),
		edges:     make([][]astar.Connection, n),
	}

	// 2) Query passability once per cell.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, ok := pass.CanEnter(Position{X: x, Y: y})
			id := y*width + x
			g.obstacle[id] = !ok
			g.cost[id] = c
		}
	}

	// 3) Materialise edges. Cost is paid on entering the target cell.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offs := tile.neighbourOffsets(x + parity)
			list := make([]astar.Connection, 0, len(offs))
			for _, o := range offs {
				nx, ny := x+o.dx, y+o.dy
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				target := ny*width + nx
				c := g.cost[target]
				if o.diagonal && tile == Octile {
					c = c * 34 / 24
				}
				list = append(list, astar.Connection{Target: target, Cost: c})
			}
			g.edges[y*width+x] = list
		}
	}

	return g, nil
}

// Width returns the number of columns.
func (g *Graph) Width() int { return g.width }

// Height returns the number of rows.
func (g *Graph) Height() int { return g.height }

// Tile returns the tiling scheme.
func (g *Graph) Tile() TileType { return g.tile }

// NodeCount returns width*height.
func (g *Graph) NodeCount() int { return len(g.obstacle) }

// ID returns the node id of p. p must be in bounds.
func (g *Graph) ID(p Position) int { return p.Y*g.width + p.X }

// Position returns the cell coordinate of node id.
func (g *Graph) Position(id int) Position { return Position{X: id % g.width, Y: id / g.width} }

// InBounds reports whether p lies on the map.
func (g *Graph) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// IsObstacle reports whether node id cannot be entered.
func (g *Graph) IsObstacle(id int) bool { return g.obstacle[id] }

// SetObstacle flips the obstacle flag of node id. Existing edges are kept;
// Connections starts or stops reporting them immediately.
func (g *Graph) SetObstacle(id int, blocked bool) { g.obstacle[id] = blocked }

// Cost returns the cost of entering node id.
func (g *Graph) Cost(id int) int { return g.cost[id] }

// Connections returns the outgoing edges of id whose target is not an obstacle.
func (g *Graph) Connections(id int) []astar.Connection {
	all := g.edges[id]
	out := make([]astar.Connection, 0, len(all))
	for _, c := range all {
		if g.obstacle[c.Target] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Heuristic estimates the cost between two nodes with the tiling's metric.
// Columns are shifted by the slice parity so the hex metric sees the same
// column parity as on the full map.
func (g *Graph) Heuristic(from, to int) int {
	a, b := g.Position(from), g.Position(to)
	a.X += g.parity
	b.X += g.parity
	return g.heuristic(a, b)
}

// PositionHeuristic returns the tiling's metric on raw positions.
func (g *Graph) PositionHeuristic() Heuristic { return g.heuristic }

// Slice copies the w×h window starting at origin into a new Graph whose
// node ids are local to the window. The slice keeps the column parity of
// origin, so its hex neighbours match those of the full map.
func (g *Graph) Slice(origin Position, w, h int) (*Graph, error) {
	last := Position{X: origin.X + w - 1, Y: origin.Y + h - 1}
	if w <= 0 || h <= 0 || !g.InBounds(origin) || !g.InBounds(last) {
		return nil, fmt.Errorf("%w: window %v size %dx%d", ErrOutOfBounds, origin, w, h)
	}
	return build(w, h, g.tile, (g.parity+origin.X)%2, PassabilityFunc(func(p Position) (int, bool) {
		id := g.ID(Position{X: origin.X + p.X, Y: origin.Y + p.Y})
		return g.cost[id], !g.obstacle[id]
	}))
}

// CanJump reports whether a straight step from p1 to p2 is allowed.
// Aligned steps always are; a diagonal step needs at least one of the two
// flanking orthogonal cells to be free.
func (g *Graph) CanJump(p1, p2 Position) bool {
	if p1.X == p2.X || p1.Y == p2.Y {
		return true
	}
	a := g.obstacle[g.ID(Position{X: p2.X, Y: p1.Y})]
	b := g.obstacle[g.ID(Position{X: p1.X, Y: p2.Y})]
	return !(a && b)
}

// Adjacent reports whether b is one neighbour step away from a. Positions
// are in the graph's own coordinates.
func (g *Graph) Adjacent(a, b Position) bool {
	for _, o := range g.tile.neighbourOffsets(a.X + g.parity) {
		if a.X+o.dx == b.X && a.Y+o.dy == b.Y {
			return true
		}
	}
	return false
}
