// Package smooth straightens concrete paths by replacing detours with
// straight runs of cells whenever a later path cell is in direct sight.
//
// For every kept cell the smoother walks outward in each compass direction
// (four on square-tile maps, eight otherwise). The walk stops at the map edge,
// at an obstacle, or at a diagonal squeeze between two obstacles. If it meets
// a cell that appears later in the path, everything in between is skipped and
// the straight run is used instead. Gaps between kept cells that are not
// neighbours are patched with a grid search.
package smooth

import (
	"github.com/katalvlaran/hpastar/astar"
	"github.com/katalvlaran/hpastar/grid"
)

// Direction is a compass direction.
type Direction int

// Directions in the order they are tried.
const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

var steps = [...]grid.Position{
	North:     {X: 0, Y: -1},
	East:      {X: 1, Y: 0},
	South:     {X: 0, Y: 1},
	West:      {X: -1, Y: 0},
	NorthEast: {X: 1, Y: -1},
	SouthEast: {X: 1, Y: 1},
	SouthWest: {X: -1, Y: 1},
	NorthWest: {X: -1, Y: -1},
}

// Step returns the unit offset of d.
func (d Direction) Step() grid.Position { return steps[d] }

// Step is one element of a path handed to Smooth. Abstract steps are not
// cells; smoothing stops at the first one.
type Step struct {
	ID       int // grid id for concrete steps
	Abstract bool
}

// Smoother smooths paths over one grid.
type Smoother struct {
	g          *grid.Graph
	directions int
	expanded   int
}

// New returns a Smoother for g.
func New(g *grid.Graph) *Smoother {
	n := 8
	if g.Tile() == grid.Tile {
		n = 4
	}
	return &Smoother{g: g, directions: n}
}

// Expanded returns the nodes expanded by gap-patching searches so far.
func (s *Smoother) Expanded() int { return s.expanded }

// Smooth processes the leading concrete steps of path. It returns the
// smoothed grid ids and the index of the first step of path it did not
// consume; callers append path[rest:] unchanged.
func (s *Smoother) Smooth(path []Step) (cells []int, rest int) {
	// index maps a grid id to one past its last position in path.
	index := make(map[int]int, len(path))
	for i, st := range path {
		if !st.Abstract {
			index[st.ID] = i + 1
		}
	}

	pos := 0
	for pos < len(path) && !path[pos].Abstract {
		node := path[pos].ID
		if len(cells) == 0 {
			cells = append(cells, node)
		}
		if last := cells[len(cells)-1]; last != node {
			if !s.g.Adjacent(s.g.Position(last), s.g.Position(node)) {
				patch := astar.FindPath(s.g, last, node)
				s.expanded += patch.Expanded
				if len(patch.Nodes) > 2 {
					cells = append(cells, patch.Nodes[1:len(patch.Nodes)-1]...)
				}
			}
			cells = append(cells, node)
		}
		pos = s.decide(path, index, pos) + 1
	}
	return cells, pos
}

// Cells smooths a fully concrete path given as positions.
func (s *Smoother) Cells(path []grid.Position) []grid.Position {
	steps := make([]Step, len(path))
	for i, p := range path {
		steps[i] = Step{ID: s.g.ID(p)}
	}
	ids, _ := s.Smooth(steps)
	out := make([]grid.Position, len(ids))
	for i, id := range ids {
		out[i] = s.g.Position(id)
	}
	return out
}

// decide returns the index before the next path step to keep after i.
func (s *Smoother) decide(path []Step, index map[int]int, i int) int {
	for d := Direction(0); int(d) < s.directions; d++ {
		seen, ok := s.advance(path[i].ID, d, index)
		if !ok {
			continue
		}
		if i > 0 && !path[i-1].Abstract && seen == path[i-1].ID {
			continue
		}
		if i < len(path)-1 && !path[i+1].Abstract && seen == path[i+1].ID {
			continue
		}
		return index[seen] - 2
	}
	return i
}

// advance walks from origin in direction d until it meets a later path cell.
func (s *Smoother) advance(origin int, d Direction, index map[int]int) (int, bool) {
	step := d.Step()
	cur, last := origin, origin
	for {
		p := s.g.Position(cur)
		next := grid.Position{X: p.X + step.X, Y: p.Y + step.Y}
		if !s.g.InBounds(next) {
			return 0, false
		}
		cur = s.g.ID(next)
		if !s.g.CanJump(next, s.g.Position(last)) {
			return 0, false
		}
		if at, ok := index[cur]; ok && at > index[origin] {
			return cur, true
		}
		if s.g.IsObstacle(cur) {
			return 0, false
		}
		last = cur
	}
}
