package hpa

import (
	"github.com/katalvlaran/hpastar/astar"
	"github.com/katalvlaran/hpastar/grid"
)

// refine lowers a path from level to level-1 and returns it with the number
// of hops it replaced. A hop is replaced when both ends are on level and in
// the same block and budget allows; the stored inner path is spliced in
// without repeating the shared end. Budget is decremented per replacement.
func (s *Searcher) refine(path []hop, level int, budget *int) ([]hop, int) {
	if len(path) == 0 {
		return path, 0
	}
	lower := func(h hop) hop {
		if h.level == level {
			h.level = level - 1
		}
		return h
	}

	out := make([]hop, 0, len(path))
	out = append(out, lower(path[0]))
	refined := 0
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		eligible := prev.level == level && cur.level == level && s.m.SameGroup(prev.id, cur.id, level)
		if !eligible {
			out = append(out, lower(cur))
			continue
		}
		if *budget <= 0 {
			out = append(out, cur)
			continue
		}
		*budget--
		refined++
		for _, id := range s.innerPath(prev.id, cur.id, level)[1:] {
			out = append(out, hop{id: id, level: level - 1})
		}
	}
	return out, refined
}

// innerPath returns the level-1 path stored on the level edge a→b, searching
// the block again if the edge carries none.
func (s *Searcher) innerPath(a, b, level int) []int {
	if e, ok := s.m.Layer(level).Edge(a, b); ok && len(e.InnerPath) > 0 {
		return e.InnerPath
	}
	p := s.m.Search(level-1, s.m.GroupWindow(s.m.Info(a).Pos, level), a, b)
	if !p.Found() {
		return []int{a, b}
	}
	return p.Nodes
}

// expand turns a refined path into PathNodes. Runs of level-1 hops become
// cells, higher hops are emitted as they are. Consecutive duplicate cells are
// dropped.
func (s *Searcher) expand(path []hop) []PathNode {
	g := s.m.Grid()
	var out []PathNode
	addCell := func(id int) {
		if n := len(out); n > 0 && out[n-1].Concrete() && out[n-1].ID == id {
			return
		}
		out = append(out, PathNode{Level: 1, Pos: g.Position(id), ID: id})
	}

	last, haveLast := 0, false
	for _, h := range path {
		info := s.m.Info(h.id)
		if h.level > 1 {
			out = append(out, PathNode{Level: h.level, Pos: info.Pos, ID: h.id})
			haveLast = false
			continue
		}
		if !haveLast {
			addCell(info.ConcreteID)
			last, haveLast = h.id, true
			continue
		}
		if last == h.id {
			continue
		}

		prev := s.m.Info(last)
		switch {
		case prev.ClusterID != info.ClusterID:
			// Border crossing: the two cells are neighbours.
			addCell(prev.ConcreteID)
			addCell(info.ConcreteID)
		default:
			c := s.m.Cluster(info.ClusterID)
			if local, ok := c.Path(last, h.id); ok {
				for _, lid := range local[1:] {
					addCell(g.ID(c.LocalToGlobal(lid)))
				}
			} else {
				for _, id := range s.searchCells(prev.Pos, info.Pos)[1:] {
					addCell(id)
				}
			}
		}
		last = h.id
	}
	return out
}

// searchCells finds a grid path between two cells of the same cluster when
// the cluster has no cached one.
func (s *Searcher) searchCells(a, b grid.Position) []int {
	g := s.m.Grid()
	p := astar.FindPath(g, g.ID(a), g.ID(b))
	if !p.Found() {
		return []int{g.ID(a), g.ID(b)}
	}
	return p.Nodes
}
