package astar

import "container/heap"

// FindPath searches g for the cheapest path from start to target.
//
// The start node is its own parent; the returned path is rebuilt by walking
// parents back from the target. When start == target the path is that single
// node with cost 0.
func FindPath(g Graph, start, target int, opts ...Option) Path {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &runner{
		g:       g,
		target:  target,
		options: cfg,
		nodes:   make(map[int]*nodeRecord),
	}
	return r.run(start)
}

// runner holds the mutable state of one search.
type runner struct {
	g        Graph
	target   int
	options  Options
	nodes    map[int]*nodeRecord // every node discovered so far
	open     openSet
	seq      int
	expanded int
}

func (r *runner) run(start int) Path {
	// 1) Seed the open set with the start node.
	r.discover(start, start, 0)

	for r.open.Len() > 0 {
		// 2) Pop the best open node and close it.
		cur := heap.Pop(&r.open).(*nodeRecord)
		cur.closed = true
		r.expanded++
		if r.options.OnExpand != nil {
			r.options.OnExpand(cur.id)
		}

		// 3) Goal test on expansion.
		if cur.id == r.target {
			return Path{Cost: cur.g, Nodes: r.rebuild(cur), Expanded: r.expanded}
		}

		// 4) Relax outgoing edges.
		for _, c := range r.g.Connections(cur.id) {
			ng := cur.g + c.Cost
			next, seen := r.nodes[c.Target]
			if !seen {
				r.discover(c.Target, cur.id, ng)
				continue
			}
			if next.closed || ng >= next.g {
				continue
			}
			next.g = ng
			next.parent = cur.id
			heap.Fix(&r.open, next.index)
		}
	}

	return Path{Cost: NoPath, Expanded: r.expanded}
}

// discover records a new node and pushes it into the open set.
func (r *runner) discover(id, parent, g int) {
	n := &nodeRecord{
		id:     id,
		parent: parent,
		g:      g,
		h:      r.g.Heuristic(id, r.target),
		seq:    r.seq,
	}
	r.seq++
	r.nodes[id] = n
	heap.Push(&r.open, n)
}

// rebuild follows parent pointers from the target back to the start.
func (r *runner) rebuild(end *nodeRecord) []int {
	var path []int
	cur := end
	for {
		path = append(path, cur.id)
		if cur.parent == cur.id {
			break
		}
		cur = r.nodes[cur.parent]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// nodeRecord is the search state of one discovered node.
type nodeRecord struct {
	id, parent int
	g, h       int
	seq        int  // discovery order, the tie-break for equal f
	index      int  // position in the heap, maintained by openSet
	closed     bool // expanded already
}

// openSet is a min-heap of open nodes ordered by (g+h, seq).
type openSet []*nodeRecord

// Len returns the number of open nodes.
func (s openSet) Len() int { return len(s) }

// Less orders by f, then by discovery sequence.
func (s openSet) Less(i, j int) bool {
	fi, fj := s[i].g+s[i].h, s[j].g+s[j].h
	if fi != fj {
		return fi < fj
	}
	return s[i].seq < s[j].seq
}

// Swap swaps two nodes and keeps their indices current.
func (s openSet) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}

// Push adds x, which must be a *nodeRecord.
func (s *openSet) Push(x any) {
	n := x.(*nodeRecord)
	n.index = len(*s)
	*s = append(*s, n)
}

// Pop removes and returns the last element.
func (s *openSet) Pop() any {
	old := *s
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*s = old[:len(old)-1]
	return n
}
