package astar

// NoPath is the cost reported when the target cannot be reached.
const NoPath = -1

// Connection is one outgoing edge: the target node id and the cost of taking it.
type Connection struct {
	Target int
	Cost   int
}

// Graph is anything FindPath can search.
type Graph interface {
	// Connections returns the traversable outgoing edges of id, in a stable order.
	Connections(id int) []Connection
	// Heuristic returns a lower bound on the cost from one node to another.
	Heuristic(from, to int) int
}

// Path is the result of FindPath.
type Path struct {
	Cost     int   // total cost, or NoPath
	Nodes    []int // start..target inclusive; empty when Cost == NoPath
	Expanded int   // number of nodes closed during the search
}

// Found reports whether the search reached the target.
func (p Path) Found() bool { return p.Cost != NoPath }

// Options configures a single FindPath call.
type Options struct {
	// OnExpand, if set, is called once for every node moved to the closed set.
	OnExpand func(id int)
}

// Option represents a functional option for FindPath.
type Option func(*Options)

// WithOnExpand installs a hook called for every expanded node.
// Passing nil panics.
func WithOnExpand(fn func(id int)) Option {
	if fn == nil {
		panic("astar: WithOnExpand requires a non-nil hook")
	}
	return func(o *Options) {
		o.OnExpand = fn
	}
}

// DefaultOptions returns Options with no hooks installed.
func DefaultOptions() Options {
	return Options{}
}
