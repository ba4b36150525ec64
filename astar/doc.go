// Package astar implements the best-first search engine shared by every level
// of the hierarchy: the concrete grid, the per-cluster slices and the windowed
// abstract layers.
//
// Contract:
//
//   - A Graph exposes Connections(id), the already validity-filtered outgoing
//     edges of a node, and Heuristic(from, to), an admissible and consistent
//     lower bound on the remaining cost.
//   - FindPath returns the cheapest path and its cost, or NoPath (-1) with an
//     empty node sequence when the open set drains before reaching the target.
//
// Determinism:
//
//   - The open set is a binary heap ordered by (f, discovery sequence). A node
//     keeps the sequence number of its first discovery when its g improves, so
//     equal-f ties always resolve in discovery order and results never depend
//     on map iteration.
//   - A neighbour is relaxed only if the new g is strictly smaller and the
//     neighbour is not closed. The goal test happens on expansion.
//
// Complexity:
//
//   - Time:  O((V + E) log V) over the nodes actually touched.
//   - Space: O(V) node records plus the heap.
package astar
