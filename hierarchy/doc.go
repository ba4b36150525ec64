// Package hierarchy builds and maintains the multi-level abstract graph of a
// grid map and supports inserting ad-hoc query nodes into it.
//
// Build:
//
//  1. cluster.Build partitions the grid and lists entrances.
//  2. Each entrance cell gets one abstract node, shared by every layer up to
//     the entrance level. A cell reached again by a higher-level entrance is
//     promoted instead of duplicated.
//  3. Entrance pairs are joined in both directions on every layer up to the
//     entrance level.
//  4. Every cluster caches the paths between its entrance points; reachable
//     pairs become level-1 edges.
//  5. For levels 2..MaxLevel, clusters are grouped in blocks of 2^(L-1) per
//     side and every pair of level-L nodes in a block is searched on layer
//     L-1, restricted to the block window. Found paths become level-L edges
//     carrying the lower-level path.
//
// Dynamic nodes:
//
//   - Insert adds a node for any free cell and links it on every layer, the
//     way Build links entrances. Inserting a cell that already is an entrance
//     snapshots its edges first.
//   - Remove undoes Insert exactly, whatever the order of removals. Inserts
//     are reference counted per node.
//
// Complexity:
//
//   - Build:  O(C · k² · S² log S) for the cluster caches (C clusters, k
//     entrance points, S×S cells each), plus one windowed layer search per
//     node pair of every block on levels 2..MaxLevel.
//   - Insert: O(k · S² log S) in the node's cluster, plus one windowed search
//     per node of its block on each higher level.
//   - Remove: O(d²) for a node with d edges per layer.
//
// A Map is not safe for concurrent use. Independent maps share nothing.
package hierarchy
