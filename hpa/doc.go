// Package hpa answers path queries on a hierarchy.Map.
//
// A query runs in four stages:
//
//  1. Start and end are inserted as abstract nodes and a path is searched on
//     the top layer over the whole map.
//  2. For each level from the top down to 2, every hop whose ends are both on
//     that level and in the same block is replaced by the lower-level path
//     stored on its edge. Other hops are relabelled one level down.
//  3. Level-1 hops are expanded to cells: hops inside a cluster use the
//     cluster's cached path, hops across a border emit both border cells.
//  4. The leading run of cells is smoothed.
//
// The inserted nodes are removed before FindPath returns, leaving the map as
// it was.
//
// Refinement budget:
//
//   - WithMaxPathsToRefine(n) caps the number of hops refined in stage 2. The
//     budget is shared by every level of one query and spent top-down, then
//     left to right along the path. Hops left over keep their level and are
//     returned as abstract PathNodes; only the cells before the first of them
//     are smoothed.
//   - A negative n, the default, means no cap.
//
// Complexity:
//
//   - Two Insert/Remove pairs on the map, one top-layer search over N
//     top-level nodes in O((N + E) log N), and work linear in the length of
//     the refined path. Smoothing walks at most eight rays per path cell.
package hpa
