// Package cluster partitions a grid into fixed-size clusters, detects the
// entrances between neighbouring clusters and caches shortest paths between
// the entrance points of each cluster.
//
// Partition:
//
//   - Clusters are created row-major with sequential ids. Clusters on the
//     east and south edges are clipped to the map, so the set tiles the grid
//     exactly.
//   - When a cluster is created its top and left borders are scanned against
//     the cluster above and the cluster to the left. A maximal run of cell
//     pairs that are free on both sides is an entrance.
//   - MiddleEntrance collapses every run to its midpoint. EndEntrance does the
//     same for runs up to MaxEntranceWidth and emits one entrance at each end
//     of wider runs.
//
// Path cache:
//
//   - Every cluster owns a slice of the grid with local ids. The slice keeps
//     the column parity of the cluster origin, so hex neighbours match the
//     full map for any cluster size. Paths between two entrance points are
//     searched on that slice only, and both directions of a pair are stored
//     together. Unreachable pairs are remembered as computed so they are not
//     searched again.
//   - Entrances are added and removed by abstract id. Removing one purges every
//     cached pair that mentions it.
//
// Complexity:
//
//   - Build:        O(W*H) for the border scans.
//   - ComputePaths: O(k² · S² log S) for k entrance points in an S×S cluster.
package cluster
