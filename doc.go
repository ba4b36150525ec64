// Package hpastar is hierarchical path-finding (HPA*) for large grid maps:
// cut the map into clusters, connect the clusters through border entrances,
// stack those connections into coarser levels, and answer queries by
// searching the top level first and refining downwards.
//
// 🚀 What is inside?
//
//	• grid/       the cell grid: Tile, Octile, OctileUnicost and Hex tilings, costs, heuristics, ASCII maps
//	• astar/      deterministic A* over any graph exposing Connections and Heuristic
//	• abstract/   layered abstract graph storage and windowed views
//	• cluster/    partitioning, entrance detection and cached intra-cluster paths
//	• hierarchy/  the layered map: Build, Insert and Remove of query endpoints
//	• hpa/        the query facade: coarse search, budgeted refinement, smoothing
//	• smooth/     straightens cell paths with direction rays
//	• metrics/    Prometheus collectors for build and query activity
//	• config/     YAML configuration for the hpa command
//
// Quick ASCII example, two 4×4 clusters side by side:
//
//	....|....
//	.@@.|....       entrances sit on free runs of the shared border;
//	....|..@.       each cluster caches the paths between its entrances
//	....|....
//
// Typical use:
//
//	g, _ := grid.FromRows(rows, grid.Octile)
//	m, _ := hierarchy.Build(ctx, g, hierarchy.WithClusterSize(10), hierarchy.WithMaxLevel(2))
//	path, _ := hpa.NewSearcher(m).FindPath(grid.Position{X: 1, Y: 1}, grid.Position{X: 38, Y: 37})
//
// A map and its Searcher are not safe for concurrent use: every query inserts
// and removes its two endpoints.
//
//	go install github.com/katalvlaran/hpastar/cmd/hpa@latest
package hpastar
