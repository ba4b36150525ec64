// Package grid builds the concrete, node-per-cell graph that every level of
// the hierarchy is ultimately refined to.
//
// Overview:
//
//   - A Graph is created once from a width, a height, a tiling scheme and a
//     Passability source that reports, per cell, whether it can be entered
//     and at what cost.
//   - Node ids are dense integers: id = y*width + x. Positions and ids are
//     interchangeable through Graph.ID and Graph.Position.
//   - Edges are materialised once for every in-bounds neighbour. Obstacles are
//     filtered lazily in Connections, so flipping an obstacle flag after
//     construction needs no edge rebuild.
//
// Tilings:
//
//   - Tile:          4-connected (N, S, W, E), Manhattan heuristic.
//   - Octile:        8-connected, diagonal steps cost cost*34/24, diagonal heuristic.
//   - OctileUnicost: 8-connected, every step costs the target cell cost, Chebyshev heuristic.
//   - Hex:           6-connected, odd/even column offsets, Vancouver heuristic.
//
// All costs are scaled by CostOne so that the octile diagonal stays integral.
//
// Complexity:
//
//   - New:         O(W*H) time and space (at most 8 edges per cell).
//   - Connections: O(deg) per call, deg ≤ 8.
//   - Slice:       O(w*h) for the extracted window.
//
// Errors (sentinel):
//
//   - ErrBadDimensions   width or height is not positive.
//   - ErrNilPassability  no passability source was supplied.
//   - ErrUnknownTile     the tiling value is not one of the four schemes.
//   - ErrEmptyGrid       ParseRows received no rows or empty rows.
//   - ErrNonRectangular  ParseRows received rows of differing lengths.
//   - ErrOutOfBounds     Slice was asked for a window leaving the map.
package grid
