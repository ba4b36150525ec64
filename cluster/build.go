package cluster

import (
	"fmt"

	"github.com/katalvlaran/hpastar/grid"
)

// Build partitions g into size×size clusters and returns them together with
// every entrance found between neighbouring clusters.
//
// Steps, per cluster in row-major order:
//  1. Create the cluster clipped to the map edge.
//  2. If a cluster exists above, scan the shared horizontal border.
//  3. If a cluster exists to the left, scan the shared vertical border.
func Build(g *grid.Graph, size int, style EntranceStyle) ([]*Cluster, []Entrance, error) {
	if g == nil {
		return nil, nil, ErrNilGrid
	}
	if size <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadClusterSize, size)
	}

	perRow := (g.Width() + size - 1) / size
	var (
		clusters  []*Cluster
		entrances []Entrance
	)
	cy := 0
	for top := 0; top < g.Height(); top += size {
		cx := 0
		for left := 0; left < g.Width(); left += size {
			// 1) Clip to the map.
			w := min(size, g.Width()-left)
			h := min(size, g.Height()-top)
			c, err := newCluster(g, len(clusters), cx, cy, grid.Position{X: left, Y: top}, w, h)
			if err != nil {
				return nil, nil, fmt.Errorf("cluster %d: %w", len(clusters), err)
			}
			clusters = append(clusters, c)

			// 2) Border with the cluster above: row top-1 against row top.
			if top > 0 {
				above := clusters[(cy-1)*perRow+cx]
				row := top - 1
				entrances = alongBorder(g, entrances, left, left+w-1, above, c, style, Vertical,
					func(col int) (int, int) {
						return g.ID(grid.Position{X: col, Y: row}), g.ID(grid.Position{X: col, Y: row + 1})
					})
			}

			// 3) Border with the cluster on the left: column left-1 against column left.
			if left > 0 {
				west := clusters[cy*perRow+cx-1]
				col := left - 1
				entrances = alongBorder(g, entrances, top, top+h-1, west, c, style, Horizontal,
					func(row int) (int, int) {
						return g.ID(grid.Position{X: col, Y: row}), g.ID(grid.Position{X: col + 1, Y: row})
					})
			}
			cx++
		}
		cy++
	}
	return clusters, entrances, nil
}

// alongBorder scans cell pairs start..end and appends one entrance per run,
// or two for wide runs under EndEntrance.
func alongBorder(g *grid.Graph, out []Entrance, start, end int, c1, c2 *Cluster,
	style EntranceStyle, o Orientation, cells func(i int) (int, int)) []Entrance {
	add := func(i int) []Entrance {
		src, dst := cells(i)
		return append(out, Entrance{Cluster1: c1, Cluster2: c2, Src: src, Dst: dst, Orientation: o})
	}

	for i := start; i <= end; {
		run := 0
		for i+run <= end {
			a, b := cells(i + run)
			if g.IsObstacle(a) || g.IsObstacle(b) {
				break
			}
			run++
		}
		if run == 0 {
			i++
			continue
		}
		last := i + run - 1
		if style == EndEntrance && run > MaxEntranceWidth {
			out = add(i)
			out = add(last)
		} else {
			out = add((i + last) / 2)
		}
		i = last + 1
	}
	return out
}
