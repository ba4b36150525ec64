package cluster_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpastar/cluster"
	"github.com/katalvlaran/hpastar/grid"
)

func openMap(t *testing.T, w, h int) *grid.Graph {
	t.Helper()
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(".", w)
	}
	g, err := grid.FromRows(rows, grid.Octile)
	require.NoError(t, err)
	return g
}

type cellPair struct{ src, dst grid.Position }

func pairs(g *grid.Graph, es []cluster.Entrance) []cellPair {
	out := make([]cellPair, len(es))
	for i, e := range es {
		out[i] = cellPair{g.Position(e.Src), g.Position(e.Dst)}
	}
	return out
}

func p(x, y int) grid.Position { return grid.Position{X: x, Y: y} }

//----------------------------------------------------------------------------//
// Build
//----------------------------------------------------------------------------//

func TestBuild_Errors(t *testing.T) {
	_, _, err := cluster.Build(nil, 4, cluster.EndEntrance)
	assert.ErrorIs(t, err, cluster.ErrNilGrid)
	_, _, err = cluster.Build(openMap(t, 4, 4), 0, cluster.EndEntrance)
	assert.ErrorIs(t, err, cluster.ErrBadClusterSize)
}

func TestBuild_TilesTheMap(t *testing.T) {
	g := openMap(t, 23, 17)
	clusters, _, err := cluster.Build(g, 10, cluster.MiddleEntrance)
	require.NoError(t, err)
	require.Len(t, clusters, 6)

	last := clusters[5]
	assert.Equal(t, 5, last.ID)
	assert.Equal(t, 2, last.X)
	assert.Equal(t, 1, last.Y)
	assert.Equal(t, p(20, 10), last.Origin)
	assert.Equal(t, 3, last.Width)
	assert.Equal(t, 7, last.Height)

	// Every cell belongs to exactly one cluster.
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			n := 0
			for _, c := range clusters {
				if c.Contains(p(x, y)) {
					n++
				}
			}
			require.Equal(t, 1, n, "cell (%d,%d)", x, y)
		}
	}
}

func TestBuild_EntrancesOpenMap(t *testing.T) {
	g := openMap(t, 4, 4)
	clusters, es, err := cluster.Build(g, 2, cluster.MiddleEntrance)
	require.NoError(t, err)
	require.Len(t, clusters, 4)

	assert.Equal(t, []cellPair{
		{p(1, 0), p(2, 0)},
		{p(0, 1), p(0, 2)},
		{p(2, 1), p(2, 2)},
		{p(1, 2), p(2, 2)},
	}, pairs(g, es))
	assert.Equal(t, cluster.Horizontal, es[0].Orientation)
	assert.Equal(t, cluster.Vertical, es[1].Orientation)
	assert.Same(t, clusters[0], es[1].Cluster1)
	assert.Same(t, clusters[2], es[1].Cluster2)
}

func TestBuild_WideRuns(t *testing.T) {
	g := openMap(t, 20, 10)

	_, es, err := cluster.Build(g, 10, cluster.MiddleEntrance)
	require.NoError(t, err)
	assert.Equal(t, []cellPair{{p(9, 4), p(10, 4)}}, pairs(g, es))

	_, es, err = cluster.Build(g, 10, cluster.EndEntrance)
	require.NoError(t, err)
	assert.Equal(t, []cellPair{{p(9, 0), p(10, 0)}, {p(9, 9), p(10, 9)}}, pairs(g, es))
}

// TestBuild_ObstaclesSplitRuns blocks one side of the border so the run breaks.
func TestBuild_ObstaclesSplitRuns(t *testing.T) {
	g, err := grid.FromRows([]string{
		"........",
		"...@....",
		"........",
		"....@...",
		"........",
		"........",
	}, grid.Octile)
	require.NoError(t, err)

	_, es, err := cluster.Build(g, 4, cluster.EndEntrance)
	require.NoError(t, err)
	// (3,1) and (4,3) break the east border of cluster 0 into rows {0} and {2};
	// (4,3) also trims the top border of cluster 3 to columns 5..7.
	assert.Equal(t, []cellPair{
		{p(3, 0), p(4, 0)},
		{p(3, 2), p(4, 2)},
		{p(1, 3), p(1, 4)},
		{p(6, 3), p(6, 4)},
		{p(3, 4), p(4, 4)},
	}, pairs(g, es))
}

func TestEntrance_Level(t *testing.T) {
	cs := make([]*cluster.Cluster, 6)
	for i := range cs {
		cs[i] = &cluster.Cluster{ID: i, X: i}
	}
	e := func(a, b int) cluster.Entrance { return cluster.Entrance{Cluster1: cs[a], Cluster2: cs[b]} }

	assert.Equal(t, 1, e(0, 1).Level(3))
	assert.Equal(t, 2, e(1, 2).Level(3))
	assert.Equal(t, 3, e(3, 4).Level(3))
	assert.Equal(t, 2, e(3, 4).Level(2))
	assert.Equal(t, 1, e(3, 4).Level(1))
}

func TestInterEdgeCost(t *testing.T) {
	assert.Equal(t, grid.CostOne, cluster.InterEdgeCost(grid.Octile, cluster.Horizontal))
	assert.Equal(t, grid.DiagonalCost, cluster.InterEdgeCost(grid.Octile, cluster.VDiag2))
	assert.Equal(t, grid.CostOne, cluster.InterEdgeCost(grid.OctileUnicost, cluster.HDiag1))
}

func TestEntranceStyleNames(t *testing.T) {
	s, err := cluster.ParseEntranceStyle("End")
	require.NoError(t, err)
	assert.Equal(t, cluster.EndEntrance, s)
	assert.Equal(t, "middle", cluster.MiddleEntrance.String())
	_, err = cluster.ParseEntranceStyle("corner")
	assert.ErrorIs(t, err, cluster.ErrUnknownStyle)
}

//----------------------------------------------------------------------------//
// Path cache
//----------------------------------------------------------------------------//

func wallCluster(t *testing.T) *cluster.Cluster {
	t.Helper()
	g, err := grid.FromRows([]string{
		".....",
		".@@@.",
		".....",
		"..@..",
		"..@..",
	}, grid.Octile)
	require.NoError(t, err)
	clusters, _, err := cluster.Build(g, 5, cluster.EndEntrance)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	return clusters[0]
}

func TestCluster_ComputePaths(t *testing.T) {
	c := wallCluster(t)
	c.AddEntrance(10, p(0, 4))
	c.AddEntrance(11, p(4, 4))
	c.AddEntrance(12, p(2, 0))
	require.Positive(t, c.ComputePaths())

	d, ok := c.Distance(10, 11)
	require.True(t, ok)
	// Around the stub wall: (0,4)->(1,3)->(2,2)->(3,3)->(4,4).
	assert.Equal(t, 4*grid.DiagonalCost, d)
	back, ok := c.Distance(11, 10)
	require.True(t, ok)
	assert.Equal(t, d, back)

	path, ok := c.Path(10, 11)
	require.True(t, ok)
	assert.Equal(t, p(0, 4), c.LocalToGlobal(path[0]))
	assert.Equal(t, p(4, 4), c.LocalToGlobal(path[len(path)-1]))
	rev, _ := c.Path(11, 10)
	assert.Equal(t, path[0], rev[len(rev)-1])

	assert.True(t, c.Connected(12, 10))
	assert.Equal(t, 0, c.ComputePaths(), "everything is cached")
}

func TestCluster_UnreachableAndRemove(t *testing.T) {
	g, err := grid.FromRows([]string{
		"..@..",
		"..@..",
		"..@..",
	}, grid.Tile)
	require.NoError(t, err)
	clusters, _, err := cluster.Build(g, 5, cluster.EndEntrance)
	require.NoError(t, err)
	c := clusters[0]

	c.AddEntrance(0, p(0, 0))
	c.AddEntrance(1, p(4, 2))
	c.AddEntrance(2, p(1, 2))
	c.ComputePaths()
	assert.False(t, c.Connected(0, 1))
	d, ok := c.Distance(0, 2)
	require.True(t, ok)
	assert.Equal(t, 300, d)

	// Removing by id works regardless of insertion order.
	require.True(t, c.RemoveEntrance(0))
	require.False(t, c.RemoveEntrance(0))
	assert.False(t, c.Connected(2, 0))
	_, ok = c.Entrance(0)
	assert.False(t, ok)
	assert.Len(t, c.Entrances(), 2)

	c.AddEntrance(3, p(0, 1))
	assert.Positive(t, c.UpdatePathsFor(3))
	d, ok = c.Distance(3, 2)
	require.True(t, ok)
	assert.Equal(t, 200, d)
	assert.Equal(t, 0, c.UpdatePathsFor(42))
}
