package hierarchy_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/hpastar/abstract"
	"github.com/katalvlaran/hpastar/cluster"
	"github.com/katalvlaran/hpastar/grid"
	"github.com/katalvlaran/hpastar/hierarchy"
	"github.com/katalvlaran/hpastar/internal/maptest"
)

type levelSize struct{ nodes, edges int }

func sizes(m *hierarchy.Map) []levelSize {
	out := make([]levelSize, m.MaxLevel())
	for l := 1; l <= m.MaxLevel(); l++ {
		out[l-1] = levelSize{m.NodeCount(l), m.EdgeCount(l)}
	}
	return out
}

// layerEdges maps level to node id to a copy of that node's edges.
type layerEdges map[int]map[int][]abstract.Edge

// edgeDump copies every edge list of every level, keeping edge order.
func edgeDump(m *hierarchy.Map) layerEdges {
	out := make(layerEdges, m.MaxLevel())
	for l := 1; l <= m.MaxLevel(); l++ {
		layer := m.Layer(l)
		nodes := make(map[int][]abstract.Edge, layer.NodeCount())
		for _, id := range layer.NodeIDs() {
			edges := make([]abstract.Edge, 0, len(layer.Edges(id)))
			for _, e := range layer.Edges(id) {
				edges = append(edges, e.Clone())
			}
			nodes[id] = edges
		}
		out[l] = nodes
	}
	return out
}

func pos(x, y int) grid.Position { return grid.Position{X: x, Y: y} }

func sampleMap(t *testing.T, tile grid.TileType, opts ...hierarchy.Option) *hierarchy.Map {
	t.Helper()
	g, err := grid.FromRows(maptest.SampleRows(), tile)
	require.NoError(t, err)
	m, err := hierarchy.Build(context.Background(), g, opts...)
	require.NoError(t, err)
	return m
}

//----------------------------------------------------------------------------//
// Build
//----------------------------------------------------------------------------//

func TestBuild_Errors(t *testing.T) {
	_, err := hierarchy.Build(context.Background(), nil)
	assert.ErrorIs(t, err, hierarchy.ErrNilGrid)

	assert.Panics(t, func() { hierarchy.WithClusterSize(0) })
	assert.Panics(t, func() { hierarchy.WithMaxLevel(0) })
	assert.Panics(t, func() { hierarchy.WithWorkers(0) })
}

func TestBuild_Cancelled(t *testing.T) {
	g, err := grid.FromRows(maptest.SampleRows(), grid.Octile)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = hierarchy.Build(ctx, g)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestBuild_SampleCounts pins node and edge counts of the sample map. Counts
// depend on topology only, so every tiling yields the same numbers.
func TestBuild_SampleCounts(t *testing.T) {
	cases := []struct {
		style       cluster.EntranceStyle
		size, level int
		want        []levelSize
	}{
		{cluster.EndEntrance, 10, 2, []levelSize{{81, 406}, {32, 260}}},
		{cluster.EndEntrance, 10, 1, []levelSize{{81, 406}}},
		{cluster.MiddleEntrance, 10, 2, []levelSize{{60, 216}, {20, 102}}},
		{cluster.EndEntrance, 5, 3, []levelSize{{244, 840}, {106, 662}, {36, 326}}},
		{cluster.EndEntrance, 8, 3, []levelSize{{112, 494}, {69, 496}, {37, 344}}},
		{cluster.MiddleEntrance, 8, 3, []levelSize{{92, 310}, {46, 216}, {24, 146}}},
	}
	for _, tile := range []grid.TileType{grid.Tile, grid.Octile, grid.OctileUnicost, grid.Hex} {
		for _, tc := range cases {
			name := fmt.Sprintf("%v/%v/size%d/levels%d", tile, tc.style, tc.size, tc.level)
			t.Run(name, func(t *testing.T) {
				m := sampleMap(t, tile,
					hierarchy.WithEntranceStyle(tc.style),
					hierarchy.WithClusterSize(tc.size),
					hierarchy.WithMaxLevel(tc.level))
				assert.Equal(t, tc.want, sizes(m))
			})
		}
	}
}

// TestBuild_WorkersDoNotChangeResult builds the same map serially and in parallel.
func TestBuild_WorkersDoNotChangeResult(t *testing.T) {
	serial := sampleMap(t, grid.Octile, hierarchy.WithClusterSize(5), hierarchy.WithMaxLevel(3))
	parallel := sampleMap(t, grid.Octile, hierarchy.WithClusterSize(5), hierarchy.WithMaxLevel(3), hierarchy.WithWorkers(8))
	require.Equal(t, sizes(serial), sizes(parallel))
	for l := 1; l <= 3; l++ {
		for _, id := range serial.Layer(l).NodeIDs() {
			assert.Equal(t, serial.Layer(l).Edges(id), parallel.Layer(l).Edges(id), "level %d node %d", l, id)
		}
	}
}

func TestBuild_NodeInfo(t *testing.T) {
	m := sampleMap(t, grid.Octile)

	first := m.Info(0)
	require.NotNil(t, first)
	assert.Equal(t, abstract.NodeInfo{ID: 0, Level: 1, ClusterID: 0, Pos: pos(9, 0), ConcreteID: 9}, *first)
	assert.Equal(t, abstract.NodeInfo{ID: 4, Level: 2, ClusterID: 1, Pos: pos(19, 2), ConcreteID: 99}, *m.Info(4))
	assert.True(t, m.Layer(2).HasNode(4))
	assert.False(t, m.Layer(2).HasNode(0))

	var ids []int
	for _, e := range m.Cluster(0).Entrances() {
		ids = append(ids, e.AbstractID)
	}
	assert.Equal(t, []int{0, 2, 12, 14}, ids)

	id, ok := m.AbstractNodeAt(pos(0, 19))
	require.True(t, ok)
	assert.Equal(t, 34, id)
	_, ok = m.AbstractNodeAt(pos(5, 5))
	assert.False(t, ok)
}

// TestBuild_EdgesOfEntrance pins the edges of the entrance at (0,19).
func TestBuild_EdgesOfEntrance(t *testing.T) {
	m := sampleMap(t, grid.Octile)

	var l1 [][2]int
	for _, e := range m.Layer(1).Edges(34) {
		l1 = append(l1, [2]int{e.Target, e.Cost})
		assert.Nil(t, e.InnerPath)
	}
	assert.Equal(t, [][2]int{{35, 100}, {13, 900}, {15, 1187}, {36, 700}}, l1)

	l2 := m.Layer(2).Edges(34)
	require.Len(t, l2, 8)
	assert.Equal(t, abstract.Edge{Target: 35, Cost: 100}, l2[0])
	assert.Equal(t, abstract.Edge{Target: 4, Cost: 3351, InnerPath: []int{34, 13, 12, 0, 1, 4}}, l2[1])
	assert.Equal(t, abstract.Edge{Target: 24, Cost: 3838, InnerPath: []int{34, 15, 14, 2, 3, 17, 24}}, l2[7])

	back, ok := m.Layer(2).Edge(4, 34)
	require.True(t, ok)
	assert.Equal(t, []int{4, 1, 0, 12, 13, 34}, back.InnerPath)
}

func TestMap_Windows(t *testing.T) {
	m := sampleMap(t, grid.Octile)
	assert.Equal(t, abstract.Window{X0: 0, Y0: 20, X1: 19, Y1: 39}, m.GroupWindow(pos(13, 27), 2))
	assert.Equal(t, abstract.Window{X0: 10, Y0: 20, X1: 19, Y1: 29}, m.GroupWindow(pos(13, 27), 1))
	assert.Equal(t, abstract.Window{X0: 0, Y0: 0, X1: 39, Y1: 39}, m.WholeMap())

	c, ok := m.FindClusterForPosition(pos(13, 27))
	require.True(t, ok)
	assert.Equal(t, 9, c.ID)
	_, ok = m.FindClusterForPosition(pos(40, 0))
	assert.False(t, ok)

	assert.True(t, m.SameGroup(0, 2, 2))
	assert.True(t, m.SameGroup(0, 4, 2))
	assert.True(t, m.SameGroup(0, 34, 2))
	assert.False(t, m.SameGroup(0, 52, 2))
}

//----------------------------------------------------------------------------//
// Insert / Remove
//----------------------------------------------------------------------------//

// DynamicSuite checks the insert/remove inverse law on the sample map.
type DynamicSuite struct {
	suite.Suite
	m    *hierarchy.Map
	base []levelSize
	dump layerEdges
}

func (s *DynamicSuite) SetupTest() {
	s.m = sampleMap(s.T(), grid.Octile)
	s.base = sizes(s.m)
	s.dump = edgeDump(s.m)
	s.Require().Equal([]levelSize{{81, 406}, {32, 260}}, s.base)
}

// fresh builds a second copy of the sample map with points inserted.
func (s *DynamicSuite) fresh(points ...grid.Position) *hierarchy.Map {
	m := sampleMap(s.T(), grid.Octile)
	for _, p := range points {
		_, err := m.Insert(p)
		s.Require().NoError(err)
	}
	return m
}

func (s *DynamicSuite) insertAll(points ...grid.Position) []int {
	ids := make([]int, len(points))
	for i, p := range points {
		id, err := s.m.Insert(p)
		s.Require().NoError(err)
		ids[i] = id
	}
	return ids
}

func (s *DynamicSuite) TestInsertSyntheticNodes() {
	ids := s.insertAll(pos(18, 0), pos(21, 0))
	s.Equal([]int{81, 82}, ids)
	s.Equal([]levelSize{{83, 418}, {34, 290}}, sizes(s.m))
	for _, id := range ids {
		s.Equal(2, s.m.Info(id).Level)
		_, ok := s.m.Backup(id)
		s.False(ok)
	}

	s.Require().NoError(s.m.Remove(ids[0]))
	s.Require().NoError(s.m.Remove(ids[1]))
	s.Equal(s.dump, edgeDump(s.m))
	_, ok := s.m.AbstractNodeAt(pos(18, 0))
	s.False(ok)
}

func (s *DynamicSuite) TestInsertExistingEntrance() {
	ids := s.insertAll(pos(0, 19))
	s.Equal([]int{34}, ids)
	s.Equal(s.base, sizes(s.m))

	b, ok := s.m.Backup(34)
	s.Require().True(ok)
	s.Equal(2, b.Level())
	s.Len(b.Edges(1), 4)
	s.Len(b.Edges(2), 8)

	s.Require().NoError(s.m.Remove(34))
	s.Equal(s.dump, edgeDump(s.m))
	_, ok = s.m.Backup(34)
	s.False(ok)
	s.True(s.m.Layer(2).HasNode(34))
}

// TestInsertLowLevelEntrance takes over an entrance that only lives on level 1.
func (s *DynamicSuite) TestInsertLowLevelEntrance() {
	ids := s.insertAll(pos(1, 9), pos(29, 29))
	s.Equal([]int{81, 70}, ids)
	s.Equal([]levelSize{{82, 414}, {34, 292}}, sizes(s.m))

	b, ok := s.m.Backup(70)
	s.Require().True(ok)
	s.Equal(1, b.Level())
	s.Equal(2, s.m.Info(70).Level)

	s.Require().NoError(s.m.Remove(70))
	s.False(s.m.Layer(2).HasNode(70))
	s.True(s.m.Layer(1).HasNode(70))
	s.Equal(1, s.m.Info(70).Level)
	s.Equal(edgeDump(s.fresh(pos(1, 9))), edgeDump(s.m))
	s.Require().NoError(s.m.Remove(81))
	s.Equal(s.dump, edgeDump(s.m))
}

// TestRestoreKeepsEdgeOrder takes over an entrance on each level and checks
// that every edge list, the neighbours' included, comes back in its old order.
func (s *DynamicSuite) TestRestoreKeepsEdgeOrder() {
	for _, p := range []grid.Position{pos(0, 19), pos(29, 29)} {
		id := s.insertAll(p)[0]
		s.Require().NoError(s.m.Remove(id))
		s.Equal(s.dump, edgeDump(s.m), "entrance %v", p)
	}
}

// TestRemoveOrder checks every removal order of mixed synthetic and entrance inserts.
func (s *DynamicSuite) TestRemoveOrder() {
	points := []grid.Position{pos(5, 5), pos(0, 19), pos(1, 18), pos(35, 35)}
	orders := [][]int{
		{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 0, 3, 2}, {2, 0, 3, 1}, {1, 2, 0, 3}, {2, 1, 3, 0},
	}
	for _, order := range orders {
		ids := s.insertAll(points...)
		for _, i := range order {
			s.Require().NoError(s.m.Remove(ids[i]))
		}
		s.Equal(s.dump, edgeDump(s.m), "order %v", order)
	}
}

// TestEntranceThenNeighbour removes a taken-over entrance while a node of
// its cluster is still inserted. The map must match one where only that
// node was inserted, including the edges between the two.
func (s *DynamicSuite) TestEntranceThenNeighbour() {
	ids := s.insertAll(pos(0, 19), pos(1, 18))
	s.Equal([]int{34, 81}, ids)
	s.Equal([]levelSize{{82, 414}, {33, 276}}, sizes(s.m))

	s.Require().NoError(s.m.Remove(34))
	alone := s.fresh(pos(1, 18))
	s.Equal(sizes(alone), sizes(s.m))
	s.Equal([]levelSize{{82, 414}, {33, 276}}, sizes(s.m))
	s.Equal(edgeDump(alone), edgeDump(s.m))
	_, ok := s.m.Layer(1).Edge(81, 34)
	s.True(ok)

	s.Require().NoError(s.m.Remove(81))
	s.Equal(s.dump, edgeDump(s.m))
}

func (s *DynamicSuite) TestReferenceCounting() {
	ids := s.insertAll(pos(5, 5), pos(5, 5))
	s.Equal(ids[0], ids[1])
	s.Equal([]levelSize{{82, 414}, {33, 276}}, sizes(s.m))

	s.Require().NoError(s.m.Remove(ids[0]))
	s.Equal([]levelSize{{82, 414}, {33, 276}}, sizes(s.m))
	s.Require().NoError(s.m.Remove(ids[1]))
	s.Equal(s.dump, edgeDump(s.m))

	s.ErrorIs(s.m.Remove(ids[0]), hierarchy.ErrNotInserted)
}

func (s *DynamicSuite) TestIdsAreNotReused() {
	a := s.insertAll(pos(5, 5))[0]
	s.Require().NoError(s.m.Remove(a))
	b := s.insertAll(pos(6, 6))[0]
	s.NotEqual(a, b)
	s.Require().NoError(s.m.Remove(b))
}

func (s *DynamicSuite) TestInsertErrors() {
	_, err := s.m.Insert(pos(-1, 3))
	s.ErrorIs(err, hierarchy.ErrOutOfBounds)
	_, err = s.m.Insert(pos(19, 0))
	s.ErrorIs(err, hierarchy.ErrObstacle)
	s.ErrorIs(s.m.Remove(3), hierarchy.ErrNotInserted)
	s.Equal(s.base, sizes(s.m))
}

func TestDynamicSuite(t *testing.T) {
	suite.Run(t, new(DynamicSuite))
}

// TestInverseLaw_RandomMaps inserts four random points and removes them in
// every order, on several random maps and configurations. Every edge list
// must come back in its original order.
func TestInverseLaw_RandomMaps(t *testing.T) {
	configs := []struct{ w, h, size, level int }{
		{30, 30, 8, 2},
		{37, 23, 6, 3},
		{20, 20, 10, 1},
		{25, 25, 5, 2},
	}
	for _, tile := range []grid.TileType{grid.Tile, grid.Octile, grid.Hex} {
		for seed := uint32(1); seed <= 3; seed++ {
			for _, cfg := range configs {
				name := fmt.Sprintf("%v/seed%d/%dx%d/%d", tile, seed, cfg.w, cfg.h, cfg.size)
				t.Run(name, func(t *testing.T) {
					g, err := grid.FromRows(maptest.RandomRows(cfg.w, cfg.h, seed, 20), tile)
					require.NoError(t, err)
					m, err := hierarchy.Build(context.Background(), g,
						hierarchy.WithClusterSize(cfg.size), hierarchy.WithMaxLevel(cfg.level))
					require.NoError(t, err)
					base := edgeDump(m)

					free := maptest.FreeCells(g)
					r := maptest.NewLCG(seed * 7)
					points := make([]grid.Position, 4)
					for i := range points {
						points[i] = free[r.Intn(len(free))]
					}
					for _, order := range permutations(4) {
						ids := make([]int, len(points))
						for i, p := range points {
							ids[i], err = m.Insert(p)
							require.NoError(t, err)
						}
						for _, i := range order {
							require.NoError(t, m.Remove(ids[i]))
						}
						require.Equal(t, base, edgeDump(m), "order %v", order)
					}
				})
			}
		}
	}
}

func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			q := make([]int, 0, n)
			q = append(q, p[:i]...)
			q = append(q, n-1)
			q = append(q, p[i:]...)
			out = append(out, q)
		}
	}
	return out
}
