package hierarchy

import "github.com/katalvlaran/hpastar/abstract"

// Backup is the saved state of an entrance node taken over by Insert: its
// level and, per level, a deep copy of its outgoing edges.
type Backup struct {
	level int
	edges map[int][]abstract.Edge
}

func snapshot(layers *abstract.Layers, info *abstract.NodeInfo) Backup {
	b := Backup{level: info.Level, edges: make(map[int][]abstract.Edge, info.Level)}
	for l := 1; l <= info.Level; l++ {
		src := layers.At(l).Edges(info.ID)
		cp := make([]abstract.Edge, len(src))
		for i, e := range src {
			cp[i] = e.Clone()
		}
		b.edges[l] = cp
	}
	return b
}

// Level returns the level the node had before Insert.
func (b Backup) Level() int { return b.level }

// Edges returns a copy of the saved outgoing edges at level.
func (b Backup) Edges(level int) []abstract.Edge {
	src := b.edges[level]
	cp := make([]abstract.Edge, len(src))
	for i, e := range src {
		cp[i] = e.Clone()
	}
	return cp
}
