package abstract

// Layers holds one Graph per level, 1..MaxLevel.
type Layers struct {
	graphs []*Graph
}

// NewLayers creates empty layers for levels 1..maxLevel.
func NewLayers(maxLevel int) *Layers {
	l := &Layers{graphs: make([]*Graph, maxLevel)}
	for i := range l.graphs {
		l.graphs[i] = NewGraph(i + 1)
	}
	return l
}

// MaxLevel returns the highest level.
func (l *Layers) MaxLevel() int { return len(l.graphs) }

// At returns the layer of the given level (1-based).
func (l *Layers) At(level int) *Graph { return l.graphs[level-1] }

// AddNodeToAll registers info in every layer.
func (l *Layers) AddNodeToAll(info *NodeInfo) {
	for _, g := range l.graphs {
		g.AddNode(info)
	}
}

// Info returns the shared record of id from the lowest layer holding it.
func (l *Layers) Info(id int) *NodeInfo {
	for _, g := range l.graphs {
		if info := g.Info(id); info != nil {
			return info
		}
	}
	return nil
}
