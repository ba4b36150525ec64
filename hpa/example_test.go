package hpa_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/hpastar/grid"
	"github.com/katalvlaran/hpastar/hierarchy"
	"github.com/katalvlaran/hpastar/hpa"
)

// ExampleSearcher_FindPath routes around two walls on a small octile map
// split into four 4×4 clusters.
func ExampleSearcher_FindPath() {
	g, err := grid.FromRows([]string{
		"........",
		"..@@@@..",
		"......@.",
		"......@.",
		"@@@@..@.",
		"........",
		"........",
		"........",
	}, grid.Octile)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	m, err := hierarchy.Build(context.Background(), g,
		hierarchy.WithClusterSize(4),
		hierarchy.WithMaxLevel(1),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	path, err := hpa.NewSearcher(m).FindPath(grid.Position{X: 0, Y: 0}, grid.Position{X: 0, Y: 7})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	cells := make([]string, len(path))
	for i, n := range path {
		cells[i] = n.Pos.String()
	}
	fmt.Println(strings.Join(cells, " "))
	// Output: (0,0) (1,1) (2,2) (3,3) (4,4) (3,5) (2,6) (1,7) (0,7)
}
