// Package maptest holds map fixtures shared by the tests of several packages.
package maptest

import (
	"strings"

	"github.com/katalvlaran/hpastar/grid"
)

// SampleRows returns the 40×40 reference map: a two-cell-thick diagonal wall
// running south-east from (19,0)/(20,0) to (33,14)/(34,14), a horizontal wall
// on row 26 with a gap at x 12..14, a 5×5 block at (24..28, 30..34) and a
// vertical wall on column 8 for rows 5..21.
func SampleRows() []string {
	const size = 40
	cells := make([][]byte, size)
	for y := range cells {
		cells[y] = []byte(strings.Repeat(".", size))
	}
	for y := 0; y < 15; y++ {
		for _, x := range []int{19 + y, 20 + y} {
			if x < size {
				cells[y][x] = '@'
			}
		}
	}
	for x := 4; x < 36; x++ {
		if x < 12 || x > 14 {
			cells[26][x] = '@'
		}
	}
	for y := 30; y < 35; y++ {
		for x := 24; x < 29; x++ {
			cells[y][x] = '@'
		}
	}
	for y := 5; y < 22; y++ {
		cells[y][8] = '@'
	}
	rows := make([]string, size)
	for y, r := range cells {
		rows[y] = string(r)
	}
	return rows
}

// LCG is a tiny linear congruential generator. Its sequence is fixed forever,
// unlike math/rand, so random maps stay identical across Go releases.
type LCG struct{ state uint32 }

// NewLCG seeds a generator.
func NewLCG(seed uint32) *LCG { return &LCG{state: seed & 0x7fffffff} }

// Next advances the generator.
func (r *LCG) Next() uint32 {
	r.state = (r.state*1103515245 + 12345) & 0x7fffffff
	return r.state
}

// Intn returns a value in [0, n).
func (r *LCG) Intn(n int) int { return int(r.Next()>>16) % n }

// RandomRows returns a w×h map where each cell is an obstacle with the given
// percentage probability.
func RandomRows(w, h int, seed uint32, density int) []string {
	r := NewLCG(seed)
	rows := make([]string, h)
	for y := range rows {
		var b strings.Builder
		for x := 0; x < w; x++ {
			if r.Intn(100) < density {
				b.WriteByte('@')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

// FreeCells lists the non-obstacle cells of g in row-major order.
func FreeCells(g *grid.Graph) []grid.Position {
	var out []grid.Position
	for id := 0; id < g.NodeCount(); id++ {
		if !g.IsObstacle(id) {
			out = append(out, g.Position(id))
		}
	}
	return out
}

// ValidPath reports whether cells is a walk of adjacent free cells from start
// to end without consecutive duplicates. An empty walk is valid.
func ValidPath(g *grid.Graph, cells []grid.Position, start, end grid.Position) bool {
	if len(cells) == 0 {
		return true
	}
	if cells[0] != start || cells[len(cells)-1] != end {
		return false
	}
	for i := 1; i < len(cells); i++ {
		a, b := cells[i-1], cells[i]
		if a == b || !g.Adjacent(a, b) || g.IsObstacle(g.ID(b)) {
			return false
		}
	}
	return true
}
