package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// obstacleRunes lists the characters that ParseRows treats as blocked.
const obstacleRunes = "@#TW"

// Rows is a rectangular ASCII map. It implements Passability: obstacle runes
// cannot be entered, everything else costs CostOne.
type Rows struct {
	width, height int
	cells         [][]rune
}

// ParseRows validates and wraps rows. Every row must have the same rune count.
func ParseRows(rows []string) (*Rows, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	r := &Rows{height: len(rows), cells: make([][]rune, len(rows))}
	for y, line := range rows {
		r.cells[y] = []rune(line)
		if y == 0 {
			r.width = len(r.cells[0])
			continue
		}
		if len(r.cells[y]) != r.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(r.cells[y]), r.width)
		}
	}
	return r, nil
}

// ReadRows reads one map row per line from src, skipping blank lines.
func ReadRows(src io.Reader) ([]string, error) {
	var rows []string
	sc := bufio.NewScanner(src)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: read rows: %w", err)
	}
	return rows, nil
}

// Width returns the number of columns.
func (r *Rows) Width() int { return r.width }

// Height returns the number of rows.
func (r *Rows) Height() int { return r.height }

// CanEnter implements Passability.
func (r *Rows) CanEnter(p Position) (int, bool) {
	return CostOne, !strings.ContainsRune(obstacleRunes, r.cells[p.Y][p.X])
}

// FromRows parses rows and builds a Graph over them in one step.
func FromRows(rows []string, tile TileType) (*Graph, error) {
	r, err := ParseRows(rows)
	if err != nil {
		return nil, err
	}
	return New(r.Width(), r.Height(), tile, r)
}
