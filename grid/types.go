package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for grid construction.
var (
	// ErrBadDimensions indicates a non-positive width or height.
	ErrBadDimensions = errors.New("grid: width and height must be positive")
	// ErrNilPassability indicates that New was called without a passability source.
	ErrNilPassability = errors.New("grid: passability source is nil")
	// ErrUnknownTile indicates an unsupported tiling scheme.
	ErrUnknownTile = errors.New("grid: unknown tile type")
	// ErrEmptyGrid indicates input rows are missing or empty.
	ErrEmptyGrid = errors.New("grid: input must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrOutOfBounds indicates a position or window outside the map.
	ErrOutOfBounds = errors.New("grid: position out of bounds")
)

// CostOne is the cost of one orthogonal step over a unit-cost cell.
const CostOne = 100

// DiagonalCost is the cost of one diagonal step over a unit-cost cell under Octile.
const DiagonalCost = CostOne * 34 / 24

// Position is an (X, Y) cell coordinate. X grows east, Y grows south.
type Position struct {
	X, Y int
}

// String renders the position as "(x,y)".
func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// TileType selects the connectivity and distance metric of a map.
type TileType int

const (
	// Tile is a square 4-connected map.
	Tile TileType = iota
	// Octile is a square 8-connected map with longer diagonals.
	Octile
	// OctileUnicost is a square 8-connected map where diagonals cost the same as orthogonal steps.
	OctileUnicost
	// Hex is a 6-connected map of flat-topped hexes in offset columns.
	Hex
)

var tileNames = [...]string{"tile", "octile", "octile_unicost", "hex"}

// String returns the lower-case configuration name of the tiling.
func (t TileType) String() string {
	if t < Tile || t > Hex {
		return fmt.Sprintf("TileType(%d)", int(t))
	}
	return tileNames[t]
}

// ParseTileType maps a configuration name back to its TileType.
func ParseTileType(s string) (TileType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tileNames {
		if n == name {
			return TileType(i), nil
		}
	}
	return Tile, fmt.Errorf("%w: %q", ErrUnknownTile, s)
}

// Passability reports whether a cell can be entered and what entering it costs.
// It is consulted once per cell when a Graph is built or sliced.
type Passability interface {
	CanEnter(p Position) (cost int, ok bool)
}

// PassabilityFunc adapts a plain function to Passability.
type PassabilityFunc func(p Position) (cost int, ok bool)

// CanEnter calls f(p).
func (f PassabilityFunc) CanEnter(p Position) (int, bool) { return f(p) }

// offset is one neighbour step; diagonal marks steps charged at DiagonalCost under Octile.
type offset struct {
	dx, dy   int
	diagonal bool
}

var (
	orthogonalOffsets = []offset{{0, -1, false}, {0, 1, false}, {-1, 0, false}, {1, 0, false}}
	octileOffsets     = append(append([]offset{}, orthogonalOffsets...),
		offset{1, -1, true}, offset{-1, -1, true}, offset{1, 1, true}, offset{-1, 1, true})
	hexEvenOffsets = append(append([]offset{}, orthogonalOffsets...), offset{1, -1, false}, offset{-1, -1, false})
	hexOddOffsets  = append(append([]offset{}, orthogonalOffsets...), offset{1, 1, false}, offset{-1, 1, false})
)

// neighbourOffsets returns the neighbour steps of a cell in column x.
func (t TileType) neighbourOffsets(x int) []offset {
	switch t {
	case Octile, OctileUnicost:
		return octileOffsets
	case Hex:
		if x%2 == 0 {
			return hexEvenOffsets
		}
		return hexOddOffsets
	default:
		return orthogonalOffsets
	}
}
