package grid

// Heuristic estimates the cost of moving between two positions.
// Every heuristic in this package is admissible and consistent for its tiling
// on unit-cost maps.
type Heuristic func(a, b Position) int

// HeuristicFor returns the metric that matches tile.
func HeuristicFor(tile TileType) Heuristic {
	switch tile {
	case Octile:
		return DiagonalDistance
	case OctileUnicost:
		return OctileUnicostDistance
	case Hex:
		return VancouverDistance
	default:
		return ManhattanDistance
	}
}

// ManhattanDistance is |dx|+|dy| scaled by CostOne.
func ManhattanDistance(a, b Position) int {
	return (abs(a.X-b.X) + abs(a.Y-b.Y)) * CostOne
}

// DiagonalDistance is the obstacle-free octile cost: min(dx,dy) diagonal
// steps plus the remaining straight steps.
func DiagonalDistance(a, b Position) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo*DiagonalCost + (hi-lo)*CostOne
}

// OctileUnicostDistance is max(dx,dy) scaled by CostOne.
func OctileUnicostDistance(a, b Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y)) * CostOne
}

// VancouverDistance is the step distance between two cells of an offset-column
// hex map, scaled by CostOne.
func VancouverDistance(a, b Position) int {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	correction := 0
	if dx%2 != 0 {
		switch {
		case b.Y < a.Y:
			correction = b.X % 2
		case b.Y > a.Y:
			correction = a.X % 2
		}
	}
	return (max(0, dy-dx/2-correction) + dx) * CostOne
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
