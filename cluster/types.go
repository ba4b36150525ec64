package cluster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/hpastar/grid"
)

// Sentinel errors for cluster construction.
var (
	// ErrBadClusterSize indicates a non-positive cluster size.
	ErrBadClusterSize = errors.New("cluster: cluster size must be positive")
	// ErrNilGrid indicates that Build received no grid.
	ErrNilGrid = errors.New("cluster: grid is nil")
	// ErrUnknownStyle indicates an unsupported entrance style name.
	ErrUnknownStyle = errors.New("cluster: unknown entrance style")
)

// MaxEntranceWidth is the longest run EndEntrance still collapses to one point.
const MaxEntranceWidth = 6

// EntranceStyle selects how border runs become entrances.
type EntranceStyle int

const (
	// MiddleEntrance places one entrance in the middle of every run.
	MiddleEntrance EntranceStyle = iota
	// EndEntrance places two entrances, one per end, on runs wider than MaxEntranceWidth.
	EndEntrance
)

// String returns the configuration name of the style.
func (s EntranceStyle) String() string {
	switch s {
	case MiddleEntrance:
		return "middle"
	case EndEntrance:
		return "end"
	default:
		return fmt.Sprintf("EntranceStyle(%d)", int(s))
	}
}

// ParseEntranceStyle maps "middle" or "end" to an EntranceStyle.
func ParseEntranceStyle(s string) (EntranceStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "middle":
		return MiddleEntrance, nil
	case "end":
		return EndEntrance, nil
	}
	return MiddleEntrance, fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// Orientation describes how the two cells of an entrance touch.
type Orientation int

const (
	// Horizontal entrances cross a vertical border: the cells sit side by side.
	Horizontal Orientation = iota
	// Vertical entrances cross a horizontal border: one cell above the other.
	Vertical
	// HDiag1, HDiag2, VDiag1 and VDiag2 are corner-touching entrances.
	HDiag1
	HDiag2
	VDiag1
	VDiag2
)

// InterEdgeCost is the cost of the edge joining the two cells of an entrance.
// Only Octile charges diagonal orientations more than CostOne.
func InterEdgeCost(tile grid.TileType, o Orientation) int {
	if tile == grid.Octile && o >= HDiag1 {
		return grid.DiagonalCost
	}
	return grid.CostOne
}

// EntrancePoint binds an abstract node to a cell of its cluster.
type EntrancePoint struct {
	AbstractID int
	Local      grid.Position // relative to the cluster origin
}

// Entrance joins two neighbouring clusters through one pair of cells.
// Entrances only live for the duration of a build.
type Entrance struct {
	Cluster1, Cluster2 *Cluster
	Src, Dst           int // grid ids: Src in Cluster1, Dst in Cluster2
	Orientation        Orientation
}

// Level returns the highest level, at most maxLevel, whose cluster groups
// still separate the two clusters. Every entrance is at least level 1.
func (e Entrance) Level(maxLevel int) int {
	level := 1
	for l := 2; l <= maxLevel; l++ {
		n := 1 << (l - 1)
		if e.Cluster1.X/n == e.Cluster2.X/n && e.Cluster1.Y/n == e.Cluster2.Y/n {
			break
		}
		level = l
	}
	return level
}
