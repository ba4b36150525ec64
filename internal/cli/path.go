package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hpastar/grid"
	"github.com/katalvlaran/hpastar/hpa"
)

type pathNodeJSON struct {
	Level int `json:"level"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

type pathJSON struct {
	From  pathNodeJSON   `json:"from"`
	To    pathNodeJSON   `json:"to"`
	Found bool           `json:"found"`
	Nodes []pathNodeJSON `json:"nodes"`
}

// RunPath answers one query from --from to --to.
func RunPath(cmd *cobra.Command, args []string) error {
	from, err := positionFlag(cmd, "from")
	if err != nil {
		return err
	}
	to, err := positionFlag(cmd, "to")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}
	render, err := cmd.Flags().GetBool("render")
	if err != nil {
		return fmt.Errorf("failed to read --render flag: %w", err)
	}
	maxRefine, err := cmd.Flags().GetInt("max-refine")
	if err != nil {
		return fmt.Errorf("failed to read --max-refine flag: %w", err)
	}
	noSmooth, err := cmd.Flags().GetBool("no-smooth")
	if err != nil {
		return fmt.Errorf("failed to read --no-smooth flag: %w", err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	opts := s.cfg.SearchOptions()
	if cmd.Flags().Changed("max-refine") {
		opts = append(opts, hpa.WithMaxPathsToRefine(maxRefine))
	}
	if noSmooth {
		opts = append(opts, hpa.WithSmoothing(false))
	}

	path, err := hpa.NewSearcher(s.m, opts...).FindPath(from, to)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writePathJSON(out, from, to, path)
	}
	if len(path) == 0 {
		fmt.Fprintf(out, "no path from %v to %v\n", from, to)
		return nil
	}
	fmt.Fprintf(out, "%d nodes from %v to %v\n", len(path), from, to)
	for _, n := range path {
		fmt.Fprintf(out, "%d %v\n", n.Level, n.Pos)
	}
	if render {
		fmt.Fprint(out, Render(s.m.Grid(), path))
	}
	return nil
}

func writePathJSON(w io.Writer, from, to grid.Position, path []hpa.PathNode) error {
	doc := pathJSON{
		From:  pathNodeJSON{Level: 1, X: from.X, Y: from.Y},
		To:    pathNodeJSON{Level: 1, X: to.X, Y: to.Y},
		Found: len(path) > 0,
		Nodes: make([]pathNodeJSON, len(path)),
	}
	for i, n := range path {
		doc.Nodes[i] = pathNodeJSON{Level: n.Level, X: n.Pos.X, Y: n.Pos.Y}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Render draws g with '@' for obstacles, '*' for path cells, 'o' for
// unrefined abstract nodes and 'S'/'E' for the path ends.
func Render(g *grid.Graph, path []hpa.PathNode) string {
	cells := make([][]byte, g.Height())
	for y := range cells {
		cells[y] = make([]byte, g.Width())
		for x := range cells[y] {
			cells[y][x] = '.'
			if g.IsObstacle(g.ID(grid.Position{X: x, Y: y})) {
				cells[y][x] = '@'
			}
		}
	}
	for i, n := range path {
		mark := byte('*')
		switch {
		case i == 0:
			mark = 'S'
		case i == len(path)-1:
			mark = 'E'
		case !n.Concrete():
			mark = 'o'
		}
		cells[n.Pos.Y][n.Pos.X] = mark
	}
	var b strings.Builder
	for _, row := range cells {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
