package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RunStats builds the configured hierarchy and prints its size.
func RunStats(cmd *cobra.Command, args []string) error {
	withMetrics, err := cmd.Flags().GetBool("metrics")
	if err != nil {
		return fmt.Errorf("failed to read --metrics flag: %w", err)
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	g := s.m.Grid()
	fmt.Fprintf(out, "map: %dx%d %v\n", g.Width(), g.Height(), g.Tile())
	fmt.Fprintf(out, "clusters: %d (size %d)\n", len(s.m.Clusters()), s.m.ClusterSize())
	for level := 1; level <= s.m.MaxLevel(); level++ {
		fmt.Fprintf(out, "level %d: %d nodes, %d edges\n", level, s.m.NodeCount(level), s.m.EdgeCount(level))
	}
	if withMetrics {
		return writeMetrics(out, s.registry)
	}
	return nil
}
