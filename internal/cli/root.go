package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the hpa command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hpa",
		Short: "Hierarchical path-finding on grid maps",
		Long: `hpa builds a multi-level abstraction of an ASCII grid map and answers
path queries on it. Maps, tiling, hierarchy parameters and logging are read
from a YAML configuration file.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "hpa.yaml", "Path to the YAML configuration file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Find a path between two cells",
		Args:  cobra.NoArgs,
		RunE:  RunPath,
	}
	pathCmd.Flags().String("from", "", "Start cell as x,y")
	pathCmd.Flags().String("to", "", "End cell as x,y")
	pathCmd.Flags().Int("max-refine", 0, "Refinement budget, overrides the configuration (negative: unbounded)")
	pathCmd.Flags().Bool("no-smooth", false, "Skip path smoothing")
	pathCmd.Flags().Bool("render", false, "Draw the path over the map")
	pathCmd.Flags().Bool("json", false, "Print machine-readable path output")
	_ = pathCmd.MarkFlagRequired("from")
	_ = pathCmd.MarkFlagRequired("to")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Build the hierarchy and report its size per level",
		Args:  cobra.NoArgs,
		RunE:  RunStats,
	}
	statsCmd.Flags().Bool("metrics", false, "Dump collected Prometheus metrics in text format")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hpa %s\n", version)
		},
	}

	rootCmd.AddCommand(pathCmd, statsCmd, versionCmd)
	return rootCmd
}
