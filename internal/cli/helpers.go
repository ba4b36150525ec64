package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hpastar/config"
	"github.com/katalvlaran/hpastar/grid"
	"github.com/katalvlaran/hpastar/hierarchy"
	"github.com/katalvlaran/hpastar/metrics"
)

// session is everything a command needs after loading its configuration.
type session struct {
	cfg      config.Config
	m        *hierarchy.Map
	registry *prometheus.Registry
}

// openSession loads --config, builds the grid and the hierarchy. Logs go to
// the command's error stream.
func openSession(cmd *cobra.Command) (*session, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to read --config flag: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())

	g, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	registry := prometheus.NewRegistry()
	opts, err := cfg.HierarchyOptions(logger, metrics.New(registry))
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	m, err := hierarchy.Build(ctx, g, opts...)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, m: m, registry: registry}, nil
}

// ParsePosition reads "x,y" into a grid position.
func ParsePosition(s string) (grid.Position, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return grid.Position{}, fmt.Errorf("invalid position %q (want x,y)", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Position{}, fmt.Errorf("invalid x in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Position{}, fmt.Errorf("invalid y in %q: %w", s, err)
	}
	return grid.Position{X: x, Y: y}, nil
}

func positionFlag(cmd *cobra.Command, name string) (grid.Position, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return grid.Position{}, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	p, err := ParsePosition(value)
	if err != nil {
		return grid.Position{}, fmt.Errorf("--%s: %w", name, err)
	}
	return p, nil
}

// writeMetrics dumps every family gathered from g in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
