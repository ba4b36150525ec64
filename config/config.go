package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hpastar/cluster"
	"github.com/katalvlaran/hpastar/grid"
	"github.com/katalvlaran/hpastar/hierarchy"
	"github.com/katalvlaran/hpastar/hpa"
	"github.com/katalvlaran/hpastar/metrics"
)

// MaxFileSize bounds configuration and map files.
const MaxFileSize = 1 << 20

// Sentinel errors returned by Load, Parse and Validate.
var (
	// ErrRead indicates that a configuration or map file could not be read.
	ErrRead = errors.New("config: read failed")
	// ErrInvalid indicates malformed YAML or a value rejected by validation.
	ErrInvalid = errors.New("config: invalid configuration")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the root of a configuration file.
type Config struct {
	Map       Map       `yaml:"map"`
	Hierarchy Hierarchy `yaml:"hierarchy"`
	Search    Search    `yaml:"search"`
	Log       Log       `yaml:"log"`
}

// Map selects the grid. Exactly one of File and Rows is set. A relative File
// is resolved against the directory of the configuration file.
type Map struct {
	File string   `yaml:"file,omitempty" validate:"required_without=Rows,excluded_with=Rows"`
	Rows []string `yaml:"rows,omitempty" validate:"required_without=File"`
	Tile string   `yaml:"tile" validate:"oneof=tile octile octile_unicost hex"`
}

// Hierarchy mirrors the hierarchy.Build options.
type Hierarchy struct {
	ClusterSize   int    `yaml:"cluster_size" validate:"gte=1"`
	MaxLevel      int    `yaml:"max_level" validate:"gte=1,lte=16"`
	EntranceStyle string `yaml:"entrance_style" validate:"oneof=middle end"`
	Workers       int    `yaml:"workers" validate:"gte=1,lte=256"`
}

// Search mirrors the hpa.Searcher options. A negative MaxPathsToRefine
// refines every hop.
type Search struct {
	MaxPathsToRefine int  `yaml:"max_paths_to_refine" validate:"gte=-1"`
	Smooth           bool `yaml:"smooth"`
}

// Log configures the slog handler of the command.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json auto"`
}

// Default returns the configuration used for omitted keys. Its map is empty
// and must be filled in before it validates.
func Default() Config {
	def := hierarchy.DefaultOptions()
	return Config{
		Map: Map{Tile: grid.Octile.String()},
		Hierarchy: Hierarchy{
			ClusterSize:   def.ClusterSize,
			MaxLevel:      def.MaxLevel,
			EntranceStyle: def.EntranceStyle.String(),
			Workers:       def.Workers,
		},
		Search: Search{MaxPathsToRefine: hpa.Unbounded, Smooth: true},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads, parses and validates the file at path. A relative map file is
// made relative to the directory holding path.
func Load(path string) (Config, error) {
	data, err := readLimited(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Map.File != "" && !filepath.IsAbs(cfg.Map.File) {
		cfg.Map.File = filepath.Join(filepath.Dir(path), cfg.Map.File)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Grid builds the configured grid, reading Map.File if Rows is empty.
func (c Config) Grid() (*grid.Graph, error) {
	tile, err := grid.ParseTileType(c.Map.Tile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	rows := c.Map.Rows
	if len(rows) == 0 {
		data, err := readLimited(c.Map.File)
		if err != nil {
			return nil, err
		}
		if rows, err = grid.ReadRows(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
	}
	g, err := grid.FromRows(rows, tile)
	if err != nil {
		return nil, fmt.Errorf("%w: map: %w", ErrInvalid, err)
	}
	return g, nil
}

// HierarchyOptions converts the hierarchy section into Build options.
func (c Config) HierarchyOptions(logger *slog.Logger, m *metrics.Metrics) ([]hierarchy.Option, error) {
	style, err := cluster.ParseEntranceStyle(c.Hierarchy.EntranceStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return []hierarchy.Option{
		hierarchy.WithClusterSize(c.Hierarchy.ClusterSize),
		hierarchy.WithMaxLevel(c.Hierarchy.MaxLevel),
		hierarchy.WithEntranceStyle(style),
		hierarchy.WithWorkers(c.Hierarchy.Workers),
		hierarchy.WithLogger(logger),
		hierarchy.WithMetrics(m),
	}, nil
}

// SearchOptions converts the search section into Searcher options.
func (c Config) SearchOptions() []hpa.Option {
	return []hpa.Option{
		hpa.WithMaxPathsToRefine(c.Search.MaxPathsToRefine),
		hpa.WithSmoothing(c.Search.Smooth),
	}
}

// NewLogger returns a logger writing to w in the configured format and level.
// The auto format writes text to terminals and JSON everywhere else.
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	format := l.Format
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			format = "text"
		}
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrRead, path, MaxFileSize)
	}
	return data, nil
}
