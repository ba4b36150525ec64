// Package config loads the YAML configuration shared by the hpa command.
//
// A configuration names a map (an ASCII file or inline rows) and its tiling,
// the hierarchy parameters used by hierarchy.Build, the refinement budget and
// smoothing switch used by hpa.Searcher, and the log level and format.
//
// Files are decoded with gopkg.in/yaml.v3 over Default(), so omitted keys keep
// their defaults, and then checked with go-playground/validator struct tags.
// Every failure wraps ErrInvalid or ErrRead:
//
//	cfg, err := config.Load("hpa.yaml")
//	if errors.Is(err, config.ErrInvalid) {
//	    // bad value in the file
//	}
package config
