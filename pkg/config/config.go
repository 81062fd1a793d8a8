// Package config holds the tunable parameters of the skeletal graph
// tools, loaded from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config collects the engine tuning knobs. The clean command reads
// CollapseMinLength and SimpleEdgeSplineCount; the other fields are
// loaded and defaulted but no command or package reads them.
type Config struct {
	// DefaultRadius is the default vertex radius. The importer does not
	// read it; it falls back to skeletal.DefaultVertexRadius.
	DefaultRadius float32 `toml:"default_radius"`

	// MaxRadius is the largest vertex radius. The importer does not read
	// it; it clamps against skeletal.MaxVertexRadius.
	MaxRadius float32 `toml:"max_radius"`

	// CollapseMinLength is the arc-length threshold below which edges are
	// collapsed during cleaning.
	CollapseMinLength float32 `toml:"collapse_min_length"`

	// SimpleEdgeSplineCount is the sample count at or below which an edge
	// counts as simple.
	SimpleEdgeSplineCount int `toml:"simple_edge_spline_count"`

	// SplitDisplacement is the arc length by which joined edges are
	// pulled back from their junction when splitting along a path.
	SplitDisplacement float32 `toml:"split_displacement"`

	// ExportScale is a <scale> header value. The commands do not read it;
	// they re-export the scale recorded in the input file.
	ExportScale float32 `toml:"export_scale"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultRadius:         1,
		MaxRadius:             10000,
		CollapseMinLength:     0.5,
		SimpleEdgeSplineCount: 2,
		SplitDisplacement:     1,
		ExportScale:           1,
	}
}

// Load reads a TOML file and overlays it on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
