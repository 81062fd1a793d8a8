package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultRadius != 1 {
		t.Errorf("default radius = %g, want 1", cfg.DefaultRadius)
	}
	if cfg.MaxRadius != 10000 {
		t.Errorf("max radius = %g, want 10000", cfg.MaxRadius)
	}
	if cfg.SimpleEdgeSplineCount != 2 {
		t.Errorf("simple-edge spline count = %d, want 2", cfg.SimpleEdgeSplineCount)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skelgraph.toml")
	content := "collapse_min_length = 0.25\nexport_scale = 4.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CollapseMinLength != 0.25 {
		t.Errorf("collapse_min_length = %g, want 0.25", cfg.CollapseMinLength)
	}
	if cfg.ExportScale != 4 {
		t.Errorf("export_scale = %g, want 4", cfg.ExportScale)
	}
	// untouched keys keep their defaults
	if cfg.MaxRadius != 10000 {
		t.Errorf("max_radius = %g, want the default 10000", cfg.MaxRadius)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("loading a missing file succeeded")
	}
}
