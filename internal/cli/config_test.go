package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sketchdoc/sketchdoc/pkg/history"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Editor.GridSize != 10 {
		t.Errorf("Editor.GridSize = %d, want 10", cfg.Editor.GridSize)
	}
	if !cfg.Editor.GridEnabled {
		t.Error("Editor.GridEnabled should default to true")
	}
	if cfg.Editor.MaxHistory != history.DefaultLimit {
		t.Errorf("Editor.MaxHistory = %d, want %d", cfg.Editor.MaxHistory, history.DefaultLimit)
	}
	if cfg.Snapshot.Backend != "file" {
		t.Errorf("Snapshot.Backend = %q, want %q", cfg.Snapshot.Backend, "file")
	}
	if cfg.Export.Format != "svg" {
		t.Errorf("Export.Format = %q, want %q", cfg.Export.Format, "svg")
	}
	if cfg.Export.Scale != 1.0 {
		t.Errorf("Export.Scale = %v, want 1.0", cfg.Export.Scale)
	}
	if cfg.Serve.Addr != "localhost:8080" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, "localhost:8080")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sketchdoc.toml")
	content := `
[editor]
grid_size = 20
max_history = 50

[snapshot]
backend = "redis"
addr = "localhost:6379"
keep = 5

[export]
format = "png"
scale = 2.0

[serve]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Editor.GridSize != 20 {
		t.Errorf("Editor.GridSize = %d, want 20", cfg.Editor.GridSize)
	}
	if cfg.Editor.MaxHistory != 50 {
		t.Errorf("Editor.MaxHistory = %d, want 50", cfg.Editor.MaxHistory)
	}
	if cfg.Snapshot.Backend != "redis" {
		t.Errorf("Snapshot.Backend = %q, want %q", cfg.Snapshot.Backend, "redis")
	}
	if cfg.Snapshot.Addr != "localhost:6379" {
		t.Errorf("Snapshot.Addr = %q, want %q", cfg.Snapshot.Addr, "localhost:6379")
	}
	if cfg.Snapshot.Keep != 5 {
		t.Errorf("Snapshot.Keep = %d, want 5", cfg.Snapshot.Keep)
	}
	if cfg.Export.Format != "png" {
		t.Errorf("Export.Format = %q, want %q", cfg.Export.Format, "png")
	}
	if cfg.Export.Scale != 2.0 {
		t.Errorf("Export.Scale = %v, want 2.0", cfg.Export.Scale)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":9000")
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sketchdoc.toml")
	if err := os.WriteFile(path, []byte("[export]\nformat = \"dot\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Export.Format != "dot" {
		t.Errorf("Export.Format = %q, want %q", cfg.Export.Format, "dot")
	}
	// Untouched sections keep their defaults
	if cfg.Editor.GridSize != 10 {
		t.Errorf("Editor.GridSize = %d, want default 10", cfg.Editor.GridSize)
	}
	if cfg.Snapshot.Backend != "file" {
		t.Errorf("Snapshot.Backend = %q, want default %q", cfg.Snapshot.Backend, "file")
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("loadConfig() with a missing explicit path should fail")
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sketchdoc.toml")
	if err := os.WriteFile(path, []byte("[editor\ngrid_size = 20"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() with invalid TOML should fail")
	}
}

func TestConfigContext(t *testing.T) {
	cfg := defaultConfig()
	cfg.Serve.Addr = ":1234"

	ctx := withConfig(context.Background(), cfg)
	got := configFromContext(ctx)
	if got.Serve.Addr != ":1234" {
		t.Errorf("configFromContext().Serve.Addr = %q, want %q", got.Serve.Addr, ":1234")
	}
}

func TestConfigFromContextDefault(t *testing.T) {
	got := configFromContext(context.Background())
	if got.Export.Format != "svg" {
		t.Errorf("configFromContext() without config should return defaults, got format %q", got.Export.Format)
	}
}
