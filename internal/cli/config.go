package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sketchdoc/sketchdoc/pkg/history"
)

// configFileName is the config file looked up in the working directory.
const configFileName = "sketchdoc.toml"

// Config holds the CLI configuration, loaded from a TOML file.
// Command-line flags override values from the file.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Export   ExportConfig   `toml:"export"`
	Serve    ServeConfig    `toml:"serve"`
}

// EditorConfig controls document defaults and the undo history.
type EditorConfig struct {
	GridSize    int  `toml:"grid_size"`
	GridEnabled bool `toml:"grid_enabled"`
	MaxHistory  int  `toml:"max_history"`
}

// SnapshotConfig selects and configures the snapshot store backend.
type SnapshotConfig struct {
	Backend string `toml:"backend"` // file, redis, or mongo
	Dir     string `toml:"dir"`     // file backend root, empty for the default
	Addr    string `toml:"addr"`    // redis host:port
	URI     string `toml:"uri"`     // mongo connection string
	Keep    int    `toml:"keep"`    // retention bound for prune
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	Format     string  `toml:"format"`
	Scale      float64 `toml:"scale"`
	Background string  `toml:"background"`
}

// ServeConfig holds defaults for the preview server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Editor: EditorConfig{
			GridSize:    10,
			GridEnabled: true,
			MaxHistory:  history.DefaultLimit,
		},
		Snapshot: SnapshotConfig{
			Backend: "file",
			Keep:    20,
		},
		Export: ExportConfig{
			Format:     "svg",
			Scale:      1.0,
			Background: "#ffffff",
		},
		Serve: ServeConfig{
			Addr: "localhost:8080",
		},
	}
}

// loadConfig reads the configuration from path. An empty path falls back
// to sketchdoc.toml in the working directory, then to
// ~/.config/sketchdoc/config.toml; if neither exists the defaults are
// returned. An explicit path that cannot be read is an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		found, ok := findConfigFile()
		if !ok {
			return cfg, nil
		}
		path = found
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file that exists, checking the
// working directory before the user config directory.
func findConfigFile() (string, bool) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(home, ".config", appName, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	return "", false
}

// withConfig returns a new context with the given config attached.
func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the config from ctx, falling back to the
// defaults when no config is attached.
func configFromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey).(Config); ok {
		return cfg
	}
	return defaultConfig()
}
