// Package config loads graphedit settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/graphedit/config.toml unless a path is
// given explicitly. Keys absent from the file keep their defaults; command
// line flags override both.
//
//	[render]
//	width = 1000
//	height = 600
//	format = "svg"
//
//	[store]
//	url = "redis://localhost:6379/0"
//
//	[serve]
//	addr = ":8080"
//
//	[editor]
//	double_click_ms = 400
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds graphedit configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
	Editor EditorConfig `toml:"editor"`

	// Undecoded lists keys in the file that matched no setting.
	Undecoded []string `toml:"-"`
}

// RenderConfig controls rendered output.
type RenderConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Scale  float64 `toml:"scale"`  // PNG zoom
	Format string  `toml:"format"` // "svg", "png", "pdf", "dot"
}

// StoreConfig locates the document store.
type StoreConfig struct {
	URL string `toml:"url"` // path, file://, redis:// or mongodb://
}

// CacheConfig controls the render artifact cache.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	TTLHours int    `toml:"ttl_hours"`
}

// TTL returns the artifact lifetime.
func (c CacheConfig) TTL() time.Duration { return time.Duration(c.TTLHours) * time.Hour }

// ServeConfig controls the preview server.
type ServeConfig struct {
	Addr  string `toml:"addr"`
	Watch bool   `toml:"watch"`
}

// EditorConfig controls the terminal editor.
type EditorConfig struct {
	DoubleClickMS int  `toml:"double_click_ms"`
	IDs           bool `toml:"ids"` // attach UUIDs to new entities
}

// DoubleClick returns the maximum interval between the presses of a
// double click.
func (c EditorConfig) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{Width: 1000, Height: 600, Scale: 2, Format: "svg"},
		Store:  StoreConfig{URL: filepath.Join(dataDir(), "graphs")},
		Cache:  CacheConfig{TTLHours: 24 * 7},
		Serve:  ServeConfig{Addr: "localhost:8080"},
		Editor: EditorConfig{DoubleClickMS: 400},
	}
}

// Dir returns the graphedit config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "graphedit")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

func dataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "graphedit")
}

// Load reads the config file at path over the defaults. An empty path
// means [Path]; a missing default file is not an error, a missing explicit
// one is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, k := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, k.String())
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
