package render

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nativeblocks/innerblocks/blockcache"
	"github.com/nativeblocks/innerblocks/blocktree"
	"github.com/nativeblocks/innerblocks/placeholder"
	"gopkg.in/yaml.v3"
)

// Config configures a Renderer.
type Config struct {
	Encoding      placeholder.Encoding `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	MarkerClass   string               `json:"markerClass,omitempty" yaml:"markerClass,omitempty"`
	CacheCapacity int                  `json:"cacheCapacity,omitempty" yaml:"cacheCapacity,omitempty"`
	DisableCache  bool                 `json:"disableCache,omitempty" yaml:"disableCache,omitempty"`
	// Defaults apply to every render; per-call options override set fields.
	Defaults blocktree.Options `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.Encoding == "" {
		c.Encoding = placeholder.EncodingTag
	}
	if c.MarkerClass == "" {
		c.MarkerClass = placeholder.DefaultMarkerClass
	}
	if c.CacheCapacity == 0 {
		c.CacheCapacity = blockcache.DefaultCapacity
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

func (c Config) clone() Config {
	cloned := c
	cloned.Defaults = blocktree.Options{}.Merge(c.Defaults)
	return cloned
}

func (c Config) placeholderConfig() placeholder.Config {
	return placeholder.Config{
		Encoding:    c.Encoding,
		MarkerClass: c.MarkerClass,
	}
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if err := c.placeholderConfig().Validate(); err != nil {
		return err
	}
	if c.CacheCapacity < 0 {
		return fmt.Errorf("cacheCapacity must not be negative, got %d", c.CacheCapacity)
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return nil
}

// ParseConfig decodes a YAML deployment config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a YAML deployment config from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}
