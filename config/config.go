// Package config defines the application configuration: the default
// frequency strategy, the bounding-box fallback used when no location has
// coordinates, and the per-location-type appearance table consumed by the
// scene projector. Configuration is an explicit struct owned by the caller;
// there are no package-level globals.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360/warescene/errors"
	"github.com/c360/warescene/warehouse"
)

// Appearance describes how one location type is rendered: its heat-map base
// color, the color used when the location is outside the current selection,
// and the mesh asset to instance.
type Appearance struct {
	Color     string `json:"color"      yaml:"color"`
	GrayColor string `json:"gray_color" yaml:"gray_color"`
	Mesh      string `json:"mesh"       yaml:"mesh"`
}

// Bounds is an axis-aligned box in meters.
type Bounds struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MinY float64 `json:"min_y" yaml:"min_y"`
	MinZ float64 `json:"min_z" yaml:"min_z"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
	MaxZ float64 `json:"max_z" yaml:"max_z"`
}

// Config is the complete application configuration.
type Config struct {
	// DefaultStrategy is the frequency strategy activated on startup.
	// Empty means none.
	DefaultStrategy string `json:"default_strategy" yaml:"default_strategy"`

	// BoundingBoxFallback is the scene box used when no location carries
	// coordinates.
	BoundingBoxFallback Bounds `json:"bounding_box_fallback" yaml:"bounding_box_fallback"`

	// Appearance maps a normalized location type to its render appearance.
	// Every type the warehouse model can produce must have an entry.
	Appearance map[warehouse.LocationType]Appearance `json:"appearance" yaml:"appearance"`
}

// Default returns the built-in configuration. Every location type has an
// appearance entry, so lookups against the default table never miss.
func Default() *Config {
	return &Config{
		DefaultStrategy:     "order_frequencies",
		BoundingBoxFallback: Bounds{MaxX: 1, MaxY: 1, MaxZ: 1},
		Appearance: map[warehouse.LocationType]Appearance{
			warehouse.TypeFloor:        {Color: "gray", GrayColor: "gray", Mesh: "../objects/floor.obj"},
			warehouse.TypeRack:         {Color: "green", GrayColor: "gray", Mesh: "../objects/rack.obj"},
			warehouse.TypeWall:         {Color: "black", GrayColor: "black", Mesh: "../objects/floor.obj"},
			warehouse.TypeInboundDoor:  {Color: "blue", GrayColor: "#222", Mesh: "../objects/floor.obj"},
			warehouse.TypeOutboundDoor: {Color: "orange", GrayColor: "#aaa", Mesh: "../objects/floor.obj"},
			warehouse.TypeStagingArea:  {Color: "yellow", GrayColor: "#ddd", Mesh: "../objects/floor.obj"},
			warehouse.TypeCustom:       {Color: "red", GrayColor: "white", Mesh: "../objects/floor.obj"},
		},
	}
}

// AppearanceFor resolves the appearance for a location type, falling back to
// the custom entry for types missing from the table.
func (c *Config) AppearanceFor(t warehouse.LocationType) Appearance {
	if a, ok := c.Appearance[t]; ok {
		return a
	}
	return c.Appearance[warehouse.TypeCustom]
}

// LoadFile reads a configuration file, merges it over Default and validates
// the result. The format is chosen by extension: .yaml/.yml use YAML,
// anything else is parsed as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config", "LoadFile", "read config file")
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.WrapInvalid(err, "config", "LoadFile", "parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.LoadFile: validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	b := c.BoundingBoxFallback
	if b.MaxX < b.MinX || b.MaxY < b.MinY || b.MaxZ < b.MinZ {
		return fmt.Errorf("bounding_box_fallback max below min: %w", errors.ErrInvalidConfig)
	}
	if len(c.Appearance) == 0 {
		return fmt.Errorf("appearance table is empty: %w", errors.ErrMissingConfig)
	}
	if _, ok := c.Appearance[warehouse.TypeCustom]; !ok {
		return fmt.Errorf("appearance table has no %q fallback entry: %w",
			warehouse.TypeCustom, errors.ErrMissingConfig)
	}
	for t, a := range c.Appearance {
		if a.Color == "" || a.Mesh == "" {
			return fmt.Errorf("appearance for %q is incomplete: %w", t, errors.ErrInvalidConfig)
		}
	}
	return nil
}
