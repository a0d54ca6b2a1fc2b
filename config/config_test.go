package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/warescene/errors"
	"github.com/c360/warescene/warehouse"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	// every location type the model produces must resolve
	for _, lt := range []warehouse.LocationType{
		warehouse.TypeFloor, warehouse.TypeRack, warehouse.TypeWall,
		warehouse.TypeInboundDoor, warehouse.TypeOutboundDoor,
		warehouse.TypeStagingArea, warehouse.TypeCustom,
	} {
		a, ok := cfg.Appearance[lt]
		require.True(t, ok, "missing appearance for %s", lt)
		assert.NotEmpty(t, a.Color)
		assert.NotEmpty(t, a.Mesh)
	}

	assert.Equal(t, "green", cfg.Appearance[warehouse.TypeRack].Color)
	assert.Equal(t, Bounds{MaxX: 1, MaxY: 1, MaxZ: 1}, cfg.BoundingBoxFallback)
}

func TestAppearanceFor_UnknownTypeFallsBack(t *testing.T) {
	cfg := Default()
	a := cfg.AppearanceFor(warehouse.LocationType("conveyor"))
	assert.Equal(t, cfg.Appearance[warehouse.TypeCustom], a)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeTemp(t, "config.json", `{
		"default_strategy": "item_frequencies",
		"appearance": {
			"rack": {"color": "teal", "gray_color": "gray", "mesh": "rack.obj"}
		}
	}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "item_frequencies", cfg.DefaultStrategy)
	// overrides merge over defaults
	assert.Equal(t, "teal", cfg.Appearance[warehouse.TypeRack].Color)
	assert.Equal(t, "gray", cfg.Appearance[warehouse.TypeFloor].Color)
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
default_strategy: order_frequencies
bounding_box_fallback:
  max_x: 10
  max_y: 20
  max_z: 5
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Bounds{MaxX: 10, MaxY: 20, MaxZ: 5}, cfg.BoundingBoxFallback)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := writeTemp(t, "bad.json", `{not json`)
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid default",
			mutate: func(*Config) {},
		},
		{
			name: "inverted bounding box",
			mutate: func(c *Config) {
				c.BoundingBoxFallback = Bounds{MinX: 5, MaxX: 1, MaxY: 1, MaxZ: 1}
			},
			wantErr: errors.ErrInvalidConfig,
		},
		{
			name:    "empty appearance table",
			mutate:  func(c *Config) { c.Appearance = nil },
			wantErr: errors.ErrMissingConfig,
		},
		{
			name: "missing custom fallback",
			mutate: func(c *Config) {
				delete(c.Appearance, warehouse.TypeCustom)
			},
			wantErr: errors.ErrMissingConfig,
		},
		{
			name: "incomplete entry",
			mutate: func(c *Config) {
				c.Appearance[warehouse.TypeRack] = Appearance{GrayColor: "gray"}
			},
			wantErr: errors.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
