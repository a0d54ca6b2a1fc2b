// Package projector derives render-ready aggregates from the entity store:
// the scene bounding box, normalized heat values, planar clustering for the
// top-down view, and per-location scene nodes carrying appearance from the
// configured location-type table. Projections are pure reads; nothing here
// mutates store entities.
package projector

import (
	"fmt"
	"sort"

	"github.com/c360/warescene/config"
	"github.com/c360/warescene/errors"
	"github.com/c360/warescene/warehouse"
)

// PlanarKey identifies one (x, y) column of stacked locations in the
// top-down view.
type PlanarKey struct {
	X float64
	Y float64
}

// SceneNode is the flat render description of a single location.
type SceneNode struct {
	ID        string
	Type      warehouse.LocationType
	Mesh      string
	Color     string
	GrayColor string
	X         float64
	Y         float64
	Z         float64
	Length    float64
	Width     float64
	Height    float64
	Heat      float64 // normalized to [0, 1]
}

// BoundingBox computes the axis-aligned box enclosing all locations with
// attached coordinates: each location spans x..x+width, y..y+length and
// z..z+height. Fails with ErrEmptyInput when no location has coordinates;
// the caller falls back to its configured default box.
func BoundingBox(locations map[string]*warehouse.Location) (config.Bounds, error) {
	var b config.Bounds
	first := true
	for _, loc := range locations {
		if loc.Coords == nil {
			continue
		}
		minX, maxX := loc.Coords.X, loc.Coords.X+loc.Width
		minY, maxY := loc.Coords.Y, loc.Coords.Y+loc.Length
		minZ, maxZ := loc.Coords.Z, loc.Coords.Z+loc.Height
		if first {
			b = config.Bounds{MinX: minX, MinY: minY, MinZ: minZ, MaxX: maxX, MaxY: maxY, MaxZ: maxZ}
			first = false
			continue
		}
		b.MinX = min(b.MinX, minX)
		b.MaxX = max(b.MaxX, maxX)
		b.MinY = min(b.MinY, minY)
		b.MaxY = max(b.MaxY, maxY)
		b.MinZ = min(b.MinZ, minZ)
		b.MaxZ = max(b.MaxZ, maxZ)
	}
	if first {
		return config.Bounds{}, errors.Wrap(errors.ErrEmptyInput, "projector", "BoundingBox", "no located locations")
	}
	return b, nil
}

// BoundingBoxOrFallback is BoundingBox with the configured fallback box
// substituted for empty input.
func BoundingBoxOrFallback(locations map[string]*warehouse.Location, cfg *config.Config) config.Bounds {
	b, err := BoundingBox(locations)
	if err != nil {
		return cfg.BoundingBoxFallback
	}
	return b
}

// NormalizedHeat scales a frequency into [0, 1] against the current maximum.
// A non-positive maximum means no heat anywhere, never a division by zero.
func NormalizedHeat(freq, maxHeat float64) float64 {
	if maxHeat <= 0 {
		return 0
	}
	return freq / maxHeat
}

// ClusterByXY groups location ids by their planar (x, y) coordinate for the
// top-down view, where stacked rack levels collapse into one tile. Every
// location must have coordinates attached; clustering unlocated data is a
// caller bug. Members are ordered by z then id so level selection is stable.
func ClusterByXY(locations map[string]*warehouse.Location) (map[PlanarKey][]string, error) {
	clusters := make(map[PlanarKey][]string)
	for id, loc := range locations {
		if loc.Coords == nil {
			return nil, errors.WrapInvalid(
				fmt.Errorf("location %s has no coordinates: %w", id, errors.ErrInvalidData),
				"projector", "ClusterByXY", "cluster locations")
		}
		key := PlanarKey{X: loc.Coords.X, Y: loc.Coords.Y}
		clusters[key] = append(clusters[key], id)
	}
	for key, ids := range clusters {
		sort.Slice(ids, func(i, j int) bool {
			zi, zj := locations[ids[i]].Coords.Z, locations[ids[j]].Coords.Z
			if zi != zj {
				return zi < zj
			}
			return ids[i] < ids[j]
		})
		clusters[key] = ids
	}
	return clusters, nil
}

// ClusterHeat sums the frequency of all members of one cluster, or of the
// single member at the given level. A level with no member yields 0.
func ClusterHeat(locations map[string]*warehouse.Location, members []string, level int) float64 {
	if level >= 0 {
		if level >= len(members) {
			return 0
		}
		if loc, ok := locations[members[level]]; ok {
			return loc.Freq
		}
		return 0
	}
	var total float64
	for _, id := range members {
		if loc, ok := locations[id]; ok {
			total += loc.Freq
		}
	}
	return total
}

// Scene builds one render node per located location, sorted by id. Heat is
// normalized against maxHeat; appearance comes from the configured
// location-type table. Locations without coordinates are skipped, they
// cannot be placed.
func Scene(cfg *config.Config, locations map[string]*warehouse.Location, maxHeat float64) []SceneNode {
	nodes := make([]SceneNode, 0, len(locations))
	for id, loc := range locations {
		if loc.Coords == nil {
			continue
		}
		app := cfg.AppearanceFor(loc.Type)
		nodes = append(nodes, SceneNode{
			ID:        id,
			Type:      loc.Type,
			Mesh:      app.Mesh,
			Color:     app.Color,
			GrayColor: app.GrayColor,
			X:         loc.Coords.X,
			Y:         loc.Coords.Y,
			Z:         loc.Coords.Z,
			Length:    loc.Length,
			Width:     loc.Width,
			Height:    loc.Height,
			Heat:      NormalizedHeat(loc.Freq, maxHeat),
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}
