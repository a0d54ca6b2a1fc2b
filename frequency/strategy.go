// Package frequency computes the per-location activity metric ("heat")
// driving the heat-map view. A pluggable strategy turns the currently
// selected ids of the facets it reacts to into per-location contributions;
// the engine owns the active strategy, applies incremental deltas on every
// selection change and performs full recomputes when the data or the
// strategy itself changes.
package frequency

import (
	"github.com/c360/warescene/selection"
	"github.com/c360/warescene/store"
)

// Strategy is one frequency-computation algorithm. Contributions must be
// sign-symmetric: contributing an id with -1 exactly undoes contributing it
// with +1, which is what makes incremental deltas equivalent to a full
// recompute.
type Strategy interface {
	// Name is the stable registry key of the strategy.
	Name() string

	// DisplayName is the label shown in the statistics menu.
	DisplayName() string

	// ReactsTo reports whether selection changes in the facet affect this
	// strategy. Changes in other facets are ignored without any work.
	ReactsTo(facet selection.Facet) bool

	// Prepare rebuilds the snapshot-derived lookup state after a data
	// reload or activation. With no inventory loaded the strategy must
	// degrade to contributing nothing.
	Prepare(s *store.Store)

	// Contribute applies the contribution of one selected id. sign is +1
	// when the id was checked and -1 when unchecked; amounts are reported
	// through add, keyed by location id.
	Contribute(id string, sign float64, add func(locationID string, amount float64))
}

// Info describes a registered strategy for menu display.
type Info struct {
	Name        string
	DisplayName string
	Active      bool
}
