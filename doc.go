// Package warescene provides an in-memory entity-relationship core for
// warehouse visualization tools: typed entity tables, bidirectional relation
// indexes, selection-driven heat metrics and render-ready scene aggregates.
//
// # Architecture
//
// The core is a set of small packages the embedding application wires
// together and owns; there are no globals and no network surface.
//
//	┌─────────────────────────────────────┐
//	│            loader                   │  Bulk reloads, ready events,
//	│   (orchestration, single-flight)    │  query dispatch
//	└─────────────────────────────────────┘
//	           ↓ installs into
//	┌─────────────────────────────────────┐
//	│       store  +  relindex            │  Entity tables and the
//	│  (atomic tables, cross-facet joins) │  relation index over them
//	└─────────────────────────────────────┘
//	           ↓ read by
//	┌─────────────────────────────────────┐
//	│  selection → frequency → projector  │  Checked facets drive heat,
//	│     (events, strategies, scene)     │  projections feed rendering
//	└─────────────────────────────────────┘
//
// # Data flow
//
// A reload replaces the entity tables wholesale (each type atomically),
// re-attaches coordinates, rebuilds the relation index and refreshes the
// active frequency strategy. From then on everything is incremental: the
// selection state publishes facet change events, the frequency engine folds
// them into per-location heat via signed strategy contributions, and the
// projector turns locations plus heat into bounding boxes, planar clusters
// and scene nodes.
//
// Parsing source spreadsheets, rendering and UI binding are deliberately
// outside this module; the loader consumes raw records and the projector
// produces plain values.
package warescene
