// Package relindex maintains the bidirectional relation indexes between
// locations, items and orders. The indexes are rebuilt whenever the
// underlying entity sets change and answer the six cross-facet join queries
// from pre-built maps instead of rescanning the store per query.
package relindex

import (
	"log/slog"
	"sync"
	"time"

	"github.com/c360/warescene/store"
)

// Set is a deduplicated collection of entity ids.
type Set map[string]struct{}

// NewSet builds a set from ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an id.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Has reports membership.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members as a slice, in no particular order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Index answers join queries over the current snapshot. "Item is at
// location" is derived from the latest inventory date only; "order accesses
// location" composes order lines with those latest storage locations.
type Index struct {
	mu     sync.RWMutex
	logger *slog.Logger

	itemToLocs   map[string]Set
	locToItems   map[string]Set
	itemToOrders map[string]Set
	orderToItems map[string]Set
	locToOrders  map[string]Set
	orderToLocs  map[string]Set

	builtFor time.Time // latest inventory date the index was built from
}

// New creates an empty index.
func New(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	ix := &Index{logger: logger}
	ix.reset()
	return ix
}

func (ix *Index) reset() {
	ix.itemToLocs = make(map[string]Set)
	ix.locToItems = make(map[string]Set)
	ix.itemToOrders = make(map[string]Set)
	ix.orderToItems = make(map[string]Set)
	ix.locToOrders = make(map[string]Set)
	ix.orderToLocs = make(map[string]Set)
	ix.builtFor = time.Time{}
}

// Rebuild replaces all indexes from the store's current snapshot. It runs in
// one pass over the latest inventory date plus one pass over all order
// lines, then composes location<->order from the two.
func (ix *Index) Rebuild(s *store.Store) {
	start := time.Now()

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.reset()

	// item <-> location from the latest balance snapshot. Only location ids
	// present in the location table count: balance rows may mention
	// locations the location sheet filtered out.
	locations := s.Locations()
	for locID, rows := range s.LatestSnapshot() {
		if _, ok := locations[locID]; !ok {
			continue
		}
		for _, inv := range rows {
			addPair(ix.itemToLocs, inv.ItemID, locID)
			addPair(ix.locToItems, locID, inv.ItemID)
		}
	}

	// item <-> order from order lines.
	for orderID, order := range s.Orders() {
		for _, line := range order.Items {
			addPair(ix.itemToOrders, line.ItemID, orderID)
			addPair(ix.orderToItems, orderID, line.ItemID)
		}
	}

	// location <-> order composed through items stored at the latest date.
	for orderID, items := range ix.orderToItems {
		for itemID := range items {
			for locID := range ix.itemToLocs[itemID] {
				addPair(ix.locToOrders, locID, orderID)
				addPair(ix.orderToLocs, orderID, locID)
			}
		}
	}

	if latest, ok := s.LatestInventoryDate(); ok {
		ix.builtFor = latest
	}

	ix.logger.Debug("relation index rebuilt",
		"items_with_locations", len(ix.itemToLocs),
		"orders", len(ix.orderToItems),
		"duration", time.Since(start))
}

func addPair(m map[string]Set, key, value string) {
	s, ok := m[key]
	if !ok {
		s = make(Set)
		m[key] = s
	}
	s.Add(value)
}

// BuiltFor returns the latest inventory date the index was built from, zero
// when no inventory was loaded at rebuild time.
func (ix *Index) BuiltFor() time.Time {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.builtFor
}

// LocationsForItems returns the locations storing any of the items in the
// latest snapshot. Empty input yields an empty set, not "all".
func (ix *Index) LocationsForItems(itemIDs []string) Set {
	return ix.gather(ix.itemToLocs, itemIDs)
}

// ItemsForLocations returns the items stored at any of the locations.
func (ix *Index) ItemsForLocations(locationIDs []string) Set {
	return ix.gather(ix.locToItems, locationIDs)
}

// OrdersForItems returns the orders containing any of the items.
func (ix *Index) OrdersForItems(itemIDs []string) Set {
	return ix.gather(ix.itemToOrders, itemIDs)
}

// ItemsForOrders returns the items included in any of the orders.
func (ix *Index) ItemsForOrders(orderIDs []string) Set {
	return ix.gather(ix.orderToItems, orderIDs)
}

// LocationsForOrders returns the locations potentially accessed by any of
// the orders: an order accesses a location when one of its items is stored
// there per the latest snapshot.
func (ix *Index) LocationsForOrders(orderIDs []string) Set {
	return ix.gather(ix.orderToLocs, orderIDs)
}

// OrdersForLocations returns the orders potentially accessing any of the
// locations.
func (ix *Index) OrdersForLocations(locationIDs []string) Set {
	return ix.gather(ix.locToOrders, locationIDs)
}

func (ix *Index) gather(m map[string]Set, ids []string) Set {
	out := make(Set)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, id := range ids {
		for v := range m[id] {
			out.Add(v)
		}
	}
	return out
}
