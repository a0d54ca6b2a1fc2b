// Package store owns the in-memory entity tables of a warehouse snapshot:
// locations, items, inventory balance rows and orders. Bulk loads replace a
// whole entity type atomically: the new set is built in isolation and swapped
// in only if every row constructed cleanly, so readers observe either the old
// complete set or the new one, never a partial mix.
package store

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/c360/warescene/errors"
	"github.com/c360/warescene/warehouse"
)

// Store holds the single active warehouse snapshot. All methods are safe for
// concurrent use; bulk replaces take the write lock only for the final swap.
type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	locations map[string]*warehouse.Location
	items     map[string]*warehouse.Item
	orders    map[string]*warehouse.Order
	countries map[string]*warehouse.Country

	// inventory is grouped date -> location id -> balance rows, mirroring
	// the snapshot queries the indexes and strategies need.
	inventory map[time.Time]map[string][]*warehouse.Inventory
}

// New creates an empty store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger:    logger,
		locations: make(map[string]*warehouse.Location),
		items:     make(map[string]*warehouse.Item),
		orders:    make(map[string]*warehouse.Order),
		countries: make(map[string]*warehouse.Country),
		inventory: make(map[time.Time]map[string][]*warehouse.Inventory),
	}
}

// ReplaceLocations replaces the complete location set. Previously attached
// coordinates are discarded with the old set; the caller runs the coordinate
// pass again afterwards.
func (s *Store) ReplaceLocations(recs []warehouse.LocationRecord) error {
	staging := make(map[string]*warehouse.Location, len(recs))
	for _, rec := range recs {
		loc, err := warehouse.NewLocation(rec)
		if err != nil {
			return errors.Wrap(err, "Store", "ReplaceLocations", "construct location")
		}
		staging[loc.ID] = loc
	}

	s.mu.Lock()
	s.locations = staging
	s.mu.Unlock()

	s.logger.Debug("locations replaced", "count", len(staging))
	return nil
}

// AttachCoordinates runs the second construction phase for locations. Every
// record must reference a loaded location id; an unknown id fails the whole
// pass with ErrUnknownReference and leaves all coordinates unattached.
func (s *Store) AttachCoordinates(recs []warehouse.CoordinateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range recs {
		if _, ok := s.locations[rec.LocationID]; !ok {
			return errors.WrapInvalid(
				fmt.Errorf("location %q: %w", rec.LocationID, errors.ErrUnknownReference),
				"Store", "AttachCoordinates", "resolve location id")
		}
	}
	for _, rec := range recs {
		s.locations[rec.LocationID].SetCoords(rec.X, rec.Y, rec.Z)
	}

	s.logger.Debug("coordinates attached", "count", len(recs))
	return nil
}

// ReplaceItems replaces the complete item set, cascading over the packaging
// units each item owns.
func (s *Store) ReplaceItems(recs []warehouse.ItemRecord) error {
	staging := make(map[string]*warehouse.Item, len(recs))
	for _, rec := range recs {
		item, err := warehouse.NewItem(rec)
		if err != nil {
			return errors.Wrap(err, "Store", "ReplaceItems", "construct item")
		}
		staging[item.ID] = item
	}

	s.mu.Lock()
	s.items = staging
	s.mu.Unlock()

	s.logger.Debug("items replaced", "count", len(staging))
	return nil
}

// ReplaceInventory replaces all inventory balance rows. Duplicate rows for
// the same (date, location, item) are kept; strategies sum them, they never
// overwrite. Location and item ids are not resolved here: balance sheets may
// legitimately mention locations filtered out of the location sheet, and
// such rows simply never match a join.
func (s *Store) ReplaceInventory(recs []warehouse.InventoryRecord) error {
	staging := make(map[time.Time]map[string][]*warehouse.Inventory)
	for _, rec := range recs {
		inv, err := warehouse.NewInventory(rec)
		if err != nil {
			return errors.Wrap(err, "Store", "ReplaceInventory", "construct inventory row")
		}
		byLoc, ok := staging[inv.Date]
		if !ok {
			byLoc = make(map[string][]*warehouse.Inventory)
			staging[inv.Date] = byLoc
		}
		byLoc[inv.LocationID] = append(byLoc[inv.LocationID], inv)
	}

	s.mu.Lock()
	s.inventory = staging
	s.mu.Unlock()

	s.logger.Debug("inventory replaced", "rows", len(recs), "dates", len(staging))
	return nil
}

// ReplaceOrders replaces the complete order set, cascading over ordered
// items. A record whose order id was already seen appends a line to the
// existing order instead of creating a second one. Destination countries are
// created lazily on first reference. A line referencing an unknown item id
// aborts the load: it indicates malformed source data.
func (s *Store) ReplaceOrders(recs []warehouse.OrderRecord) error {
	s.mu.RLock()
	items := s.items
	s.mu.RUnlock()

	stagingOrders := make(map[string]*warehouse.Order, len(recs))
	stagingCountries := make(map[string]*warehouse.Country)

	for _, rec := range recs {
		if _, ok := items[rec.ItemID]; !ok {
			return errors.WrapInvalid(
				fmt.Errorf("order %q item %q: %w", rec.ID, rec.ItemID, errors.ErrUnknownReference),
				"Store", "ReplaceOrders", "resolve ordered item")
		}

		if existing, ok := stagingOrders[rec.ID]; ok {
			existing.AddItem(rec.ItemID, rec.RequestedQty, rec.TotalQty, rec.QtyUOM)
			continue
		}

		order, err := warehouse.NewOrder(rec)
		if err != nil {
			return errors.Wrap(err, "Store", "ReplaceOrders", "construct order")
		}
		stagingOrders[order.ID] = order

		if rec.CountryID != "" {
			if _, ok := stagingCountries[rec.CountryID]; !ok {
				stagingCountries[rec.CountryID] = &warehouse.Country{ID: rec.CountryID}
			}
		}
	}

	s.mu.Lock()
	s.orders = stagingOrders
	s.countries = stagingCountries
	s.mu.Unlock()

	s.logger.Debug("orders replaced", "count", len(stagingOrders), "countries", len(stagingCountries))
	return nil
}

// DestroyAllLocations removes every location.
func (s *Store) DestroyAllLocations() {
	s.mu.Lock()
	s.locations = make(map[string]*warehouse.Location)
	s.mu.Unlock()
}

// DestroyAllItems removes every item together with its owned packaging units.
func (s *Store) DestroyAllItems() {
	s.mu.Lock()
	s.items = make(map[string]*warehouse.Item)
	s.mu.Unlock()
}

// DestroyAllInventory removes every inventory balance row.
func (s *Store) DestroyAllInventory() {
	s.mu.Lock()
	s.inventory = make(map[time.Time]map[string][]*warehouse.Inventory)
	s.mu.Unlock()
}

// DestroyAllOrders removes every order together with its owned ordered items
// and the lazily created destination countries only orders reference.
func (s *Store) DestroyAllOrders() {
	s.mu.Lock()
	s.orders = make(map[string]*warehouse.Order)
	s.countries = make(map[string]*warehouse.Country)
	s.mu.Unlock()
}

// Location returns the location with the given id.
func (s *Store) Location(id string) (*warehouse.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.locations[id]
	if !ok {
		return nil, fmt.Errorf("location %q: %w", id, errors.ErrNotFound)
	}
	return loc, nil
}

// Item returns the item with the given id.
func (s *Store) Item(id string) (*warehouse.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, errors.ErrNotFound)
	}
	return item, nil
}

// Order returns the order with the given id.
func (s *Store) Order(id string) (*warehouse.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %q: %w", id, errors.ErrNotFound)
	}
	return order, nil
}

// Country returns the country with the given id.
func (s *Store) Country(id string) (*warehouse.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	country, ok := s.countries[id]
	if !ok {
		return nil, fmt.Errorf("country %q: %w", id, errors.ErrNotFound)
	}
	return country, nil
}

// Locations returns the current location table. The map is a copy; the
// entities are shared, so a caller holding the frequency engine's role may
// mutate Freq through them.
func (s *Store) Locations() map[string]*warehouse.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*warehouse.Location, len(s.locations))
	for id, loc := range s.locations {
		out[id] = loc
	}
	return out
}

// Items returns the current item table (copied map, shared entities).
func (s *Store) Items() map[string]*warehouse.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*warehouse.Item, len(s.items))
	for id, item := range s.items {
		out[id] = item
	}
	return out
}

// Orders returns the current order table (copied map, shared entities).
func (s *Store) Orders() map[string]*warehouse.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*warehouse.Order, len(s.orders))
	for id, order := range s.orders {
		out[id] = order
	}
	return out
}

// LatestInventoryDate returns the maximum date key present in the inventory
// data. The second return value is false when no inventory is loaded.
func (s *Store) LatestInventoryDate() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestDateLocked()
}

func (s *Store) latestDateLocked() (time.Time, bool) {
	var latest time.Time
	found := false
	for date := range s.inventory {
		if !found || date.After(latest) {
			latest = date
			found = true
		}
	}
	return latest, found
}

// LatestSnapshot returns the inventory rows of the latest date, grouped by
// location id. Nil when no inventory is loaded.
func (s *Store) LatestSnapshot() map[string][]*warehouse.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest, ok := s.latestDateLocked()
	if !ok {
		return nil
	}
	byLoc := s.inventory[latest]
	out := make(map[string][]*warehouse.Inventory, len(byLoc))
	for locID, rows := range byLoc {
		out[locID] = append([]*warehouse.Inventory(nil), rows...)
	}
	return out
}

// InventoryByDate returns the balance rows of one date grouped by location
// id, or ErrNotFound when that date is absent.
func (s *Store) InventoryByDate(date time.Time) (map[string][]*warehouse.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byLoc, ok := s.inventory[date]
	if !ok {
		return nil, fmt.Errorf("inventory date %s: %w", date.Format("2006-01-02"), errors.ErrNotFound)
	}
	out := make(map[string][]*warehouse.Inventory, len(byLoc))
	for locID, rows := range byLoc {
		out[locID] = append([]*warehouse.Inventory(nil), rows...)
	}
	return out, nil
}

// Counts reports table sizes for logging and metrics.
func (s *Store) Counts() (locations, items, inventoryRows, orders int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, byLoc := range s.inventory {
		for _, rows := range byLoc {
			inventoryRows += len(rows)
		}
	}
	return len(s.locations), len(s.items), inventoryRows, len(s.orders)
}
