// Package warehouse defines the entity model shared by the store, indexes and
// projections: locations, items and their packaging units, inventory balance
// rows, orders and destination countries. Entities are constructed from raw
// parser records and normalized at creation time (dimensions to meters,
// weights to kilograms, location types to a fixed vocabulary).
package warehouse

import (
	"fmt"
	"time"

	"github.com/c360/warescene/errors"
)

// LocationType is the normalized type of a warehouse location.
type LocationType string

const (
	TypeFloor        LocationType = "floor"
	TypeRack         LocationType = "rack"
	TypeWall         LocationType = "wall"
	TypeInboundDoor  LocationType = "inbound_door"
	TypeOutboundDoor LocationType = "outbound_door"
	TypeStagingArea  LocationType = "staging_area"
	TypeCustom       LocationType = "custom"
)

// Direction marks an order as inbound or outbound.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Coords holds the position of a location. Coordinates arrive in a separate
// sheet, so they are attached in a second pass after location creation and
// stay nil until then.
type Coords struct {
	X float64
	Y float64
	Z float64
}

// Location describes a single warehouse location. Dimensions are stored in
// meters and MaxWeight in kilograms regardless of the source unit.
type Location struct {
	ID        string
	Type      LocationType
	Class     string
	Subclass  string
	Length    float64
	Width     float64
	Height    float64
	MaxWeight float64 // 0 when the source row carried no max weight
	Zone      string
	Coords    *Coords

	// Freq is the derived activity metric consumed by heat-map rendering.
	// It is mutated only by the frequency engine, never during load.
	Freq float64
}

// NewLocation builds a Location from a raw parser record, normalizing units
// and the location type vocabulary.
func NewLocation(rec LocationRecord) (*Location, error) {
	if rec.ID == "" {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Location", "New", "empty location id")
	}

	length, err := ConvertDim(rec.Length, rec.DimUOM)
	if err != nil {
		return nil, fmt.Errorf("location %s: %w", rec.ID, err)
	}
	width, err := ConvertDim(rec.Width, rec.DimUOM)
	if err != nil {
		return nil, fmt.Errorf("location %s: %w", rec.ID, err)
	}
	height, err := ConvertDim(rec.Height, rec.DimUOM)
	if err != nil {
		return nil, fmt.Errorf("location %s: %w", rec.ID, err)
	}

	var maxWeight float64
	if rec.MaxWeight != 0 {
		maxWeight, err = ConvertWeight(rec.MaxWeight, rec.WeightUOM)
		if err != nil {
			return nil, fmt.Errorf("location %s: %w", rec.ID, err)
		}
	}

	return &Location{
		ID:        rec.ID,
		Type:      NormalizeLocationType(rec.Type),
		Class:     rec.Class,
		Subclass:  rec.Subclass,
		Length:    length,
		Width:     width,
		Height:    height,
		MaxWeight: maxWeight,
		Zone:      rec.Zone,
	}, nil
}

// SetCoords attaches coordinates to the location (second construction phase).
func (l *Location) SetCoords(x, y, z float64) {
	l.Coords = &Coords{X: x, Y: y, Z: z}
}

// Planar returns the (x, y) coordinate pair used for the top-down view.
// The second return value is false while coordinates are unattached.
func (l *Location) Planar() (Coords, bool) {
	if l.Coords == nil {
		return Coords{}, false
	}
	return Coords{X: l.Coords.X, Y: l.Coords.Y}, true
}

// ItemUnit represents one packaging unit level of an item.
type ItemUnit struct {
	ID            string // item_id-unit_level
	ConversionQty int    // number of packages inside the base unit
	RefQtyUOM     string
	Length        float64
	Width         float64
	Height        float64
	Weight        float64
}

// NewItemUnit builds an ItemUnit from a raw parser record with unit
// normalization for dimensions and weight.
func NewItemUnit(id string, rec ItemUnitRecord) (*ItemUnit, error) {
	length, err := ConvertDim(rec.Length, rec.DimUOM)
	if err != nil {
		return nil, fmt.Errorf("item unit %s: %w", id, err)
	}
	width, err := ConvertDim(rec.Width, rec.DimUOM)
	if err != nil {
		return nil, fmt.Errorf("item unit %s: %w", id, err)
	}
	height, err := ConvertDim(rec.Height, rec.DimUOM)
	if err != nil {
		return nil, fmt.Errorf("item unit %s: %w", id, err)
	}
	weight, err := ConvertWeight(rec.Weight, rec.WeightUOM)
	if err != nil {
		return nil, fmt.Errorf("item unit %s: %w", id, err)
	}

	return &ItemUnit{
		ID:            id,
		ConversionQty: rec.ConversionQty,
		RefQtyUOM:     rec.QtyUOM,
		Length:        length,
		Width:         width,
		Height:        height,
		Weight:        weight,
	}, nil
}

// Item describes a stock-keeping item including its packaging unit levels.
// UnitLevels is never empty; the first level is the base unit.
type Item struct {
	ID           string
	Description  string
	GoodsType    string
	RequiredZone string
	BaseUnit     *ItemUnit
	UnitLevels   []*ItemUnit
}

// NewItem builds an Item and its owned packaging units from a raw parser
// record. The record must carry at least one unit level.
func NewItem(rec ItemRecord) (*Item, error) {
	if rec.ID == "" {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Item", "New", "empty item id")
	}
	if len(rec.Units) == 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Item", "New",
			fmt.Sprintf("item %s has no unit levels", rec.ID))
	}

	units := make([]*ItemUnit, 0, len(rec.Units))
	for i, u := range rec.Units {
		unit, err := NewItemUnit(fmt.Sprintf("%s-%d", rec.ID, i), u)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	return &Item{
		ID:           rec.ID,
		Description:  rec.Description,
		GoodsType:    rec.GoodsType,
		RequiredZone: rec.RequiredZone,
		BaseUnit:     units[0],
		UnitLevels:   units,
	}, nil
}

// Inventory is one balance row for a (date, location, item) combination.
// Quantities may be negative when the source carries correction rows.
type Inventory struct {
	ID           string // date-location-item, not unique across duplicate rows
	Date         time.Time
	LocationID   string
	ItemID       string
	ExpiryDate   time.Time // zero when absent
	AvailableQty int
	OnhandQty    int
	TransitQty   int
	AllocatedQty int
	SuspenseQty  int
}

// NewInventory builds an Inventory row from a raw parser record.
func NewInventory(rec InventoryRecord) (*Inventory, error) {
	date, err := ParseDate(rec.Date)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Inventory", "New", "parse balance date")
	}
	if date.IsZero() {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Inventory", "New", "missing balance date")
	}
	expiry, err := ParseDate(rec.ExpiryDate)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Inventory", "New", "parse expiry date")
	}

	return &Inventory{
		ID:           fmt.Sprintf("%s-%s-%s", date.Format("2006:01:02"), rec.LocationID, rec.ItemID),
		Date:         date,
		LocationID:   rec.LocationID,
		ItemID:       rec.ItemID,
		ExpiryDate:   expiry,
		AvailableQty: rec.AvailableQty,
		OnhandQty:    rec.OnhandQty,
		TransitQty:   rec.TransitQty,
		AllocatedQty: rec.AllocatedQty,
		SuspenseQty:  rec.SuspenseQty,
	}, nil
}

// OrderedItem is one line of an order referencing an item.
type OrderedItem struct {
	ID           string // order_id-item_id
	ItemID       string
	RequestedQty int
	TotalQty     int
	QtyUOM       string
}

// Order describes a single warehouse order. Orders own their ordered items;
// a repeated order id in the source appends a line instead of creating a
// second order.
type Order struct {
	ID                string
	Direction         Direction
	CountryID         string
	DeliveryDate      time.Time
	ScheduledShipDate time.Time
	ActualShipDate    time.Time
	LineNum           int
	Items             []*OrderedItem
}

// NewOrder builds an Order with its first line from a raw parser record.
func NewOrder(rec OrderRecord) (*Order, error) {
	if rec.ID == "" {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Order", "New", "empty order id")
	}

	delivery, err := ParseDate(rec.DeliveryDate)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Order", "New", "parse delivery date")
	}
	scheduled, err := ParseDate(rec.ScheduledShipDate)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Order", "New", "parse scheduled ship date")
	}
	actual, err := ParseDate(rec.ActualShipDate)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Order", "New", "parse actual ship date")
	}

	o := &Order{
		ID:                rec.ID,
		Direction:         Direction(rec.Direction),
		CountryID:         rec.CountryID,
		DeliveryDate:      delivery,
		ScheduledShipDate: scheduled,
		ActualShipDate:    actual,
		LineNum:           rec.LineNum,
	}
	o.AddItem(rec.ItemID, rec.RequestedQty, rec.TotalQty, rec.QtyUOM)
	return o, nil
}

// AddItem appends a new ordered-item line to the order.
func (o *Order) AddItem(itemID string, requestedQty, totalQty int, qtyUOM string) {
	o.Items = append(o.Items, &OrderedItem{
		ID:           fmt.Sprintf("%s-%s", o.ID, itemID),
		ItemID:       itemID,
		RequestedQty: requestedQty,
		TotalQty:     totalQty,
		QtyUOM:       qtyUOM,
	})
}

// Country is a shipping destination, created lazily the first time an order
// references it. The id is the country name.
type Country struct {
	ID string
}
