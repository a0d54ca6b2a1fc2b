package warehouse

import "strings"

// Raw records produced by the external spreadsheet parser. Values are
// untouched source data; normalization happens during entity construction.

// LocationRecord is one row of a locations sheet.
type LocationRecord struct {
	ID        string
	Type      string
	Class     string
	Subclass  string
	Length    float64
	Width     float64
	Height    float64
	DimUOM    string
	MaxWeight float64
	WeightUOM string
	Zone      string
}

// CoordinateRecord is one row of a coordinates sheet, attached to an
// already-created location by id.
type CoordinateRecord struct {
	LocationID string
	X          float64
	Y          float64
	Z          float64
}

// ItemUnitRecord describes one packaging unit level of an item row.
type ItemUnitRecord struct {
	ConversionQty int
	QtyUOM        string
	Length        float64
	Width         float64
	Height        float64
	DimUOM        string
	Weight        float64
	WeightUOM     string
}

// ItemRecord is one row of an items sheet. Units must be non-empty; the
// first entry is the base unit.
type ItemRecord struct {
	ID           string
	Description  string
	GoodsType    string
	RequiredZone string
	Units        []ItemUnitRecord
}

// InventoryRecord is one row of an inventory balance sheet. Dates use the
// dd.mm.yyyy sheet format; ExpiryDate may be empty.
type InventoryRecord struct {
	Date         string
	LocationID   string
	ItemID       string
	ExpiryDate   string
	AvailableQty int
	OnhandQty    int
	TransitQty   int
	AllocatedQty int
	SuspenseQty  int
}

// OrderRecord is one row of an orders sheet. Rows sharing an order id are
// lines of the same order.
type OrderRecord struct {
	ID                string
	Direction         string
	CountryID         string
	DeliveryDate      string
	ScheduledShipDate string
	ActualShipDate    string
	LineNum           int
	ItemID            string
	RequestedQty      int
	TotalQty          int
	QtyUOM            string
}

// SheetKind labels what a raw spreadsheet sheet contains.
type SheetKind string

const (
	SheetNone        SheetKind = "None"
	SheetLocations   SheetKind = "Locations"
	SheetCoordinates SheetKind = "Coordinates"
	SheetItems       SheetKind = "Items"
	SheetInventory   SheetKind = "Inventory"
	SheetOrders      SheetKind = "Orders"
)

// EstimateSheetKind guesses the sheet kind from its name by substring
// heuristics. "coord" must be checked before "loc" and "ord": sheet names
// like "coordinates" contain both.
func EstimateSheetKind(name string) SheetKind {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "coord"):
		return SheetCoordinates
	case strings.Contains(name, "loc"):
		return SheetLocations
	case strings.Contains(name, "item"):
		return SheetItems
	case strings.Contains(name, "inv"):
		return SheetInventory
	case strings.Contains(name, "ord"):
		return SheetOrders
	default:
		return SheetNone
	}
}
