package warehouse

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/warescene/errors"
)

func TestNewLocation(t *testing.T) {
	loc, err := NewLocation(LocationRecord{
		ID:        "L1",
		Type:      "Storage Rack",
		Class:     "A",
		Subclass:  "A1",
		Length:    120,
		Width:     80,
		Height:    250,
		DimUOM:    "cm",
		MaxWeight: 1500,
		WeightUOM: "kg",
		Zone:      "Z1",
	})
	require.NoError(t, err)

	assert.Equal(t, "L1", loc.ID)
	assert.Equal(t, TypeRack, loc.Type)
	assert.InDelta(t, 1.2, loc.Length, 1e-9)
	assert.InDelta(t, 0.8, loc.Width, 1e-9)
	assert.InDelta(t, 2.5, loc.Height, 1e-9)
	assert.InDelta(t, 1500, loc.MaxWeight, 1e-9)
	assert.Equal(t, "Z1", loc.Zone)
	assert.Nil(t, loc.Coords, "coordinates attach in a second pass")
	assert.Zero(t, loc.Freq)
}

func TestNewLocation_InvalidUnit(t *testing.T) {
	_, err := NewLocation(LocationRecord{ID: "L1", Length: 1, DimUOM: "yards"})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidUnit))
}

func TestNewLocation_EmptyID(t *testing.T) {
	_, err := NewLocation(LocationRecord{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestLocation_Planar(t *testing.T) {
	loc := &Location{ID: "L1"}
	_, ok := loc.Planar()
	assert.False(t, ok)

	loc.SetCoords(1, 2, 3)
	xy, ok := loc.Planar()
	require.True(t, ok)
	assert.Equal(t, Coords{X: 1, Y: 2}, xy)
}

func TestNewItem(t *testing.T) {
	item, err := NewItem(ItemRecord{
		ID:           "I1",
		Description:  "Bolt M8",
		GoodsType:    "hardware",
		RequiredZone: "Z1",
		Units: []ItemUnitRecord{
			{ConversionQty: 1, QtyUOM: "ea", Length: 10, Width: 10, Height: 5, DimUOM: "mm", Weight: 20, WeightUOM: "g"},
			{ConversionQty: 100, QtyUOM: "box", Length: 20, Width: 15, Height: 10, DimUOM: "cm", Weight: 2.2, WeightUOM: "kg"},
		},
	})
	require.NoError(t, err)

	require.Len(t, item.UnitLevels, 2)
	assert.Same(t, item.UnitLevels[0], item.BaseUnit, "first unit level is the base unit")
	assert.InDelta(t, 0.01, item.BaseUnit.Length, 1e-9)
	assert.InDelta(t, 0.02, item.BaseUnit.Weight, 1e-9)
	assert.Equal(t, 100, item.UnitLevels[1].ConversionQty)
}

func TestNewItem_NoUnits(t *testing.T) {
	_, err := NewItem(ItemRecord{ID: "I1"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestNewInventory(t *testing.T) {
	inv, err := NewInventory(InventoryRecord{
		Date:       "01.02.2021",
		LocationID: "L1",
		ItemID:     "I1",
		ExpiryDate: "31.12.2021",
		OnhandQty:  7,
		TransitQty: -2,
	})
	require.NoError(t, err)

	assert.Equal(t, "2021:02:01-L1-I1", inv.ID)
	assert.Equal(t, 7, inv.OnhandQty)
	assert.Equal(t, -2, inv.TransitQty, "correction rows may carry negative quantities")
	assert.False(t, inv.ExpiryDate.IsZero())

	inv, err = NewInventory(InventoryRecord{Date: "01.02.2021", LocationID: "L1", ItemID: "I1"})
	require.NoError(t, err)
	assert.True(t, inv.ExpiryDate.IsZero())
}

func TestNewInventory_MissingDate(t *testing.T) {
	_, err := NewInventory(InventoryRecord{LocationID: "L1", ItemID: "I1"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestNewOrder(t *testing.T) {
	order, err := NewOrder(OrderRecord{
		ID:           "O1",
		Direction:    "outbound",
		CountryID:    "Norway",
		DeliveryDate: "15.04.2021",
		LineNum:      3,
		ItemID:       "I1",
		RequestedQty: 5,
		TotalQty:     5,
		QtyUOM:       "ea",
	})
	require.NoError(t, err)

	assert.Equal(t, DirectionOutbound, order.Direction)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "O1-I1", order.Items[0].ID)

	order.AddItem("I2", 1, 2, "ea")
	require.Len(t, order.Items, 2)
	assert.Equal(t, "O1-I2", order.Items[1].ID)
	assert.Equal(t, 2, order.Items[1].TotalQty)
}
