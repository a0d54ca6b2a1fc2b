package warehouse

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/warescene/errors"
)

func TestConvertDim(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		uom      string
		expected float64
	}{
		{"meters", 2.5, "m", 2.5},
		{"meters long form", 2.5, "meters", 2.5},
		{"decimeters", 25, "dm", 2.5},
		{"centimeters", 250, "cm", 2.5},
		{"millimeters", 2500, "mm", 2.5},
		{"uppercase unit", 250, "CM", 2.5},
		{"empty unit passes through", 2.5, "", 2.5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ConvertDim(test.value, test.uom)
			require.NoError(t, err)
			assert.InDelta(t, test.expected, got, 1e-9)
		})
	}
}

func TestConvertDim_InvalidUnit(t *testing.T) {
	_, err := ConvertDim(1, "inch")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidUnit))
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		uom      string
		expected float64
	}{
		{"kilograms", 3, "kg", 3},
		{"grams", 3000, "g", 3},
		{"uppercase unit", 3000, "G", 3},
		{"empty unit passes through", 3, "", 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ConvertWeight(test.value, test.uom)
			require.NoError(t, err)
			assert.InDelta(t, test.expected, got, 1e-9)
		})
	}
}

func TestConvertWeight_InvalidUnit(t *testing.T) {
	_, err := ConvertWeight(1, "lbs")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidUnit))
}

// Converting out of a unit and back into it must recover the original value
// within floating-point tolerance.
func TestConvertRoundTrip(t *testing.T) {
	for _, uom := range []string{"m", "dm", "cm", "mm"} {
		meters, err := ConvertDim(123.45, uom)
		require.NoError(t, err)
		factor, err := ConvertDim(1, uom)
		require.NoError(t, err)
		assert.InDelta(t, 123.45, meters/factor, 1e-9, "round trip through %s", uom)
	}

	for _, uom := range []string{"kg", "g"} {
		kilos, err := ConvertWeight(678.9, uom)
		require.NoError(t, err)
		factor, err := ConvertWeight(1, uom)
		require.NoError(t, err)
		assert.InDelta(t, 678.9, kilos/factor, 1e-9, "round trip through %s", uom)
	}
}

func TestNormalizeLocationType(t *testing.T) {
	tests := []struct {
		input    string
		expected LocationType
	}{
		{"floor", TypeFloor},
		{"rack", TypeRack},
		{"storage rack", TypeRack},
		{"Storage  Rack", TypeRack},
		{"  STAGING   AREA ", TypeStagingArea},
		{"inbound door", TypeInboundDoor},
		{"outbound door", TypeOutboundDoor},
		{"wall", TypeWall},
		{"custom", TypeCustom},
		{"mezzanine", TypeCustom},
		{"", TypeCustom},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, NormalizeLocationType(test.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("05.03.2021")
	require.NoError(t, err)
	assert.Equal(t, 2021, d.Year())
	assert.Equal(t, 3, int(d.Month()))
	assert.Equal(t, 5, d.Day())

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("2021-03-05")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrParsingFailed))
}

func TestEstimateSheetKind(t *testing.T) {
	tests := []struct {
		name     string
		expected SheetKind
	}{
		{"LOCATIONmaster", SheetLocations},
		{"Locations", SheetLocations},
		{"coordinates", SheetCoordinates},
		{"LocCoords", SheetCoordinates},
		{"ITEMS", SheetItems},
		{"InventoryBalance", SheetInventory},
		{"Orders", SheetOrders},
		{"Sheet1", SheetNone},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, EstimateSheetKind(test.name))
		})
	}
}
