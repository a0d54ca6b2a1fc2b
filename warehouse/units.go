package warehouse

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360/warescene/errors"
)

// Unit-to-meter factors for dimension normalization.
var dimFactors = map[string]float64{
	"m":      1,
	"meters": 1,
	"dm":     0.1,
	"cm":     0.01,
	"mm":     0.001,
}

// Unit-to-kilogram factors for weight normalization.
var weightFactors = map[string]float64{
	"kg": 1,
	"g":  0.001,
}

// Mapping of free-text type names from source spreadsheets to the normalized
// vocabulary. Lookup is case-insensitive with collapsed whitespace.
var locationTypes = map[string]LocationType{
	"floor":         TypeFloor,
	"rack":          TypeRack,
	"storage rack":  TypeRack,
	"wall":          TypeWall,
	"inbound door":  TypeInboundDoor,
	"outbound door": TypeOutboundDoor,
	"staging area":  TypeStagingArea,
	"custom":        TypeCustom,
}

// sheetDateLayout is the date format used across all source sheets.
const sheetDateLayout = "02.01.2006"

// ConvertDim converts a dimension value to meters. An empty unit string
// leaves the value unchanged; an unrecognized one fails with ErrInvalidUnit.
func ConvertDim(value float64, uom string) (float64, error) {
	if uom == "" {
		return value, nil
	}
	factor, ok := dimFactors[strings.ToLower(uom)]
	if !ok {
		return 0, fmt.Errorf("dimension unit %q: %w", uom, errors.ErrInvalidUnit)
	}
	return value * factor, nil
}

// ConvertWeight converts a weight value to kilograms. An empty unit string
// leaves the value unchanged; an unrecognized one fails with ErrInvalidUnit.
func ConvertWeight(value float64, uom string) (float64, error) {
	if uom == "" {
		return value, nil
	}
	factor, ok := weightFactors[strings.ToLower(uom)]
	if !ok {
		return 0, fmt.Errorf("weight unit %q: %w", uom, errors.ErrInvalidUnit)
	}
	return value * factor, nil
}

// NormalizeLocationType unifies free-text location type names. Unrecognized
// strings map to TypeCustom instead of failing; source spreadsheets carry
// free text here and rejecting rows over it would be too strict.
func NormalizeLocationType(s string) LocationType {
	key := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	if t, ok := locationTypes[key]; ok {
		return t
	}
	return TypeCustom
}

// ParseDate converts a sheet date string (dd.mm.yyyy) to a time.Time.
// An empty string yields the zero time without error.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(sheetDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, errors.ErrParsingFailed)
	}
	return t, nil
}
