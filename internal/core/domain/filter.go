package domain

import (
	"fmt"
	"math"
	"strings"
)

// VehicleFilter is the validated, call-scoped representation of search
// criteria. Every field is optional; an absent field constrains nothing.
// Text values are already folded (see FoldText) by the time a filter exists,
// so adapters compare them against lower(unaccent(column)).
type VehicleFilter struct {
	FreeText string

	Brands        []string
	Models        []string
	FuelTypes     []string
	Colors        []string
	Transmissions []string

	Doors    *int
	DoorsMin *int
	DoorsMax *int

	YearMin *int
	YearMax *int

	PriceMin *float64
	PriceMax *float64

	MileageMin *int
	MileageMax *int
}

// HasFreeText reports whether ranked text search participates in the query.
func (f VehicleFilter) HasFreeText() bool { return f.FreeText != "" }

// filterKeys lists every argument BuildVehicleFilter accepts. Anything else
// in the raw mapping is rejected, not ignored.
var filterKeys = map[string]struct{}{
	"free_text":    {},
	"brand":        {},
	"model":        {},
	"fuel_type":    {},
	"color":        {},
	"transmission": {},
	"doors":        {},
	"doors_min":    {},
	"doors_max":    {},
	"year_min":     {},
	"year_max":     {},
	"price_min":    {},
	"price_max":    {},
	"mileage_min":  {},
	"mileage_max":  {},
}

// BuildVehicleFilter turns an untyped argument mapping into a validated
// VehicleFilter. Unknown keys, type mismatches and inverted ranges are
// rejected with a ValidationError; empty strings and empty lists normalize
// to "unset". Pure: no storage access, the input map is not modified.
func BuildVehicleFilter(args map[string]any) (VehicleFilter, error) {
	var f VehicleFilter

	for key := range args {
		if _, ok := filterKeys[key]; !ok {
			return VehicleFilter{}, NewValidationError(key, "unknown argument")
		}
	}

	var err error
	if f.FreeText, err = stringArg(args, "free_text"); err != nil {
		return VehicleFilter{}, err
	}
	f.FreeText = strings.TrimSpace(f.FreeText)

	if f.Brands, err = stringListArg(args, "brand"); err != nil {
		return VehicleFilter{}, err
	}
	if f.Models, err = stringListArg(args, "model"); err != nil {
		return VehicleFilter{}, err
	}
	if f.FuelTypes, err = stringListArg(args, "fuel_type"); err != nil {
		return VehicleFilter{}, err
	}
	if f.Colors, err = stringListArg(args, "color"); err != nil {
		return VehicleFilter{}, err
	}
	if f.Transmissions, err = stringListArg(args, "transmission"); err != nil {
		return VehicleFilter{}, err
	}

	if f.Doors, err = intArg(args, "doors"); err != nil {
		return VehicleFilter{}, err
	}
	if f.DoorsMin, err = intArg(args, "doors_min"); err != nil {
		return VehicleFilter{}, err
	}
	if f.DoorsMax, err = intArg(args, "doors_max"); err != nil {
		return VehicleFilter{}, err
	}
	if f.YearMin, err = intArg(args, "year_min"); err != nil {
		return VehicleFilter{}, err
	}
	if f.YearMax, err = intArg(args, "year_max"); err != nil {
		return VehicleFilter{}, err
	}
	if f.MileageMin, err = intArg(args, "mileage_min"); err != nil {
		return VehicleFilter{}, err
	}
	if f.MileageMax, err = intArg(args, "mileage_max"); err != nil {
		return VehicleFilter{}, err
	}
	if f.PriceMin, err = floatArg(args, "price_min"); err != nil {
		return VehicleFilter{}, err
	}
	if f.PriceMax, err = floatArg(args, "price_max"); err != nil {
		return VehicleFilter{}, err
	}

	if err := checkIntRange("doors_min", f.DoorsMin, "doors_max", f.DoorsMax); err != nil {
		return VehicleFilter{}, err
	}
	if err := checkIntRange("year_min", f.YearMin, "year_max", f.YearMax); err != nil {
		return VehicleFilter{}, err
	}
	if err := checkIntRange("mileage_min", f.MileageMin, "mileage_max", f.MileageMax); err != nil {
		return VehicleFilter{}, err
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return VehicleFilter{}, NewValidationError("price_min",
			fmt.Sprintf("must not exceed price_max (%v > %v)", *f.PriceMin, *f.PriceMax))
	}

	return f, nil
}

func checkIntRange(minKey string, min *int, maxKey string, max *int) error {
	if min != nil && max != nil && *min > *max {
		return NewValidationError(minKey,
			fmt.Sprintf("must not exceed %s (%d > %d)", maxKey, *min, *max))
	}
	return nil
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", NewValidationError(key, fmt.Sprintf("expected a string, got %T", raw))
	}
	return s, nil
}

// stringListArg accepts a single string or a list of strings; both collapse
// to a folded membership set. Empty values are dropped, an empty result is
// "unset".
func stringListArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}

	var values []string
	switch v := raw.(type) {
	case string:
		values = []string{v}
	case []string:
		values = v
	case []any:
		values = make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, NewValidationError(key,
					fmt.Sprintf("expected a list of strings, got element %T", item))
			}
			values = append(values, s)
		}
	default:
		return nil, NewValidationError(key,
			fmt.Sprintf("expected a string or list of strings, got %T", raw))
	}

	folded := FoldAll(values)
	if len(folded) == 0 {
		return nil, nil
	}
	return folded, nil
}

func intArg(args map[string]any, key string) (*int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case int:
		return &v, nil
	case int64:
		n := int(v)
		return &n, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, NewValidationError(key, fmt.Sprintf("expected an integer, got %v", v))
		}
		n := int(v)
		return &n, nil
	default:
		return nil, NewValidationError(key, fmt.Sprintf("expected an integer, got %T", raw))
	}
}

func floatArg(args map[string]any, key string) (*float64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		return &v, nil
	case int:
		n := float64(v)
		return &n, nil
	case int64:
		n := float64(v)
		return &n, nil
	default:
		return nil, NewValidationError(key, fmt.Sprintf("expected a number, got %T", raw))
	}
}
