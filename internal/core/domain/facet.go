package domain

// DistinctField names a field whose distinct values can be listed.
type DistinctField string

const (
	DistinctBrand        DistinctField = "brand"
	DistinctModel        DistinctField = "model"
	DistinctFuelType     DistinctField = "fuel_type"
	DistinctColor        DistinctField = "color"
	DistinctTransmission DistinctField = "transmission"
	DistinctDoors        DistinctField = "doors"
)

// ParseDistinctField validates a caller-supplied field name.
func ParseDistinctField(s string) (DistinctField, error) {
	switch f := DistinctField(s); f {
	case DistinctBrand, DistinctModel, DistinctFuelType, DistinctColor,
		DistinctTransmission, DistinctDoors:
		return f, nil
	default:
		return "", NewValidationError("field",
			"must be one of brand, model, fuel_type, color, transmission, doors")
	}
}

// RangeField names a numeric field whose min/max can be queried.
type RangeField string

const (
	RangeYear    RangeField = "year"
	RangePrice   RangeField = "price"
	RangeMileage RangeField = "mileage"
)

// ParseRangeField validates a caller-supplied range field name.
func ParseRangeField(s string) (RangeField, error) {
	switch f := RangeField(s); f {
	case RangeYear, RangePrice, RangeMileage:
		return f, nil
	default:
		return "", NewValidationError("field", "must be one of year, price, mileage")
	}
}
