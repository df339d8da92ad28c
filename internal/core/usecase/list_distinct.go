package usecase

import (
	"context"

	"vehicle-search-service/internal/contextkeys"
	"vehicle-search-service/internal/core/domain"
	"vehicle-search-service/internal/core/port"
)

// ListDistinctUseCase reports the distinct values currently present for one
// categorical field, so a caller never proposes a filter the inventory
// cannot satisfy.
type ListDistinctUseCase struct {
	facets port.FacetRepositoryPort
}

func NewListDistinctUseCase(facets port.FacetRepositoryPort) *ListDistinctUseCase {
	return &ListDistinctUseCase{facets: facets}
}

// Execute answers against the current store state; an empty store yields an
// empty list. brands narrows the result for the model field only.
func (uc *ListDistinctUseCase) Execute(ctx context.Context, field domain.DistinctField, brands []string) ([]any, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListDistinct",
		"field":    string(field),
	})

	var values []any
	var err error
	switch field {
	case domain.DistinctBrand:
		values, err = toAnySlice(uc.facets.DistinctBrands(ctx))
	case domain.DistinctModel:
		values, err = toAnySlice(uc.facets.DistinctModels(ctx, domain.FoldAll(brands)))
	case domain.DistinctFuelType:
		values, err = toAnySlice(uc.facets.DistinctFuelTypes(ctx))
	case domain.DistinctColor:
		values, err = toAnySlice(uc.facets.DistinctColors(ctx))
	case domain.DistinctTransmission:
		values, err = toAnySlice(uc.facets.DistinctTransmissions(ctx))
	case domain.DistinctDoors:
		values, err = toAnySlice(uc.facets.DistinctDoors(ctx))
	default:
		return nil, domain.NewValidationError("field", "unsupported distinct field")
	}
	if err != nil {
		logger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	logger.Info("Distinct values resolved", port.Fields{"count": len(values)})
	return values, nil
}

func toAnySlice[T any](values []T, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out, nil
}
