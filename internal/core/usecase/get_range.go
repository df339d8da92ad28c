package usecase

import (
	"context"

	"vehicle-search-service/internal/contextkeys"
	"vehicle-search-service/internal/core/domain"
	"vehicle-search-service/internal/core/port"
)

// GetRangeUseCase reports the min/max of one numeric field. An empty store
// yields (nil, nil), which the gateway renders as {empty: true} rather than
// a misleading zero/zero pair.
type GetRangeUseCase struct {
	facets port.FacetRepositoryPort
}

func NewGetRangeUseCase(facets port.FacetRepositoryPort) *GetRangeUseCase {
	return &GetRangeUseCase{facets: facets}
}

func (uc *GetRangeUseCase) Execute(ctx context.Context, field domain.RangeField) (*domain.RangeResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetRange",
		"field":    string(field),
	})

	var result *domain.RangeResult
	var err error
	switch field {
	case domain.RangeYear:
		result, err = uc.facets.YearRange(ctx)
	case domain.RangePrice:
		result, err = uc.facets.PriceRange(ctx)
	case domain.RangeMileage:
		result, err = uc.facets.MileageRange(ctx)
	default:
		return nil, domain.NewValidationError("field", "unsupported range field")
	}
	if err != nil {
		logger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	if result == nil {
		logger.Info("Range resolved on empty store", nil)
	} else {
		logger.Info("Range resolved", port.Fields{"min": result.Min, "max": result.Max})
	}
	return result, nil
}
