package port

import (
	"context"

	"vehicle-search-service/internal/core/domain"
)

// FacetRepositoryPort answers distinct-value and min/max queries against the
// current store state. Every method is independent and side-effect-free.
// Range methods return (nil, nil) on an empty store instead of a zero pair.
type FacetRepositoryPort interface {
	DistinctBrands(ctx context.Context) ([]string, error)
	// DistinctModels optionally narrows to models of the given brands
	// (values already folded by the caller).
	DistinctModels(ctx context.Context, brands []string) ([]string, error)
	DistinctFuelTypes(ctx context.Context) ([]string, error)
	DistinctColors(ctx context.Context) ([]string, error)
	DistinctTransmissions(ctx context.Context) ([]string, error)
	DistinctDoors(ctx context.Context) ([]int, error)

	YearRange(ctx context.Context) (*domain.RangeResult, error)
	PriceRange(ctx context.Context) (*domain.RangeResult, error)
	MileageRange(ctx context.Context) (*domain.RangeResult, error)
}
