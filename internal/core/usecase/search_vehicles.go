package usecase

import (
	"context"

	"vehicle-search-service/internal/contextkeys"
	"vehicle-search-service/internal/core/domain"
	"vehicle-search-service/internal/core/port"
)

// SearchVehiclesUseCase composes one paginated, deterministically ordered
// lookup from a validated filter.
type SearchVehiclesUseCase struct {
	storage port.VehicleSearchPort
}

func NewSearchVehiclesUseCase(storage port.VehicleSearchPort) *SearchVehiclesUseCase {
	return &SearchVehiclesUseCase{storage: storage}
}

// Execute runs the search. pageToken may be empty; pageSize is clamped, an
// oversized request truncates instead of failing. An empty match set is a
// valid outcome, not an error.
func (uc *SearchVehiclesUseCase) Execute(ctx context.Context, filter domain.VehicleFilter, pageToken string, pageSize int) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SearchVehicles",
	})

	mode := filter.SortMode()

	var cursor *domain.PageCursor
	if pageToken != "" {
		var err error
		cursor, err = domain.DecodePageToken(pageToken, mode)
		if err != nil {
			logger.Warn("Rejected page token", port.Fields{"error": err.Error()})
			return nil, err
		}
	}

	size := domain.ClampPageSize(pageSize)

	// One extra row tells us whether another page exists without a
	// separate count query.
	hits, err := uc.storage.Search(ctx, filter, cursor, size+1)
	if err != nil {
		logger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	result := &domain.SearchResult{Vehicles: make([]domain.Vehicle, 0, size)}
	hasMore := len(hits) > size
	if hasMore {
		hits = hits[:size]
	}
	for _, hit := range hits {
		result.Vehicles = append(result.Vehicles, hit.Vehicle)
	}
	if hasMore {
		result.NextPageToken = domain.EncodePageToken(domain.CursorFromHit(hits[len(hits)-1], mode))
	}

	logger.Info("Search finished", port.Fields{
		"items_on_page": len(result.Vehicles),
		"has_more":      hasMore,
	})
	return result, nil
}
