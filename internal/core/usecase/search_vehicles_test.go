package usecase

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vehicle-search-service/internal/core/domain"
)

// fakeSearchStorage reproduces the storage ordering and keyset semantics in
// memory, so pagination behavior is testable without a database.
type fakeSearchStorage struct {
	hits []domain.SearchHit
	err  error
}

func (f *fakeSearchStorage) Search(_ context.Context, filter domain.VehicleFilter, cursor *domain.PageCursor, limit int) ([]domain.SearchHit, error) {
	if f.err != nil {
		return nil, f.err
	}

	mode := filter.SortMode()
	sorted := make([]domain.SearchHit, len(f.hits))
	copy(sorted, f.hits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return hitBefore(sorted[i], sorted[j], mode)
	})

	out := make([]domain.SearchHit, 0, limit)
	for _, hit := range sorted {
		if cursor != nil && !hitBefore(cursorAsHit(*cursor), hit, mode) {
			continue
		}
		out = append(out, hit)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func hitBefore(a, b domain.SearchHit, mode domain.SortMode) bool {
	if mode == domain.SortByRank {
		if a.Rank != b.Rank {
			return a.Rank > b.Rank
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	}
	if a.YearManufacture != b.YearManufacture {
		return a.YearManufacture > b.YearManufacture
	}
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return a.ID < b.ID
}

func cursorAsHit(c domain.PageCursor) domain.SearchHit {
	return domain.SearchHit{
		Vehicle: domain.Vehicle{
			ID:              c.ID,
			YearManufacture: c.Year,
			Price:           c.Price,
			CreatedAt:       c.CreatedAt,
		},
		Rank: c.Rank,
	}
}

func makeHits(n int) []domain.SearchHit {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	hits := make([]domain.SearchHit, 0, n)
	for i := 0; i < n; i++ {
		hits = append(hits, domain.SearchHit{
			Vehicle: domain.Vehicle{
				ID:              fmt.Sprintf("id-%03d", i),
				Brand:           "Fiat",
				Model:           "Uno",
				YearManufacture: 2015 + i%5,
				Price:           30000 + float64(i)*517,
				CreatedAt:       base.Add(time.Duration(i) * time.Hour),
			},
			Rank: float64(i%4) * 0.1,
		})
	}
	return hits
}

func TestSearchVehicles_EmptyStoreIsNotAnError(t *testing.T) {
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{})

	result, err := uc.Execute(context.Background(), domain.VehicleFilter{}, "", 20)
	require.NoError(t, err)
	require.Empty(t, result.Vehicles)
	require.Empty(t, result.NextPageToken)
}

func TestSearchVehicles_SinglePageHasNoToken(t *testing.T) {
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{hits: makeHits(5)})

	result, err := uc.Execute(context.Background(), domain.VehicleFilter{}, "", 20)
	require.NoError(t, err)
	require.Len(t, result.Vehicles, 5)
	require.Empty(t, result.NextPageToken)
}

func TestSearchVehicles_ExactPageBoundaryHasNoToken(t *testing.T) {
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{hits: makeHits(6)})

	result, err := uc.Execute(context.Background(), domain.VehicleFilter{}, "", 6)
	require.NoError(t, err)
	require.Len(t, result.Vehicles, 6)
	require.Empty(t, result.NextPageToken)
}

// Walking every page must yield each matching vehicle exactly once, in a
// stable order.
func TestSearchVehicles_PaginationIsComplete(t *testing.T) {
	hits := makeHits(17)
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{hits: hits})

	var collected []domain.Vehicle
	token := ""
	pages := 0
	for {
		result, err := uc.Execute(context.Background(), domain.VehicleFilter{}, token, 5)
		require.NoError(t, err)
		collected = append(collected, result.Vehicles...)
		pages++
		require.Less(t, pages, 20, "pagination did not terminate")
		if result.NextPageToken == "" {
			break
		}
		token = result.NextPageToken
	}

	require.Equal(t, 4, pages)
	require.Len(t, collected, len(hits))

	seen := make(map[string]struct{}, len(collected))
	for _, v := range collected {
		_, dup := seen[v.ID]
		require.False(t, dup, "vehicle %s appeared twice", v.ID)
		seen[v.ID] = struct{}{}
	}

	for i := 1; i < len(collected); i++ {
		prev, cur := collected[i-1], collected[i]
		sameKey := prev.YearManufacture == cur.YearManufacture && prev.Price == cur.Price
		require.True(t,
			prev.YearManufacture > cur.YearManufacture ||
				(prev.YearManufacture == cur.YearManufacture && prev.Price < cur.Price) ||
				(sameKey && prev.ID < cur.ID),
			"ordering broken between %q and %q", prev.ID, cur.ID)
	}
}

func TestSearchVehicles_ResubmittedTokenIsIdempotent(t *testing.T) {
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{hits: makeHits(12)})

	first, err := uc.Execute(context.Background(), domain.VehicleFilter{}, "", 4)
	require.NoError(t, err)
	require.NotEmpty(t, first.NextPageToken)

	second, err := uc.Execute(context.Background(), domain.VehicleFilter{}, first.NextPageToken, 4)
	require.NoError(t, err)
	again, err := uc.Execute(context.Background(), domain.VehicleFilter{}, first.NextPageToken, 4)
	require.NoError(t, err)
	require.Equal(t, second, again)
}

func TestSearchVehicles_RankedPagination(t *testing.T) {
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{hits: makeHits(9)})
	filter := domain.VehicleFilter{FreeText: "uno"}

	first, err := uc.Execute(context.Background(), filter, "", 4)
	require.NoError(t, err)
	require.Len(t, first.Vehicles, 4)
	require.NotEmpty(t, first.NextPageToken)

	second, err := uc.Execute(context.Background(), filter, first.NextPageToken, 4)
	require.NoError(t, err)
	for _, v := range second.Vehicles {
		require.NotContains(t, vehicleIDs(first.Vehicles), v.ID)
	}
}

func TestSearchVehicles_TokenForDifferentOrderingRejected(t *testing.T) {
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{hits: makeHits(9)})

	ranked, err := uc.Execute(context.Background(), domain.VehicleFilter{FreeText: "uno"}, "", 4)
	require.NoError(t, err)
	require.NotEmpty(t, ranked.NextPageToken)

	// Same token, but the follow-up call dropped the free text.
	_, err = uc.Execute(context.Background(), domain.VehicleFilter{}, ranked.NextPageToken, 4)
	require.ErrorIs(t, err, domain.ErrInvalidPageToken)
}

func TestSearchVehicles_GarbageTokenRejected(t *testing.T) {
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{hits: makeHits(3)})

	_, err := uc.Execute(context.Background(), domain.VehicleFilter{}, "not-a-token!", 4)
	require.ErrorIs(t, err, domain.ErrInvalidPageToken)
}

func TestSearchVehicles_OversizedPageIsClamped(t *testing.T) {
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{hits: makeHits(domain.MaxPageSize + 30)})

	result, err := uc.Execute(context.Background(), domain.VehicleFilter{}, "", 100000)
	require.NoError(t, err)
	require.Len(t, result.Vehicles, domain.MaxPageSize)
	require.NotEmpty(t, result.NextPageToken)
}

func TestSearchVehicles_StorageErrorPropagates(t *testing.T) {
	storageErr := &domain.StorageError{Err: context.DeadlineExceeded, Timeout: true}
	uc := NewSearchVehiclesUseCase(&fakeSearchStorage{err: storageErr})

	_, err := uc.Execute(context.Background(), domain.VehicleFilter{}, "", 20)
	require.ErrorIs(t, err, storageErr)
}

func vehicleIDs(vehicles []domain.Vehicle) []string {
	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.ID)
	}
	return ids
}
