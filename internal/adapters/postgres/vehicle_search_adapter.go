package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vehicle-search-service/internal/contextkeys"
	"vehicle-search-service/internal/core/domain"
	"vehicle-search-service/internal/core/port"
)

// VehicleSearchAdapter implements port.VehicleSearchPort over a pgx pool.
// Every call is read-only and deadline-bound; the adapter holds no state
// besides the pool.
type VehicleSearchAdapter struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

func NewVehicleSearchAdapter(pool *pgxpool.Pool, queryTimeout time.Duration) (*VehicleSearchAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &VehicleSearchAdapter{pool: pool, queryTimeout: queryTimeout}, nil
}

func (a *VehicleSearchAdapter) Search(ctx context.Context, filter domain.VehicleFilter, cursor *domain.PageCursor, limit int) ([]domain.SearchHit, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "VehicleSearchAdapter",
		"method":    "Search",
		"limit":     limit,
	})

	query, args := buildSearchQuery(filter, cursor, limit)

	ctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query vehicles", err, port.Fields{"query": query})
		return nil, classifyError(ctx, "search vehicles", err)
	}
	defer rows.Close()

	hits := make([]domain.SearchHit, 0, limit)
	for rows.Next() {
		var hit domain.SearchHit
		if err := rows.Scan(
			&hit.ID, &hit.Brand, &hit.Model, &hit.YearManufacture, &hit.YearModel,
			&hit.EngineSize, &hit.FuelType, &hit.Color, &hit.Mileage, &hit.Doors,
			&hit.Transmission, &hit.Price, &hit.CreatedAt, &hit.Rank,
		); err != nil {
			return nil, classifyError(ctx, "scan vehicle row", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(ctx, "read vehicle rows", err)
	}

	logger.Debug("Search query finished", port.Fields{"rows": len(hits)})
	return hits, nil
}
