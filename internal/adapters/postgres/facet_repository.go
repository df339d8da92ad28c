package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"vehicle-search-service/internal/core/domain"
)

// FacetRepository answers distinct-value and min/max queries. Every method
// issues one fresh read-only query; nothing is cached between calls.
type FacetRepository struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

func NewFacetRepository(pool *pgxpool.Pool, queryTimeout time.Duration) (*FacetRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &FacetRepository{pool: pool, queryTimeout: queryTimeout}, nil
}

// distinctText runs a DISTINCT scan over one text column. ORDER BY keeps
// the result stable within a call.
func (a *FacetRepository) distinctText(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %[1]s
		FROM vehicles
		WHERE %[1]s IS NOT NULL AND %[1]s != ''
		ORDER BY %[1]s ASC
	`, column)

	ctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, classifyError(ctx, "distinct "+column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, classifyError(ctx, "scan distinct "+column, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(ctx, "read distinct "+column, err)
	}
	return values, nil
}

func (a *FacetRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	return a.distinctText(ctx, "brand")
}

// DistinctModels lists models, optionally narrowed to the given brands.
// Brand values arrive folded, so they are matched against
// lower(unaccent(brand)).
func (a *FacetRepository) DistinctModels(ctx context.Context, brands []string) ([]string, error) {
	if len(brands) == 0 {
		return a.distinctText(ctx, "model")
	}

	query := `
		SELECT DISTINCT model
		FROM vehicles
		WHERE model IS NOT NULL AND model != '' AND lower(unaccent(brand)) = ANY($1)
		ORDER BY model ASC
	`

	ctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	rows, err := a.pool.Query(ctx, query, brands)
	if err != nil {
		return nil, classifyError(ctx, "distinct models by brand", err)
	}
	defer rows.Close()

	models := make([]string, 0)
	for rows.Next() {
		var model string
		if err := rows.Scan(&model); err != nil {
			return nil, classifyError(ctx, "scan distinct model", err)
		}
		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(ctx, "read distinct models", err)
	}
	return models, nil
}

func (a *FacetRepository) DistinctFuelTypes(ctx context.Context) ([]string, error) {
	return a.distinctText(ctx, "fuel_type")
}

func (a *FacetRepository) DistinctColors(ctx context.Context) ([]string, error) {
	return a.distinctText(ctx, "color")
}

func (a *FacetRepository) DistinctTransmissions(ctx context.Context) ([]string, error) {
	return a.distinctText(ctx, "transmission")
}

func (a *FacetRepository) DistinctDoors(ctx context.Context) ([]int, error) {
	query := `
		SELECT DISTINCT doors
		FROM vehicles
		ORDER BY doors ASC
	`

	ctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, classifyError(ctx, "distinct doors", err)
	}
	defer rows.Close()

	doors := make([]int, 0)
	for rows.Next() {
		var value int
		if err := rows.Scan(&value); err != nil {
			return nil, classifyError(ctx, "scan distinct doors", err)
		}
		doors = append(doors, value)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(ctx, "read distinct doors", err)
	}
	return doors, nil
}

// numericRange scans MIN/MAX of one column. Both aggregates come back NULL
// on an empty table; that maps to (nil, nil) instead of a zero/zero pair.
func (a *FacetRepository) numericRange(ctx context.Context, column string) (*domain.RangeResult, error) {
	query := fmt.Sprintf(
		"SELECT MIN(%[1]s)::float8, MAX(%[1]s)::float8 FROM vehicles", column)

	ctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	var min, max *float64
	if err := a.pool.QueryRow(ctx, query).Scan(&min, &max); err != nil {
		return nil, classifyError(ctx, "range of "+column, err)
	}
	if min == nil || max == nil {
		return nil, nil
	}
	return &domain.RangeResult{Min: *min, Max: *max}, nil
}

func (a *FacetRepository) YearRange(ctx context.Context) (*domain.RangeResult, error) {
	return a.numericRange(ctx, "year_manufacture")
}

func (a *FacetRepository) PriceRange(ctx context.Context) (*domain.RangeResult, error) {
	return a.numericRange(ctx, "price")
}

func (a *FacetRepository) MileageRange(ctx context.Context) (*domain.RangeResult, error) {
	return a.numericRange(ctx, "mileage")
}
