package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vehicle-search-service/internal/core/domain"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestBuildSearchQuery_NoFilter(t *testing.T) {
	query, args := buildSearchQuery(domain.VehicleFilter{}, nil, 21)

	require.NotContains(t, query, "WHERE")
	require.Contains(t, query, "ORDER BY v.year_manufacture DESC, v.price ASC, v.id ASC")
	require.Contains(t, query, "0::float8 AS rank")
	require.Contains(t, query, "LIMIT $1")
	require.Equal(t, []interface{}{21}, args)
}

func TestBuildSearchQuery_MembershipAndRanges(t *testing.T) {
	filter := domain.VehicleFilter{
		Brands:   []string{"volkswagen", "fiat"},
		Colors:   []string{"preto"},
		YearMin:  intPtr(2018),
		PriceMax: floatPtr(80000),
		Doors:    intPtr(4),
	}

	query, args := buildSearchQuery(filter, nil, 10)

	require.Contains(t, query, "lower(unaccent(v.brand)) = ANY($1)")
	require.Contains(t, query, "lower(unaccent(v.color)) = ANY($2)")
	require.Contains(t, query, "v.doors = $3")
	require.Contains(t, query, "v.year_manufacture >= $4")
	require.Contains(t, query, "v.price <= $5")
	require.Contains(t, query, "LIMIT $6")
	require.Equal(t, []interface{}{
		[]string{"volkswagen", "fiat"},
		[]string{"preto"},
		4,
		2018,
		80000.0,
		10,
	}, args)
}

func TestBuildSearchQuery_FreeTextBindsOnce(t *testing.T) {
	filter := domain.VehicleFilter{FreeText: "gol flex"}

	query, args := buildSearchQuery(filter, nil, 20)

	require.Contains(t, query,
		"v.search_vector @@ websearch_to_tsquery('portuguese', unaccent($1))")
	require.Contains(t, query,
		"ts_rank(v.search_vector, websearch_to_tsquery('portuguese', unaccent($1))) AS rank")
	require.Contains(t, query,
		"ORDER BY ts_rank(v.search_vector, websearch_to_tsquery('portuguese', unaccent($1))) DESC, v.created_at DESC, v.id ASC")
	require.Equal(t, []interface{}{"gol flex", 20}, args)
}

func TestBuildSearchQuery_YearPriceCursor(t *testing.T) {
	cursor := &domain.PageCursor{
		Mode:  domain.SortByYearPrice,
		Year:  2021,
		Price: 62990.55,
		ID:    "0b4c5d6e-0000-0000-0000-000000000001",
	}

	query, args := buildSearchQuery(domain.VehicleFilter{}, cursor, 5)

	require.Contains(t, query,
		"(v.year_manufacture < $1 OR (v.year_manufacture = $1 AND (v.price > $2 OR (v.price = $2 AND v.id > $3))))")
	require.Equal(t, []interface{}{2021, 62990.55, cursor.ID, 5}, args)
}

func TestBuildSearchQuery_RankCursor(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cursor := &domain.PageCursor{
		Mode:      domain.SortByRank,
		Rank:      0.31,
		CreatedAt: created,
		ID:        "abc",
	}
	filter := domain.VehicleFilter{FreeText: "uno"}

	query, args := buildSearchQuery(filter, cursor, 20)

	rank := "ts_rank(v.search_vector, websearch_to_tsquery('portuguese', unaccent($1)))"
	require.Contains(t, query,
		"("+rank+" < $2 OR ("+rank+" = $2 AND (v.created_at < $3 OR (v.created_at = $3 AND v.id > $4))))")
	require.Equal(t, []interface{}{"uno", 0.31, created, "abc", 20}, args)
}

func TestBuildSearchQuery_CombinesConditionsWithAND(t *testing.T) {
	filter := domain.VehicleFilter{
		FreeText: "sedan",
		Brands:   []string{"toyota"},
	}

	query, _ := buildSearchQuery(filter, nil, 20)

	require.Contains(t, query, "WHERE")
	require.Contains(t, query, " AND ")
}
