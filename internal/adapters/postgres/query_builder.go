package postgres

import (
	"fmt"
	"strings"

	"vehicle-search-service/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argID:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
	}
}

// bind appends an argument and returns its positional placeholder number.
func (qb *queryBuilder) bind(arg interface{}) int {
	qb.args = append(qb.args, arg)
	pos := qb.argID
	qb.argID++
	return pos
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.bind(arg)))
}

// AddFoldedMembership matches a column against folded values, so the
// comparison is case- and accent-insensitive on both sides.
func (qb *queryBuilder) AddFoldedMembership(fieldName string, values []string) {
	if len(values) > 0 {
		qb.addCondition("lower(unaccent(%s)) = ANY($%d)", fieldName, values)
	}
}

func (qb *queryBuilder) AddIntEquality(fieldName string, value *int) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

func (qb *queryBuilder) AddIntFilter(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) whereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

const vehicleColumns = `v.id, v.brand, v.model, v.year_manufacture, v.year_model,
	v.engine_size, v.fuel_type, v.color, v.mileage, v.doors, v.transmission,
	v.price, v.created_at`

// rankExpr builds the text-search rank over the precomputed search vector.
// The free-text argument is bound once and referenced from the rank, the
// match predicate and the cursor predicate alike.
func rankExpr(textPos int) string {
	return fmt.Sprintf(
		"ts_rank(v.search_vector, websearch_to_tsquery('portuguese', unaccent($%d)))", textPos)
}

// buildSearchQuery turns a validated filter plus an optional keyset cursor
// into one parameterized statement. Pure: no pool access, fully testable.
func buildSearchQuery(filter domain.VehicleFilter, cursor *domain.PageCursor, limit int) (string, []interface{}) {
	qb := newQueryBuilder()

	rank := "0::float8"
	if filter.HasFreeText() {
		textPos := qb.bind(filter.FreeText)
		rank = rankExpr(textPos)
		qb.conditions = append(qb.conditions, fmt.Sprintf(
			"v.search_vector @@ websearch_to_tsquery('portuguese', unaccent($%d))", textPos))
	}

	qb.AddFoldedMembership("v.brand", filter.Brands)
	qb.AddFoldedMembership("v.model", filter.Models)
	qb.AddFoldedMembership("v.fuel_type", filter.FuelTypes)
	qb.AddFoldedMembership("v.color", filter.Colors)
	qb.AddFoldedMembership("v.transmission", filter.Transmissions)

	qb.AddIntEquality("v.doors", filter.Doors)
	qb.AddIntFilter("v.doors", filter.DoorsMin, filter.DoorsMax)
	qb.AddIntFilter("v.year_manufacture", filter.YearMin, filter.YearMax)
	qb.AddIntFilter("v.mileage", filter.MileageMin, filter.MileageMax)
	qb.AddFloatFilter("v.price", filter.PriceMin, filter.PriceMax)

	var orderBy string
	switch filter.SortMode() {
	case domain.SortByRank:
		orderBy = fmt.Sprintf("ORDER BY %s DESC, v.created_at DESC, v.id ASC", rank)
		if cursor != nil {
			// Keyset continuation: strictly after the last-seen
			// (rank, created_at, id) tuple under this ordering.
			qb.conditions = append(qb.conditions, fmt.Sprintf(
				"(%[1]s < $%[2]d OR (%[1]s = $%[2]d AND (v.created_at < $%[3]d OR (v.created_at = $%[3]d AND v.id > $%[4]d))))",
				rank, qb.bind(cursor.Rank), qb.bind(cursor.CreatedAt), qb.bind(cursor.ID)))
		}
	default:
		orderBy = "ORDER BY v.year_manufacture DESC, v.price ASC, v.id ASC"
		if cursor != nil {
			qb.conditions = append(qb.conditions, fmt.Sprintf(
				"(v.year_manufacture < $%[1]d OR (v.year_manufacture = $%[1]d AND (v.price > $%[2]d OR (v.price = $%[2]d AND v.id > $%[3]d))))",
				qb.bind(cursor.Year), qb.bind(cursor.Price), qb.bind(cursor.ID)))
		}
	}

	query := fmt.Sprintf(`SELECT %s, %s AS rank
FROM vehicles v
%s
%s
LIMIT $%d`, vehicleColumns, rank, qb.whereClause(), orderBy, qb.bind(limit))

	return query, qb.args
}
