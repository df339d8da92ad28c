package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var insertColumns = []string{
	"brand", "model", "year_manufacture", "year_model", "engine_size",
	"fuel_type", "color", "mileage", "doors", "transmission", "price",
}

// Insert writes the generated vehicles in one transaction over the COPY
// protocol. id, created_at and the search vector are filled by the schema
// defaults and trigger, atomically with each row.
func Insert(ctx context.Context, pool *pgxpool.Pool, vehicles []VehicleSeed) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows := make([][]interface{}, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, []interface{}{
			v.Brand, v.Model, v.YearManufacture, v.YearModel, v.EngineSize,
			v.FuelType, v.Color, v.Mileage, v.Doors, v.Transmission, v.Price,
		})
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"vehicles"}, insertColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy vehicles: %w", err)
	}
	if copied != int64(len(vehicles)) {
		return fmt.Errorf("copied %d of %d vehicles", copied, len(vehicles))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
