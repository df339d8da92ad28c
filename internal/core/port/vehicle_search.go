package port

import (
	"context"

	"vehicle-search-service/internal/core/domain"
)

// VehicleSearchPort is the read-only scan capability of the store. The
// implementation applies every present filter constraint conjunctively,
// orders by the filter's sort mode, resumes after the cursor when one is
// given and returns at most limit hits.
//
// Record invariants (year floors, positive price, door set) are enforced by
// the storage schema; implementations do not re-check them.
type VehicleSearchPort interface {
	Search(ctx context.Context, filter domain.VehicleFilter, cursor *domain.PageCursor, limit int) ([]domain.SearchHit, error)
}
