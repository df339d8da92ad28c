package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"vehicle-search-service/internal/core/domain"
)

// classifyError maps a pgx failure onto the domain taxonomy. Deadline
// expiry becomes a timeout-flagged StorageError, CHECK failures become
// ConstraintViolation, everything else stays a plain retryable StorageError.
func classifyError(ctx context.Context, op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &domain.StorageError{Err: wrapped, Timeout: true}
	}

	// SQLSTATE class 23 covers every integrity constraint violation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return &domain.ConstraintViolation{Err: wrapped}
	}

	return &domain.StorageError{Err: wrapped}
}
