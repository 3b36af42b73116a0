package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mvillagra/gradebook-server/internal/model"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps low-level store failures to classified errors.
// Callers handle pgx.ErrNoRows themselves because the right NotFound
// message depends on the entity.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return model.NewConflict("resource already exists")
		case pgForeignKeyViolation:
			return model.NewInvalidInput("referenced resource does not exist")
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return model.NewUnavailable("store operation timed out", err)
	}

	return model.NewUnavailable("store operation failed", err)
}
