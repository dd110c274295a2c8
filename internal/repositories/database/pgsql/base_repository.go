package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/user_account_service/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the SQLSTATE raised for unique constraint violations.
const pgUniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// mapQueryError translates driver errors into the apperrors sentinels,
// wrapping them with op for context.
func mapQueryError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, apperrors.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
