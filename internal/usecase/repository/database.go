package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/project/lending/internal/entity"
)

const (
	ErrForeignKeyViolation    = "23503"
	ErrUniqueViolation        = "23505"
	ErrCheckViolation         = "23514"
	ErrInvalidTextRepresenter = "22P02"
)

// DataBase is the subset of pgxpool.Pool and pgx.Tx the repositories need.
type DataBase interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// executor returns the transaction stored by WithTx, or db itself.
func executor(ctx context.Context, db DataBase) DataBase {
	if tx, err := extractTx(ctx); err == nil {
		return tx
	}
	return db
}

// lockingExecutor is executor for statements that take row locks:
// without a surrounding transaction the lock would be released at once.
func lockingExecutor(ctx context.Context) (pgx.Tx, error) {
	tx, err := extractTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("row lock requires a transaction: %w", err)
	}
	return tx, nil
}

func pgCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// invalidID maps malformed uuid input to a validation error.
func invalidID(err error, what, id string) error {
	if pgErr, ok := pgCode(err); ok && pgErr.Code == ErrInvalidTextRepresenter {
		return fmt.Errorf("malformed %s id %q: %w", what, id, entity.ErrValidation)
	}
	return err
}
