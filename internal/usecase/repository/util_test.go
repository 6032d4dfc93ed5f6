package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type txLayer uint

const (
	none txLayer = iota
	extract
)

type errLayer uint

const (
	null errLayer = iota
	db
	scan
	f
	beginTx
	commitTx
	rollBackTx
)

var errInternal = errors.New("internal error")

func insertTxInMock(ctx context.Context, mock pgxmock.PgxPoolIface) context.Context {
	mock.ExpectBegin()
	tx, _ := mock.Begin(ctx)
	ctx = context.WithValue(ctx, txInjector{}, tx)
	return ctx
}

func initRepoTest(t *testing.T) (pgxmock.PgxPoolIface, *postgresRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, New(zap.NewNop(), mock)
}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func ptr[T any](v T) *T {
	return &v
}
