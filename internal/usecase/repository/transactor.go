package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

type GetterTx interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ Transactor = (*transactorImpl)(nil)

type transactorImpl struct {
	logger *zap.Logger
	db     GetterTx
}

func NewTransactor(logger *zap.Logger, db GetterTx) *transactorImpl {
	return &transactorImpl{
		logger: logger,
		db:     db,
	}
}

// WithTx runs function inside a single transaction. The transaction is
// committed when function returns nil and rolled back otherwise, including
// on panic. Nested calls reuse the outer transaction.
func (t *transactorImpl) WithTx(ctx context.Context, function func(ctx context.Context) error) (txErr error) {
	if _, err := extractTx(ctx); err == nil {
		return function(ctx)
	}

	ctxWithTx, tx, err := injectTx(ctx, t.db)

	if err != nil {
		return fmt.Errorf("can not inject transaction, error: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rbErr := tx.Rollback(ctxWithTx)
			logger.CheckError(rbErr, t.logger, "failed Rollback of tx after panic", zap.Error(rbErr))
			panic(p)
		}

		if txErr != nil {
			rbErr := tx.Rollback(ctxWithTx)
			logger.CheckError(rbErr, t.logger, "failed Rollback of tx", zap.Error(rbErr))
			return
		}

		if cErr := tx.Commit(ctxWithTx); logger.CheckError(cErr, t.logger, "failed commit of tx", zap.Error(cErr)) {
			txErr = fmt.Errorf("can not commit transaction: %w", cErr)
		}
	}()

	return function(ctxWithTx)
}

type txInjector struct{}

var ErrTxNotFound = errors.New("tx not found in context")

func injectTx(ctx context.Context, pool GetterTx) (context.Context, pgx.Tx, error) {
	tx, err := pool.Begin(ctx)

	if err != nil {
		return nil, nil, err
	}

	return context.WithValue(ctx, txInjector{}, tx), tx, nil
}

func extractTx(ctx context.Context) (pgx.Tx, error) {
	tx, ok := ctx.Value(txInjector{}).(pgx.Tx)

	if !ok {
		return nil, ErrTxNotFound
	}

	return tx, nil
}
