package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

const attemptsRetry = 1

func Test_outboxRepository_SendMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		txL        txLayer
		errRequire error
	}{
		{name: "ok inside loan transaction", txL: extract},
		{name: "ok without transaction", txL: none},
		{name: "err inside transaction", txL: extract, errRequire: errInternal},
		{name: "err without transaction", txL: none, errRequire: errInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			ctx := context.Background()

			key := uuid.NewString()
			message := []byte(`{"loanId":"1"}`)

			if tt.txL == extract {
				ctx = insertTxInMock(ctx, mock)
			}
			expected := mock.ExpectExec(`INSERT INTO outbox`).WithArgs(key, message, OutboxKindLoanBorrowed)
			if tt.errRequire != nil {
				expected.WillReturnError(tt.errRequire)
			} else {
				expected.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			o := NewOutbox(mock, attemptsRetry)
			err = o.SendMessage(ctx, key, OutboxKindLoanBorrowed, message)
			require.Equal(t, tt.errRequire, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func Test_outboxRepository_GetMessages(t *testing.T) {
	t.Parallel()

	const (
		batchSize     = 3
		inProgressTTL = time.Second
	)
	claimed := []OutboxData{
		{IdempotencyKey: uuid.NewString(), Kind: OutboxKindLoanBorrowed, RawData: []byte("borrowed")},
		{IdempotencyKey: uuid.NewString(), Kind: OutboxKindLoanReturned, RawData: []byte("returned")},
	}

	tests := []struct {
		name string
		txL  txLayer
		errL errLayer
		want []OutboxData
	}{
		{name: "claims inside transaction", txL: extract, want: claimed},
		{name: "claims without transaction", txL: none, want: claimed},
		{name: "query error", txL: extract, errL: db},
		{name: "scan error", txL: none, errL: scan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			ctx := context.Background()
			interval := fmt.Sprintf("%d ms", inProgressTTL.Milliseconds())

			if tt.txL == extract {
				ctx = insertTxInMock(ctx, mock)
			}
			expected := mock.ExpectQuery(`UPDATE outbox\s+SET status = 'IN_PROGRESS'`).WithArgs(interval, batchSize)
			switch tt.errL {
			case db:
				expected.WillReturnError(errInternal)
			case scan:
				expected.WillReturnRows(pgxmock.NewRows([]string{"idempotency_key", "data", "kind"}).AddRow(-1, -1, "x"))
			default:
				rows := pgxmock.NewRows([]string{"idempotency_key", "data", "kind"})
				for _, el := range tt.want {
					rows.AddRow(el.IdempotencyKey, el.RawData, el.Kind)
				}
				expected.WillReturnRows(rows)
			}

			o := NewOutbox(mock, attemptsRetry)
			data, err := o.GetMessages(ctx, batchSize, inProgressTTL)
			if tt.errL != null {
				require.Error(t, err)
				require.Nil(t, data)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, data)
		})
	}
}

func Test_outboxRepository_MarkAs(t *testing.T) {
	t.Parallel()

	keys := []string{uuid.NewString(), uuid.NewString()}

	tests := []struct {
		name       string
		status     Status
		keys       []string
		errRequire error
	}{
		{name: "success", status: Success, keys: keys},
		{name: "back to created for retry", status: Created, keys: keys},
		{name: "exec error", status: Success, keys: keys, errRequire: errInternal},
		{name: "nothing to mark", status: Success, keys: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)

			if len(tt.keys) > 0 {
				expected := mock.ExpectExec(`UPDATE outbox`).WithArgs(tt.status.String(), tt.keys, attemptsRetry)
				if tt.errRequire != nil {
					expected.WillReturnError(tt.errRequire)
				} else {
					expected.WillReturnResult(pgxmock.NewResult("UPDATE", int64(len(tt.keys))))
				}
			}

			o := NewOutbox(mock, attemptsRetry)
			err = o.MarkAs(context.Background(), tt.keys, tt.status)
			require.Equal(t, tt.errRequire, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOutboxKindString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "loan_borrowed", OutboxKindLoanBorrowed.String())
	require.Equal(t, "loan_returned", OutboxKindLoanReturned.String())
	require.Equal(t, "undefined", OutboxKind(42).String())
}
