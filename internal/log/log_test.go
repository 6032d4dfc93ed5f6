package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBorrowFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	InfoBorrow(l, "borrowing", "trace", "book", "member")
	InfoBorrow(l, "borrowed", "trace", "book", "member", "loan")
	require.True(t, ErrorBorrow(l, errors.New("boom"), "failed", "trace", "book", "member"))
	require.False(t, ErrorBorrow(l, nil, "failed", "trace", "book", "member"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	require.Equal(t, "book", entries[0].ContextMap()["book_id"])
	require.NotContains(t, entries[0].ContextMap(), "loan_id")
	require.Equal(t, "loan", entries[1].ContextMap()["loan_id"])
	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	require.Equal(t, Borrow, entries[2].ContextMap()["action"])
}

func TestNilLoggerIsSilent(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		InfoReturn(nil, "returned", "trace", "loan")
		InfoList(nil, "listed", "trace", ListLoans, 3)
		require.True(t, ErrorCreateMember(nil, errors.New("dup"), "failed", "trace", "M-1"))
	})
}
