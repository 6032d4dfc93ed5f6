package logger

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCheckError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	require.False(t, CheckError(nil, l, "nothing"))
	require.True(t, CheckError(errors.New("boom"), l, "failed"))
	require.True(t, CheckError(errors.New("boom"), nil, "failed without logger"))

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "failed", logs.All()[0].Message)
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	l := zap.NewNop()
	require.Same(t, l, Enabled(l, true))
	require.Nil(t, Enabled(l, false))

	MakeInfo(nil, "must not panic")
	MakeWarn(nil, "must not panic")
}

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "library.log")
	l, err := New(path)
	require.NoError(t, err)

	l.Info("hello")
	require.NoError(t, l.Sync())
	require.FileExists(t, path)
}
