package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/project/lending/internal/usecase/library/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var (
	errInternal = errors.New("internal error")
	fixedNow    = time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC)
)

type repoMocks struct {
	books      *mocks.MockBooksRepository
	members    *mocks.MockMembersRepository
	loans      *mocks.MockLoansRepository
	outbox     *mocks.MockOutboxRepository
	transactor *mocks.MockTransactor
}

func initLibraryTest(t *testing.T) (context.Context, repoMocks, *libraryImpl) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := repoMocks{
		books:      mocks.NewMockBooksRepository(ctrl),
		members:    mocks.NewMockMembersRepository(ctrl),
		loans:      mocks.NewMockLoansRepository(ctrl),
		outbox:     mocks.NewMockOutboxRepository(ctrl),
		transactor: mocks.NewMockTransactor(ctrl),
	}
	m.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, function func(context.Context) error) error {
			return function(ctx)
		}).AnyTimes()

	uc := New(zap.NewNop(), m.books, m.members, m.loans, m.outbox, m.transactor, 0)
	uc.now = func() time.Time { return fixedNow }

	return context.Background(), m, uc
}

func ptr[T any](v T) *T {
	return &v
}
