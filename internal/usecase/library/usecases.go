package library

import (
	"context"
	"time"

	"github.com/project/lending/internal/entity"
	"github.com/project/lending/internal/usecase/repository"
	"go.uber.org/zap"
)

//go:generate mockgen -source=usecases.go -destination=mocks/mock.go -package=mocks

type (
	BooksRepository interface {
		ListBooks(ctx context.Context) ([]entity.Book, error)
		AddBook(ctx context.Context, book entity.Book) (entity.Book, error)
		LockBook(ctx context.Context, idBook string) (entity.Book, error)
		ChangeAvailableCopies(ctx context.Context, idBook string, delta int) error
	}

	MembersRepository interface {
		ListMembers(ctx context.Context) ([]entity.Member, error)
		AddMember(ctx context.Context, member entity.Member) (entity.Member, error)
	}

	LoansRepository interface {
		AddLoan(ctx context.Context, loan entity.Loan) (entity.Loan, error)
		LockLoan(ctx context.Context, idLoan string) (entity.Loan, error)
		CloseLoan(ctx context.Context, idLoan string, returnedAt time.Time) error
		ListLoans(ctx context.Context) ([]entity.LoanView, error)
	}

	OutboxRepository interface {
		SendMessage(ctx context.Context, idempotencyKey string, kind repository.OutboxKind, message []byte) error
	}

	Transactor interface {
		WithTx(ctx context.Context, function func(ctx context.Context) error) error
	}
)

var _ BooksUseCase = (*libraryImpl)(nil)
var _ MembersUseCase = (*libraryImpl)(nil)
var _ LoansUseCase = (*libraryImpl)(nil)

type libraryImpl struct {
	logger            *zap.Logger
	booksRepository   BooksRepository
	membersRepository MembersRepository
	loansRepository   LoansRepository
	outboxRepository  OutboxRepository
	transactor        Transactor
	loanDays          int
	now               func() time.Time
}

// New wires the catalog and loan use cases. outboxRepository may be nil,
// in which case no loan events are recorded.
func New(
	logger *zap.Logger,
	booksRepository BooksRepository,
	membersRepository MembersRepository,
	loansRepository LoansRepository,
	outboxRepository OutboxRepository,
	transactor Transactor,
	loanDays int,
) *libraryImpl {
	if loanDays <= 0 {
		loanDays = entity.DefaultLoanDays
	}

	return &libraryImpl{
		logger:            logger,
		booksRepository:   booksRepository,
		membersRepository: membersRepository,
		loansRepository:   loansRepository,
		outboxRepository:  outboxRepository,
		transactor:        transactor,
		loanDays:          loanDays,
		now:               time.Now,
	}
}
