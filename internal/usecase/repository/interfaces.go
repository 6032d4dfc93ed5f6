package repository

import (
	"context"
	"time"

	"github.com/project/lending/internal/entity"
)

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
		SendMessage(ctx context.Context, idempotencyKey string, kind OutboxKind, message []byte) error
		GetMessages(ctx context.Context, batchSize int, inProgressTTL time.Duration) ([]OutboxData, error)
		MarkAs(ctx context.Context, idempotencyKeys []string, s Status) error
	}

	OutboxData struct {
		IdempotencyKey string
		Kind           OutboxKind
		RawData        []byte
	}

	Transactor interface {
		WithTx(ctx context.Context, function func(ctx context.Context) error) error
	}
)

type OutboxKind int

const (
	OutboxKindUndefined OutboxKind = iota
	OutboxKindLoanBorrowed
	OutboxKindLoanReturned
)

func (o OutboxKind) String() string {
	switch o {
	case OutboxKindLoanBorrowed:
		return "loan_borrowed"
	case OutboxKindLoanReturned:
		return "loan_returned"
	default:
		return "undefined"
	}
}
