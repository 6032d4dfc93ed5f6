package library

import (
	"context"

	"github.com/project/lending/internal/entity"
)

type (
	BooksUseCase interface {
		ListBooks(ctx context.Context) ([]entity.Book, error)
		CreateBook(ctx context.Context, book entity.NewBook) (entity.Book, error)
	}

	MembersUseCase interface {
		ListMembers(ctx context.Context) ([]entity.Member, error)
		CreateMember(ctx context.Context, member entity.Member) (entity.Member, error)
	}

	LoansUseCase interface {
		Borrow(ctx context.Context, bookID, memberID string, days int) (entity.Loan, error)
		Return(ctx context.Context, loanID string) (entity.Loan, error)
		ListLoans(ctx context.Context) ([]entity.LoanView, error)
	}
)
