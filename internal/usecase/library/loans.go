package library

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/internal/usecase/repository"
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Borrow lends one copy of bookID to memberID for days days, or for the
// configured default when days is not positive. The book row stays locked
// until the loan and the decremented counter are committed together.
func (l *libraryImpl) Borrow(ctx context.Context, bookID, memberID string, days int) (entity.Loan, error) {
	err := validation.Errors{
		"bookId":   validation.Validate(bookID, validation.Required, is.UUID),
		"memberId": validation.Validate(memberID, validation.Required, is.UUID),
	}.Filter()
	if err != nil {
		return entity.Loan{}, fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}

	if days <= 0 {
		days = l.loanDays
	}

	var loan entity.Loan
	err = l.transactor.WithTx(ctx, func(ctx context.Context) error {
		book, txErr := l.booksRepository.LockBook(ctx, bookID)
		if txErr != nil {
			return txErr
		}

		if !book.CanLend() {
			return entity.ErrNoCopiesAvailable
		}

		now := l.now()
		loan, txErr = l.loansRepository.AddLoan(ctx, entity.Loan{
			BookID:     bookID,
			MemberID:   memberID,
			BorrowDate: now,
			DueDate:    now.AddDate(0, 0, days),
		})
		if txErr != nil {
			return txErr
		}

		if txErr = l.booksRepository.ChangeAvailableCopies(ctx, bookID, -1); txErr != nil {
			return txErr
		}

		return l.sendLoanEvent(ctx, repository.OutboxKindLoanBorrowed, loan)
	})

	if logger.CheckError(err, l.logger, "Failed borrow book",
		zap.String("id of book", bookID), zap.String("id of member", memberID), zap.Error(err)) {
		return entity.Loan{}, entity.AsStorage(err)
	}

	logger.MakeInfo(l.logger, "Borrowed the book",
		zap.String("id of loan", loan.ID), zap.String("id of book", bookID), zap.Time("due date", loan.DueDate))
	return loan, nil
}

// Return closes loanID and puts its copy back on the shelf. A loan can be
// closed only once.
func (l *libraryImpl) Return(ctx context.Context, loanID string) (entity.Loan, error) {
	if err := validation.Validate(loanID, validation.Required, is.UUID); err != nil {
		return entity.Loan{}, fmt.Errorf("%w: loanId: %w", entity.ErrValidation, err)
	}

	var loan entity.Loan
	err := l.transactor.WithTx(ctx, func(ctx context.Context) error {
		var txErr error
		loan, txErr = l.loansRepository.LockLoan(ctx, loanID)
		if txErr != nil {
			return txErr
		}

		if loan.IsReturned {
			return entity.ErrAlreadyReturned
		}

		now := l.now()
		if txErr = l.loansRepository.CloseLoan(ctx, loanID, now); txErr != nil {
			return txErr
		}
		loan.Close(now)

		if txErr = l.booksRepository.ChangeAvailableCopies(ctx, loan.BookID, 1); txErr != nil {
			return txErr
		}

		return l.sendLoanEvent(ctx, repository.OutboxKindLoanReturned, loan)
	})

	if logger.CheckError(err, l.logger, "Failed return loan", zap.String("id of loan", loanID), zap.Error(err)) {
		return entity.Loan{}, entity.AsStorage(err)
	}

	logger.MakeInfo(l.logger, "Returned the book", zap.String("id of loan", loanID), zap.String("id of book", loan.BookID))
	return loan, nil
}

func (l *libraryImpl) ListLoans(ctx context.Context) ([]entity.LoanView, error) {
	loans, err := l.loansRepository.ListLoans(ctx)
	if logger.CheckError(err, l.logger, "Failed list loans", zap.Error(err)) {
		return nil, entity.AsStorage(err)
	}

	return loans, nil
}

func (l *libraryImpl) sendLoanEvent(ctx context.Context, kind repository.OutboxKind, loan entity.Loan) error {
	if l.outboxRepository == nil {
		return nil
	}

	data, err := json.Marshal(entity.NewLoanEvent(loan))
	if err != nil {
		return fmt.Errorf("can not marshal %s event: %w", kind, err)
	}

	return l.outboxRepository.SendMessage(ctx, uuid.NewString(), kind, data)
}
