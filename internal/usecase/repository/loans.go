package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

const (
	loansBookFK   = "loans_book_id_fkey"
	loansMemberFK = "loans_member_id_fkey"
)

func (p *postgresRepository) AddLoan(ctx context.Context, loan entity.Loan) (entity.Loan, error) {
	const query = `
INSERT INTO loans (book_id, member_id, borrow_date, due_date)
VALUES ($1, $2, $3, $4)
RETURNING loan_id
`
	result := loan
	result.ReturnDate = nil
	result.IsReturned = false

	err := executor(ctx, p.db).QueryRow(ctx, query,
		loan.BookID,
		loan.MemberID,
		loan.BorrowDate,
		loan.DueDate,
	).Scan(&result.ID)

	if err != nil {
		if pgErr, ok := pgCode(err); ok && pgErr.Code == ErrForeignKeyViolation {
			switch pgErr.ConstraintName {
			case loansMemberFK:
				return entity.Loan{}, fmt.Errorf("member with ID %s does not exist: %w",
					loan.MemberID, entity.ErrMemberNotFound)
			case loansBookFK:
				return entity.Loan{}, fmt.Errorf("book with ID %s does not exist: %w",
					loan.BookID, entity.ErrBookNotFound)
			}
		}
		logger.CheckError(err, p.logger, "can not insert loan",
			zap.String("book_id", loan.BookID), zap.String("member_id", loan.MemberID), zap.Error(err))
		return entity.Loan{}, invalidID(err, "member", loan.MemberID)
	}

	return result, nil
}

func (p *postgresRepository) LockLoan(ctx context.Context, idLoan string) (entity.Loan, error) {
	tx, err := lockingExecutor(ctx)
	if err != nil {
		return entity.Loan{}, err
	}

	const query = `
SELECT loan_id, book_id, member_id, borrow_date, due_date, return_date, is_returned
FROM loans
WHERE loan_id = $1 FOR UPDATE
`
	var loan entity.Loan
	err = tx.QueryRow(ctx, query, idLoan).Scan(
		&loan.ID,
		&loan.BookID,
		&loan.MemberID,
		&loan.BorrowDate,
		&loan.DueDate,
		&loan.ReturnDate,
		&loan.IsReturned,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return entity.Loan{}, entity.ErrLoanNotFound
	}

	if err != nil {
		return entity.Loan{}, invalidID(err, "loan", idLoan)
	}

	return loan, nil
}

// CloseLoan marks an open loan returned. A loan that is already closed
// is left untouched and reported as ErrAlreadyReturned.
func (p *postgresRepository) CloseLoan(ctx context.Context, idLoan string, returnedAt time.Time) error {
	const query = `
UPDATE loans
SET return_date = $2, is_returned = TRUE
WHERE loan_id = $1 AND NOT is_returned
`
	tag, err := executor(ctx, p.db).Exec(ctx, query, idLoan, returnedAt)
	if logger.CheckError(err, p.logger, "can not close loan", zap.String("loan_id", idLoan), zap.Error(err)) {
		return invalidID(err, "loan", idLoan)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrAlreadyReturned
	}

	return nil
}
