package repository

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

const dialectPostgres = "postgres"

// listLoansQuery joins every loan, open or closed, with its book title and
// member name, newest first.
func listLoansQuery() (string, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(goqu.T("loans").As("l")).
		InnerJoin(goqu.T("books").As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("l.book_id")))).
		InnerJoin(goqu.T("members").As("m"), goqu.On(goqu.I("m.member_id").Eq(goqu.I("l.member_id")))).
		Select(
			goqu.I("l.loan_id"),
			goqu.I("l.book_id"),
			goqu.I("b.title"),
			goqu.I("l.member_id"),
			goqu.I("m.full_name"),
			goqu.I("l.borrow_date"),
			goqu.I("l.due_date"),
			goqu.I("l.return_date"),
			goqu.I("l.is_returned"),
		).
		Order(goqu.I("l.borrow_date").Desc(), goqu.I("l.loan_id").Asc()).
		ToSQL()

	return query, err
}

func (p *postgresRepository) ListLoans(ctx context.Context) ([]entity.LoanView, error) {
	query, err := listLoansQuery()
	if err != nil {
		return nil, err
	}

	rows, err := executor(ctx, p.db).Query(ctx, query)
	if logger.CheckError(err, p.logger, "can not list loans", zap.Error(err)) {
		return nil, err
	}
	defer rows.Close()

	loans := make([]entity.LoanView, 0)
	for rows.Next() {
		var v entity.LoanView
		if err = rows.Scan(
			&v.LoanID,
			&v.BookID,
			&v.Title,
			&v.MemberID,
			&v.FullName,
			&v.BorrowDate,
			&v.DueDate,
			&v.ReturnDate,
			&v.IsReturned,
		); err != nil {
			return nil, err
		}
		loans = append(loans, v)
	}

	return loans, rows.Err()
}
