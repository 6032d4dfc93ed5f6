package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

const bookColumns = `book_id, isbn, title, author, publisher, year_published,
       total_copies, available_copies, created_at`

func scanBook(row pgx.Row, book *entity.Book) error {
	return row.Scan(
		&book.ID,
		&book.ISBN,
		&book.Title,
		&book.Author,
		&book.Publisher,
		&book.YearPublished,
		&book.TotalCopies,
		&book.AvailableCopies,
		&book.CreatedAt,
	)
}

func (p *postgresRepository) ListBooks(ctx context.Context) ([]entity.Book, error) {
	const query = `
SELECT ` + bookColumns + `
FROM books
ORDER BY title
`
	rows, err := executor(ctx, p.db).Query(ctx, query)
	if logger.CheckError(err, p.logger, "can not list books", zap.Error(err)) {
		return nil, err
	}
	defer rows.Close()

	books := make([]entity.Book, 0)
	for rows.Next() {
		var book entity.Book
		if err = scanBook(rows, &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

func (p *postgresRepository) AddBook(ctx context.Context, book entity.Book) (entity.Book, error) {
	const query = `
INSERT INTO books (isbn, title, author, publisher, year_published, total_copies, available_copies)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING book_id, created_at
`
	result := book

	err := executor(ctx, p.db).QueryRow(ctx, query,
		book.ISBN,
		book.Title,
		book.Author,
		book.Publisher,
		book.YearPublished,
		book.TotalCopies,
		book.AvailableCopies,
	).Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		if pgErr, ok := pgCode(err); ok && pgErr.Code == ErrCheckViolation {
			return entity.Book{}, fmt.Errorf("copies out of range: %w", entity.ErrValidation)
		}
		logger.CheckError(err, p.logger, "can not insert book", zap.String("isbn", book.ISBN), zap.Error(err))
		return entity.Book{}, err
	}

	return result, nil
}

// LockBook reads the book row with FOR UPDATE. Concurrent lockers of the
// same row wait until the holder's transaction ends and then see its writes.
func (p *postgresRepository) LockBook(ctx context.Context, idBook string) (entity.Book, error) {
	tx, err := lockingExecutor(ctx)
	if err != nil {
		return entity.Book{}, err
	}

	const query = `
SELECT ` + bookColumns + `
FROM books
WHERE book_id = $1 FOR UPDATE
`
	var book entity.Book
	err = scanBook(tx.QueryRow(ctx, query, idBook), &book)

	if errors.Is(err, pgx.ErrNoRows) {
		return entity.Book{}, entity.ErrBookNotFound
	}

	if err != nil {
		return entity.Book{}, invalidID(err, "book", idBook)
	}

	return book, nil
}

// ChangeAvailableCopies shifts available_copies by delta. The WHERE clause
// keeps the counter inside [0, total_copies] even without a prior lock.
func (p *postgresRepository) ChangeAvailableCopies(ctx context.Context, idBook string, delta int) error {
	const query = `
UPDATE books
SET available_copies = available_copies + $2
WHERE book_id = $1
  AND available_copies + $2 >= 0
  AND available_copies + $2 <= total_copies
`
	tag, err := executor(ctx, p.db).Exec(ctx, query, idBook, delta)
	if logger.CheckError(err, p.logger, "can not change available copies",
		zap.String("book_id", idBook), zap.Int("delta", delta), zap.Error(err)) {
		return invalidID(err, "book", idBook)
	}

	if tag.RowsAffected() == 0 {
		if delta < 0 {
			return entity.ErrNoCopiesAvailable
		}
		return entity.ErrInventoryInconsistent
	}

	return nil
}
