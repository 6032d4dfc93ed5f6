package library

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

func (l *libraryImpl) ListBooks(ctx context.Context) ([]entity.Book, error) {
	books, err := l.booksRepository.ListBooks(ctx)
	if logger.CheckError(err, l.logger, "Failed list books", zap.Error(err)) {
		return nil, entity.AsStorage(err)
	}

	return books, nil
}

func (l *libraryImpl) CreateBook(ctx context.Context, input entity.NewBook) (entity.Book, error) {
	if err := validateBook(input); err != nil {
		return entity.Book{}, err
	}

	total := entity.DefaultTotalCopies
	if input.TotalCopies != nil {
		total = *input.TotalCopies
	}

	book, err := l.booksRepository.AddBook(ctx, entity.Book{
		ISBN:            input.ISBN,
		Title:           input.Title,
		Author:          input.Author,
		Publisher:       input.Publisher,
		YearPublished:   input.YearPublished,
		TotalCopies:     total,
		AvailableCopies: total,
	})
	if logger.CheckError(err, l.logger, "Failed added book", zap.String("isbn", input.ISBN), zap.Error(err)) {
		return entity.Book{}, entity.AsStorage(err)
	}

	logger.MakeInfo(l.logger, "Added the book", zap.String("id of book", book.ID))
	return book, nil
}

func validateBook(book entity.NewBook) error {
	err := validation.ValidateStruct(&book,
		validation.Field(&book.ISBN, validation.Required),
		validation.Field(&book.Title, validation.Required),
		validation.Field(&book.Author, validation.Required),
		validation.Field(&book.TotalCopies, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}
	return nil
}
