package library

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/project/lending/internal/entity"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateBook(t *testing.T) {
	t.Parallel()

	valid := entity.NewBook{
		ISBN:          "978-5-17-090630-7",
		Title:         "Master and Margarita",
		Author:        "Mikhail Bulgakov",
		YearPublished: ptr(1967),
	}
	withCopies := func(n int) entity.NewBook {
		b := valid
		b.TotalCopies = ptr(n)
		return b
	}
	without := func(f func(b *entity.NewBook)) entity.NewBook {
		b := valid
		f(&b)
		return b
	}

	tests := []struct {
		name       string
		input      entity.NewBook
		wantCopies int
		repoErr    error
		requireErr error
	}{
		{name: "defaults to one copy", input: valid, wantCopies: 1},
		{name: "explicit copies", input: withCopies(3), wantCopies: 3},
		{name: "zero copies allowed", input: withCopies(0), wantCopies: 0},
		{name: "negative copies", input: withCopies(-1), requireErr: entity.ErrValidation},
		{name: "missing isbn", input: without(func(b *entity.NewBook) { b.ISBN = "" }), requireErr: entity.ErrValidation},
		{name: "missing title", input: without(func(b *entity.NewBook) { b.Title = "" }), requireErr: entity.ErrValidation},
		{name: "missing author", input: without(func(b *entity.NewBook) { b.Author = "" }), requireErr: entity.ErrValidation},
		{name: "storage failure", input: valid, wantCopies: 1, repoErr: errInternal, requireErr: entity.ErrStorage},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			ctx, m, uc := initLibraryTest(t)

			if !errors.Is(test.requireErr, entity.ErrValidation) {
				m.books.EXPECT().AddBook(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, book entity.Book) (entity.Book, error) {
					require.Equal(t, test.wantCopies, book.TotalCopies)
					require.Equal(t, book.TotalCopies, book.AvailableCopies)
					if test.repoErr != nil {
						return entity.Book{}, test.repoErr
					}
					book.ID = uuid.NewString()
					return book, nil
				})
			}

			book, err := uc.CreateBook(ctx, test.input)
			if test.requireErr != nil {
				require.ErrorIs(t, err, test.requireErr)
				require.Empty(t, book)
				return
			}

			require.NoError(t, err)
			require.NoError(t, uuid.Validate(book.ID))
			require.Equal(t, test.input.Title, book.Title)
			require.Equal(t, test.wantCopies, book.AvailableCopies)
		})
	}
}

func TestCreateBookKeepsDomainErrors(t *testing.T) {
	t.Parallel()

	ctx, m, uc := initLibraryTest(t)
	m.books.EXPECT().AddBook(ctx, gomock.Any()).Return(entity.Book{}, entity.ErrValidation)

	_, err := uc.CreateBook(ctx, entity.NewBook{ISBN: "1", Title: "t", Author: "a"})
	require.ErrorIs(t, err, entity.ErrValidation)
	require.NotErrorIs(t, err, entity.ErrStorage)
}

func TestListBooks(t *testing.T) {
	t.Parallel()

	books := []entity.Book{
		{ID: uuid.NewString(), Title: "A", TotalCopies: 1, AvailableCopies: 1},
		{ID: uuid.NewString(), Title: "B", TotalCopies: 2, AvailableCopies: 0},
	}

	tests := []struct {
		name       string
		repoErr    error
		requireErr error
	}{
		{name: "ok"},
		{name: "storage failure", repoErr: errInternal, requireErr: entity.ErrStorage},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			ctx, m, uc := initLibraryTest(t)
			if test.repoErr != nil {
				m.books.EXPECT().ListBooks(ctx).Return(nil, test.repoErr)
			} else {
				m.books.EXPECT().ListBooks(ctx).Return(books, nil)
			}

			got, err := uc.ListBooks(ctx)
			if test.requireErr != nil {
				require.ErrorIs(t, err, test.requireErr)
				require.ErrorIs(t, err, test.repoErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, books, got)
		})
	}
}
