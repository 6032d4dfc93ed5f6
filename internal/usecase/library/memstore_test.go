package library

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/internal/usecase/repository"
)

// memStore is an in-memory store that behaves like the postgres repositories
// under WithTx: Lock* takes a row lock held until the transaction ends and
// every write is undone when the transaction fails.
type memStore struct {
	mu       sync.Mutex
	books    map[string]*entity.Book
	members  map[string]entity.Member
	loans    map[string]*entity.Loan
	rowLocks map[string]*sync.Mutex
	events   []repository.OutboxKind

	failOutbox bool
}

type memTx struct {
	undo   []func()
	locked []*sync.Mutex
}

type memTxKey struct{}

var errNoMemTx = errors.New("row lock outside transaction")

func newMemStore() *memStore {
	return &memStore{
		books:    make(map[string]*entity.Book),
		members:  make(map[string]entity.Member),
		loans:    make(map[string]*entity.Loan),
		rowLocks: make(map[string]*sync.Mutex),
	}
}

func (s *memStore) addBook(total, available int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.books[id] = &entity.Book{ID: id, Title: id, TotalCopies: total, AvailableCopies: available}
	return id
}

func (s *memStore) addMember() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.members[id] = entity.Member{ID: id, MemberCode: id, FullName: id}
	return id
}

func (s *memStore) book(id string) entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.books[id]
}

func (s *memStore) loanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loans)
}

func (s *memStore) openLoans(bookID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.loans {
		if l.BookID == bookID && !l.IsReturned {
			n++
		}
	}
	return n
}

func (s *memStore) WithTx(ctx context.Context, function func(ctx context.Context) error) error {
	tx := &memTx{}

	err := function(context.WithValue(ctx, memTxKey{}, tx))
	if err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.mu.Unlock()
	}

	for i := len(tx.locked) - 1; i >= 0; i-- {
		tx.locked[i].Unlock()
	}
	return err
}

func (s *memStore) lockRow(ctx context.Context, key string) (*memTx, error) {
	tx, ok := ctx.Value(memTxKey{}).(*memTx)
	if !ok {
		return nil, errNoMemTx
	}

	s.mu.Lock()
	lock, ok := s.rowLocks[key]
	if !ok {
		lock = new(sync.Mutex)
		s.rowLocks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	tx.locked = append(tx.locked, lock)
	return tx, nil
}

func (s *memStore) recordUndo(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		tx.undo = append(tx.undo, undo)
	}
}

func (s *memStore) ListBooks(_ context.Context) ([]entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]entity.Book, 0, len(s.books))
	for _, b := range s.books {
		res = append(res, *b)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Title < res[j].Title })
	return res, nil
}

func (s *memStore) AddBook(_ context.Context, book entity.Book) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = uuid.NewString()
	s.books[book.ID] = &book
	return book, nil
}

func (s *memStore) LockBook(ctx context.Context, idBook string) (entity.Book, error) {
	if _, err := s.lockRow(ctx, "book:"+idBook); err != nil {
		return entity.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[idBook]
	if !ok {
		return entity.Book{}, entity.ErrBookNotFound
	}
	return *b, nil
}

func (s *memStore) ChangeAvailableCopies(ctx context.Context, idBook string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[idBook]
	if !ok {
		return entity.ErrBookNotFound
	}

	next := b.AvailableCopies + delta
	switch {
	case next < 0:
		return entity.ErrNoCopiesAvailable
	case next > b.TotalCopies:
		return entity.ErrInventoryInconsistent
	}

	b.AvailableCopies = next
	s.recordUndo(ctx, func() { b.AvailableCopies -= delta })
	return nil
}

func (s *memStore) ListMembers(_ context.Context) ([]entity.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]entity.Member, 0, len(s.members))
	for _, m := range s.members {
		res = append(res, m)
	}
	return res, nil
}

func (s *memStore) AddMember(_ context.Context, member entity.Member) (entity.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member.ID = uuid.NewString()
	s.members[member.ID] = member
	return member, nil
}

func (s *memStore) AddLoan(ctx context.Context, loan entity.Loan) (entity.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[loan.MemberID]; !ok {
		return entity.Loan{}, entity.ErrMemberNotFound
	}
	if _, ok := s.books[loan.BookID]; !ok {
		return entity.Loan{}, entity.ErrBookNotFound
	}

	loan.ID = uuid.NewString()
	stored := loan
	s.loans[loan.ID] = &stored
	s.recordUndo(ctx, func() { delete(s.loans, loan.ID) })
	return loan, nil
}

func (s *memStore) LockLoan(ctx context.Context, idLoan string) (entity.Loan, error) {
	if _, err := s.lockRow(ctx, "loan:"+idLoan); err != nil {
		return entity.Loan{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.loans[idLoan]
	if !ok {
		return entity.Loan{}, entity.ErrLoanNotFound
	}
	return *l, nil
}

func (s *memStore) CloseLoan(ctx context.Context, idLoan string, returnedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.loans[idLoan]
	if !ok || l.IsReturned {
		return entity.ErrAlreadyReturned
	}

	l.Close(returnedAt)
	s.recordUndo(ctx, func() {
		l.ReturnDate = nil
		l.IsReturned = false
	})
	return nil
}

func (s *memStore) ListLoans(_ context.Context) ([]entity.LoanView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]entity.LoanView, 0, len(s.loans))
	for _, l := range s.loans {
		res = append(res, entity.LoanView{
			LoanID:     l.ID,
			BookID:     l.BookID,
			Title:      s.books[l.BookID].Title,
			MemberID:   l.MemberID,
			FullName:   s.members[l.MemberID].FullName,
			BorrowDate: l.BorrowDate,
			DueDate:    l.DueDate,
			ReturnDate: l.ReturnDate,
			IsReturned: l.IsReturned,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].BorrowDate.After(res[j].BorrowDate) })
	return res, nil
}

func (s *memStore) SendMessage(ctx context.Context, _ string, kind repository.OutboxKind, _ []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failOutbox {
		return errInternal
	}

	s.events = append(s.events, kind)
	n := len(s.events) - 1
	s.recordUndo(ctx, func() { s.events = s.events[:n] })
	return nil
}
