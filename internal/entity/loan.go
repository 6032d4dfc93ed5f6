package entity

import "time"

const DefaultLoanDays = 14

type Loan struct {
	ID         string
	BookID     string
	MemberID   string
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	IsReturned bool
}

// Close moves an open loan into its final state.
func (l *Loan) Close(at time.Time) {
	l.ReturnDate = &at
	l.IsReturned = true
}

// LoanView is a loan joined with the title of its book and the name of its member.
type LoanView struct {
	LoanID     string
	BookID     string
	Title      string
	MemberID   string
	FullName   string
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	IsReturned bool
}

// LoanEvent is the payload written to the outbox on borrow and return.
type LoanEvent struct {
	LoanID     string     `json:"loanId"`
	BookID     string     `json:"bookId"`
	MemberID   string     `json:"memberId"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
}

func NewLoanEvent(l Loan) LoanEvent {
	return LoanEvent{
		LoanID:     l.ID,
		BookID:     l.BookID,
		MemberID:   l.MemberID,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
	}
}
