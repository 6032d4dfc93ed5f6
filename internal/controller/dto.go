package controller

import (
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/project/lending/internal/entity"
)

type bookResponse struct {
	BookID          string    `json:"bookId"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Publisher       *string   `json:"publisher"`
	YearPublished   *int      `json:"year"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toBookResponse(b entity.Book, _ int) bookResponse {
	return bookResponse{
		BookID:          b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		Publisher:       b.Publisher,
		YearPublished:   b.YearPublished,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt,
	}
}

type createBookRequest struct {
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Publisher   *string `json:"publisher"`
	Year        *int    `json:"year"`
	TotalCopies *int    `json:"totalCopies"`
}

func (r createBookRequest) toEntity() entity.NewBook {
	return entity.NewBook{
		ISBN:          r.ISBN,
		Title:         r.Title,
		Author:        r.Author,
		Publisher:     r.Publisher,
		YearPublished: r.Year,
		TotalCopies:   r.TotalCopies,
	}
}

type createBookResponse struct {
	BookID string `json:"bookId"`
}

type memberResponse struct {
	MemberID   string    `json:"memberId"`
	MemberCode string    `json:"memberCode"`
	FullName   string    `json:"fullName"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Address    *string   `json:"address"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toMemberResponse(m entity.Member, _ int) memberResponse {
	return memberResponse{
		MemberID:   m.ID,
		MemberCode: m.MemberCode,
		FullName:   m.FullName,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		CreatedAt:  m.CreatedAt,
	}
}

type createMemberRequest struct {
	MemberCode string  `json:"memberCode"`
	FullName   string  `json:"fullName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
}

func (r createMemberRequest) toEntity() entity.Member {
	return entity.Member{
		MemberCode: r.MemberCode,
		FullName:   r.FullName,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
	}
}

type createMemberResponse struct {
	MemberID string `json:"memberId"`
}

type borrowRequest struct {
	BookID   string `json:"bookId"`
	MemberID string `json:"memberId"`
	Days     any    `json:"days"`
}

func (r borrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, is.UUID),
		validation.Field(&r.MemberID, validation.Required, is.UUID),
	)
}

// days returns 0, leaving the loan period to the server, unless the client
// sent a positive whole number.
func (r borrowRequest) days() int {
	d, ok := r.Days.(float64)
	if !ok || d <= 0 || d > math.MaxInt32 || d != math.Trunc(d) {
		return 0
	}
	return int(d)
}

type borrowResponse struct {
	OK      bool      `json:"ok"`
	LoanID  string    `json:"loanId"`
	DueDate time.Time `json:"dueDate"`
}

type returnRequest struct {
	LoanID string `json:"loanId"`
}

func (r returnRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LoanID, validation.Required, is.UUID),
	)
}

type okResponse struct {
	OK bool `json:"ok"`
}

type loanResponse struct {
	LoanID     string     `json:"loanId"`
	BookID     string     `json:"bookId"`
	Title      string     `json:"title"`
	MemberID   string     `json:"memberId"`
	FullName   string     `json:"fullName"`
	BorrowDate time.Time  `json:"borrowDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate"`
	IsReturned bool       `json:"isReturned"`
}

func toLoanResponse(l entity.LoanView, _ int) loanResponse {
	return loanResponse{
		LoanID:     l.LoanID,
		BookID:     l.BookID,
		Title:      l.Title,
		MemberID:   l.MemberID,
		FullName:   l.FullName,
		BorrowDate: l.BorrowDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		IsReturned: l.IsReturned,
	}
}
