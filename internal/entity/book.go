package entity

import "time"

const DefaultTotalCopies = 1

type Book struct {
	ID              string
	ISBN            string
	Title           string
	Author          string
	Publisher       *string
	YearPublished   *int
	TotalCopies     int
	AvailableCopies int
	CreatedAt       time.Time
}

// CanLend reports whether at least one copy is on the shelf.
func (b Book) CanLend() bool {
	return b.AvailableCopies > 0
}

// NewBook is the catalog input for a book. A nil TotalCopies means the
// caller did not say and DefaultTotalCopies applies.
type NewBook struct {
	ISBN          string
	Title         string
	Author        string
	Publisher     *string
	YearPublished *int
	TotalCopies   *int
}
