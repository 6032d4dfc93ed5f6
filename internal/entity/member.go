package entity

import "time"

type Member struct {
	ID         string
	MemberCode string
	FullName   string
	Email      *string
	Phone      *string
	Address    *string
	CreatedAt  time.Time
}
