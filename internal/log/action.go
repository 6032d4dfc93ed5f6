package log

type Action = string

const (
	ListBooks    Action = "ListBooks"
	CreateBook          = "CreateBook"
	ListMembers         = "ListMembers"
	CreateMember        = "CreateMember"
	Borrow              = "Borrow"
	Return              = "Return"
	ListLoans           = "ListLoans"
	Readiness           = "Readiness"
)
