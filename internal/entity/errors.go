package entity

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")

	ErrBookNotFound   = fmt.Errorf("book %w", ErrNotFound)
	ErrMemberNotFound = fmt.Errorf("member %w", ErrNotFound)
	ErrLoanNotFound   = fmt.Errorf("loan %w", ErrNotFound)

	ErrNoCopiesAvailable     = errors.New("no copies available")
	ErrAlreadyReturned       = errors.New("already returned")
	ErrInventoryInconsistent = errors.New("available copies would exceed total copies")
)

// IsDomain reports whether err belongs to the client-facing taxonomy.
// Everything else is an infrastructure fault.
func IsDomain(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrNotFound,
		ErrConflict,
		ErrStorage,
		ErrNoCopiesAvailable,
		ErrAlreadyReturned,
		ErrInventoryInconsistent,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// AsStorage wraps infrastructure faults so callers can classify them
// without inspecting driver errors.
func AsStorage(err error) error {
	if err == nil || IsDomain(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
