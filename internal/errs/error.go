package errs

import (
	"errors"
)

// Sentinels are grouped by recoverable kind; handlers map them to HTTP
// codes with errors.Is, services attach context with errors.Wrapf.
// Anything not wrapping one of these is an infrastructure fault.
var (
	ErrNotFound = errors.New("not found")

	// policy violations
	ErrBookUnavailable  = errors.New("no available copies")
	ErrBorrowLimit      = errors.New("borrowing limit reached")
	ErrOutstandingFines = errors.New("outstanding pending fines")
	ErrOverdueLoans     = errors.New("borrower has overdue loans")
	ErrAccountNotActive = errors.New("account is not active")
	ErrBookAvailable    = errors.New("book has available copies, borrow it instead")
	ErrBelowActiveLoans = errors.New("actual count is below active loan count")
	ErrLoanConflict     = errors.New("copies on loan exceed requested count")
	ErrReservationConflict = errors.New("pending reservations depend on remaining copies")
	ErrCopiesExceedTotal   = errors.New("available copies cannot exceed total")

	// invalid state transitions
	ErrLoanNotActive      = errors.New("loan is not active")
	ErrMaxRenewals        = errors.New("maximum renewals reached")
	ErrLoanOverdue        = errors.New("loan is overdue")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrReservationExpired = errors.New("reservation has expired")
	ErrAlreadyResolved    = errors.New("audit already resolved")
	ErrFineResolved       = errors.New("fine is not pending")
	ErrInvalidAction      = errors.New("invalid book status action")

	// authorization
	ErrForbidden = errors.New("operation not permitted for this role")

	// conflicts
	ErrDuplicateLoan        = errors.New("active loan for this book already exists")
	ErrDuplicateReservation = errors.New("pending reservation for this book already exists")
)
