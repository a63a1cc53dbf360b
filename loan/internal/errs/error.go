package errs

import (
	"errors"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrBookNotFound      = errors.New("book not found")
	ErrNoOpenLoan        = errors.New("book is not currently checked out under this account")
	ErrAlreadyCheckedOut = errors.New("book already checked out by this user")
	ErrNoCopiesAvailable = errors.New("no copies available for checkout")
	ErrAlreadyReturned   = errors.New("book has already been returned")
	ErrLoanOverdue       = errors.New("loan is overdue and cannot be renewed")
	ErrMaxRenewals       = errors.New("maximum number of renewals reached for this loan")

	// ErrOverRelease means a release would push available copies past the
	// total. The counter stays untouched; the caller reports a defect.
	ErrOverRelease = errors.New("release would exceed total copies")

	// ErrConflict means a conditional update lost a race and may be retried.
	ErrConflict = errors.New("loan modified concurrently")
)
