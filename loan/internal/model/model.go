package model

import (
	"time"
)

const (
	LoanPeriodDays = 7
	MaxRenewals    = 2

	// Open loans within this many days of the due date are flagged DUE_SOON.
	dueSoonWindowDays = 3
)

type LoanStatus string

const (
	StatusActive   LoanStatus = "ACTIVE"
	StatusDueSoon  LoanStatus = "DUE_SOON"
	StatusOverdue  LoanStatus = "OVERDUE"
	StatusReturned LoanStatus = "RETURNED"
)

// User is the local read model of the user directory.
type User struct {
	ID      int    `json:"-" db:"id"`
	UserUid string `json:"userId" db:"user_uid"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Role    string `json:"role" db:"role"`
}

// Book is the local read model of the catalog. CopiesAvailable changes only
// through the availability counter, never through catalog updates directly.
type Book struct {
	ID              int    `json:"id" db:"id"`
	Title           string `json:"title" db:"title"`
	Author          string `json:"author" db:"author"`
	Description     string `json:"description" db:"description"`
	Category        string `json:"category" db:"category"`
	Copies          int    `json:"copies" db:"copies"`
	CopiesAvailable int    `json:"copiesAvailable" db:"copies_available"`
}

type Loan struct {
	ID           int        `json:"id" db:"id"`
	LoanUid      string     `json:"loanUid" db:"loan_uid"`
	UserID       int        `json:"-" db:"user_id"`
	BookID       int        `json:"bookId" db:"book_id"`
	CheckoutDate time.Time  `json:"checkoutDate" db:"checkout_date"`
	DueDate      time.Time  `json:"dueDate" db:"due_date"`
	ReturnedDate *time.Time `json:"returnedDate,omitempty" db:"returned_date"`
	RenewalCount int        `json:"renewalCount" db:"renewal_count"`
}

func (l Loan) Open() bool {
	return l.ReturnedDate == nil
}

// StatusAt derives the loan status relative to now. Status is never stored;
// this is the single place it is computed.
func StatusAt(returnedDate *time.Time, dueDate, now time.Time) LoanStatus {
	if returnedDate != nil {
		return StatusReturned
	}
	left := DaysBetween(now, dueDate)
	switch {
	case left < 0:
		return StatusOverdue
	case left <= dueSoonWindowDays:
		return StatusDueSoon
	default:
		return StatusActive
	}
}

// DaysBetween counts whole calendar days from a to b, negative when b is
// before a. Time-of-day and zone are discarded first.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

type CheckoutRequest struct {
	BookID int `json:"bookId" validate:"required,gt=0"`
}

type AdminLoanRequest struct {
	UserID string `json:"userId" validate:"required"`
	BookID int    `json:"bookId" validate:"required,gt=0"`
}

type CheckedOut struct {
	CheckedOut bool `json:"checkedOut"`
}

type CurrentLoan struct {
	Book     Book `json:"book"`
	DaysLeft int  `json:"daysLeft"`
}

// OpenLoanBook is the repository row backing CurrentLoan.
type OpenLoanBook struct {
	Book    `json:",inline"`
	DueDate time.Time `json:"-" db:"due_date"`
}

type CheckoutCount struct {
	Total int64 `json:"total"`
}

type CheckoutPerUser struct {
	UserUid string `json:"userId" db:"user_uid"`
	Email   string `json:"userEmail" db:"email"`
	Count   int64  `json:"count" db:"cnt"`
}

type LoanStats struct {
	Total   int64             `json:"total"`
	PerUser []CheckoutPerUser `json:"perUser"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

// LoanRow is the repository row backing LoanOverview.
type LoanRow struct {
	ID           int        `db:"id"`
	LoanUid      string     `db:"loan_uid"`
	UserUid      string     `db:"user_uid"`
	UserName     string     `db:"user_name"`
	UserEmail    string     `db:"email"`
	BookID       int        `db:"book_id"`
	BookTitle    string     `db:"title"`
	BookAuthor   string     `db:"author"`
	CheckoutDate time.Time  `db:"checkout_date"`
	DueDate      time.Time  `db:"due_date"`
	ReturnedDate *time.Time `db:"returned_date"`
	RenewalCount int        `db:"renewal_count"`
}

type LoanOverview struct {
	ID            int        `json:"id"`
	LoanUid       string     `json:"loanUid"`
	UserID        string     `json:"userId"`
	UserName      string     `json:"userName"`
	UserEmail     string     `json:"userEmail"`
	BookID        int        `json:"bookId"`
	BookTitle     string     `json:"bookTitle"`
	BookAuthor    string     `json:"bookAuthor"`
	CheckoutDate  time.Time  `json:"checkoutDate"`
	DueDate       time.Time  `json:"dueDate"`
	ReturnedDate  *time.Time `json:"returnedDate,omitempty"`
	RenewalCount  int        `json:"renewalCount"`
	RemainingDays int        `json:"remainingDays"`
	Status        LoanStatus `json:"status"`
}

type LoanOverviewList struct {
	Paging `json:",inline"`
	Items  []LoanOverview `json:"items"`
}
