package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elibrary/loan-service/loan/internal/errs"
	"github.com/elibrary/loan-service/loan/internal/model"
)

// fakeRepo is an in-memory repository.Repository honoring the same atomicity
// contract as the SQL implementation: every conditional update runs under one
// lock, so the counter and one-open-loan invariants can be exercised from
// concurrent goroutines.
type fakeRepo struct {
	mu     sync.Mutex
	users  []model.User
	books  map[int]*model.Book
	loans  []*model.Loan
	nextID int

	// renew conflicts to inject before RenewLoan succeeds
	renewConflicts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: map[int]*model.Book{}}
}

func (f *fakeRepo) addUser(u model.User) {
	f.users = append(f.users, u)
}

func (f *fakeRepo) addBook(b model.Book) {
	book := b
	f.books[b.ID] = &book
}

func (f *fakeRepo) setDueDate(userID, bookID int, due time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if loan := f.openLoan(userID, bookID); loan != nil {
		loan.DueDate = due
	}
}

func (f *fakeRepo) openLoan(userID, bookID int) *model.Loan {
	for _, l := range f.loans {
		if l.UserID == userID && l.BookID == bookID && l.ReturnedDate == nil {
			return l
		}
	}
	return nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, errs.ErrUserNotFound
}

func (f *fakeRepo) GetUserByUid(_ context.Context, userUid string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserUid == userUid {
			return u, nil
		}
	}
	return model.User{}, errs.ErrUserNotFound
}

func (f *fakeRepo) GetBook(_ context.Context, bookID int) (model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	book, ok := f.books[bookID]
	if !ok {
		return model.Book{}, errs.ErrBookNotFound
	}
	return *book, nil
}

func (f *fakeRepo) UpsertBook(_ context.Context, b model.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.books[b.ID]
	if !ok {
		book := b
		book.CopiesAvailable = b.Copies
		f.books[b.ID] = &book
		return nil
	}
	available := existing.CopiesAvailable + b.Copies - existing.Copies
	if available < 0 {
		available = 0
	}
	if available > b.Copies {
		available = b.Copies
	}
	b.CopiesAvailable = available
	*existing = b
	return nil
}

func (f *fakeRepo) GetOpenLoan(_ context.Context, userID, bookID int) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if loan := f.openLoan(userID, bookID); loan != nil {
		return *loan, nil
	}
	return model.Loan{}, errs.ErrNoOpenLoan
}

func (f *fakeRepo) CreateLoan(_ context.Context, userID, bookID int, checkoutDate, dueDate time.Time) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	book, ok := f.books[bookID]
	if !ok {
		return model.Loan{}, errs.ErrBookNotFound
	}
	// unique open-loan index fires inside the tx, so the reservation would
	// be rolled back; net effect is checked before the decrement here
	if f.openLoan(userID, bookID) != nil {
		return model.Loan{}, errs.ErrAlreadyCheckedOut
	}
	if book.CopiesAvailable <= 0 {
		return model.Loan{}, errs.ErrNoCopiesAvailable
	}
	book.CopiesAvailable--

	f.nextID++
	loan := &model.Loan{
		ID:           f.nextID,
		LoanUid:      uuid.New().String(),
		UserID:       userID,
		BookID:       bookID,
		CheckoutDate: checkoutDate,
		DueDate:      dueDate,
	}
	f.loans = append(f.loans, loan)
	return *loan, nil
}

func (f *fakeRepo) ReturnLoan(_ context.Context, userID, bookID int, returnedDate time.Time) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	loan := f.openLoan(userID, bookID)
	if loan == nil {
		for _, l := range f.loans {
			if l.UserID == userID && l.BookID == bookID && l.ReturnedDate != nil {
				return model.Loan{}, errs.ErrAlreadyReturned
			}
		}
		return model.Loan{}, errs.ErrNoOpenLoan
	}

	book := f.books[bookID]
	if book.CopiesAvailable+1 > book.Copies {
		return model.Loan{}, errs.ErrOverRelease
	}
	returned := returnedDate
	loan.ReturnedDate = &returned
	book.CopiesAvailable++
	return *loan, nil
}

func (f *fakeRepo) RenewLoan(_ context.Context, loanID int, dueDate time.Time, seenRenewals int) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.renewConflicts > 0 {
		f.renewConflicts--
		return model.Loan{}, errs.ErrConflict
	}
	for _, l := range f.loans {
		if l.ID == loanID && l.ReturnedDate == nil && l.RenewalCount == seenRenewals {
			l.DueDate = dueDate
			l.RenewalCount++
			return *l, nil
		}
	}
	return model.Loan{}, errs.ErrConflict
}

func (f *fakeRepo) CurrentLoans(_ context.Context, userID int) ([]model.OpenLoanBook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.OpenLoanBook
	for _, l := range f.loans {
		if l.UserID == userID && l.ReturnedDate == nil {
			out = append(out, model.OpenLoanBook{Book: *f.books[l.BookID], DueDate: l.DueDate})
		}
	}
	return out, nil
}

func (f *fakeRepo) LoanCount(_ context.Context, userID int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, l := range f.loans {
		if l.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) TotalCheckouts(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.loans)), nil
}

func (f *fakeRepo) CheckoutsPerUser(_ context.Context) ([]model.CheckoutPerUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.CheckoutPerUser, 0, len(f.users))
	for _, u := range f.users {
		var count int64
		for _, l := range f.loans {
			if l.UserID == u.ID {
				count++
			}
		}
		out = append(out, model.CheckoutPerUser{UserUid: u.UserUid, Email: u.Email, Count: count})
	}
	return out, nil
}

func (f *fakeRepo) ListLoans(_ context.Context, page, size int) ([]model.LoanRow, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := make([]model.LoanRow, 0, len(f.loans))
	for _, l := range f.loans {
		user := f.userByID(l.UserID)
		book := f.books[l.BookID]
		rows = append(rows, model.LoanRow{
			ID:           l.ID,
			LoanUid:      l.LoanUid,
			UserUid:      user.UserUid,
			UserName:     user.Name,
			UserEmail:    user.Email,
			BookID:       l.BookID,
			BookTitle:    book.Title,
			BookAuthor:   book.Author,
			CheckoutDate: l.CheckoutDate,
			DueDate:      l.DueDate,
			ReturnedDate: l.ReturnedDate,
			RenewalCount: l.RenewalCount,
		})
	}
	total := len(rows)
	if page != 0 && size != 0 {
		lo := (page - 1) * size
		if lo > len(rows) {
			lo = len(rows)
		}
		hi := lo + size
		if hi > len(rows) {
			hi = len(rows)
		}
		rows = rows[lo:hi]
	}
	return rows, total, nil
}

func (f *fakeRepo) userByID(id int) model.User {
	for _, u := range f.users {
		if u.ID == id {
			return u
		}
	}
	return model.User{Name: fmt.Sprintf("unknown-%d", id)}
}
