package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elibrary/loan-service/loan/internal/errs"
	"github.com/elibrary/loan-service/loan/internal/model"
	"github.com/elibrary/loan-service/pkg/kafka"
)

var fixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func seedTwoUsersOneCopy(repo *fakeRepo) {
	repo.addUser(model.User{ID: 1, UserUid: "uid-alice", Name: "Alice", Email: "alice@example.com"})
	repo.addUser(model.User{ID: 2, UserUid: "uid-bob", Name: "Bob", Email: "bob@example.com"})
	repo.addBook(model.Book{ID: 10, Title: "The Go Programming Language", Author: "Donovan", Copies: 1, CopiesAvailable: 1})
}

func TestCheckoutReturnRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	seedTwoUsersOneCopy(repo)
	svc := newTestService(repo)

	loan, err := svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.NotEmpty(t, loan.LoanUid)
	require.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), loan.CheckoutDate)
	require.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), loan.DueDate)
	require.Zero(t, loan.RenewalCount)

	// last copy is gone
	_, err = svc.Checkout(ctx, "bob@example.com", 10)
	require.ErrorIs(t, err, errs.ErrNoCopiesAvailable)

	// same user, same book
	_, err = svc.Checkout(ctx, "alice@example.com", 10)
	require.ErrorIs(t, err, errs.ErrAlreadyCheckedOut)

	// bob never checked it out
	_, err = svc.Return(ctx, "bob@example.com", 10)
	require.ErrorIs(t, err, errs.ErrNoOpenLoan)

	returned, err := svc.Return(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedDate)

	_, err = svc.Return(ctx, "alice@example.com", 10)
	require.ErrorIs(t, err, errs.ErrAlreadyReturned)

	// the copy is back on the shelf
	book, err := repo.GetBook(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, book.CopiesAvailable)

	_, err = svc.Checkout(ctx, "bob@example.com", 10)
	require.NoError(t, err)
}

func TestCheckoutUnknownUserAndBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	seedTwoUsersOneCopy(repo)
	svc := newTestService(repo)

	_, err := svc.Checkout(ctx, "nobody@example.com", 10)
	require.ErrorIs(t, err, errs.ErrUserNotFound)

	_, err = svc.Checkout(ctx, "alice@example.com", 999)
	require.ErrorIs(t, err, errs.ErrBookNotFound)
}

func TestCheckoutConcurrentLastCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addBook(model.Book{ID: 10, Title: "Clean Architecture", Author: "Martin", Copies: 1, CopiesAvailable: 1})
	for i := 0; i < 10; i++ {
		repo.addUser(model.User{
			ID:      i + 1,
			UserUid: string(rune('a' + i)),
			Email:   string(rune('a'+i)) + "@example.com",
		})
	}
	svc := newTestService(repo)

	var wg sync.WaitGroup
	results := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Checkout(ctx, string(rune('a'+i))+"@example.com", 10)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range results {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, errs.ErrNoCopiesAvailable)
		}
	}
	require.Equal(t, 1, ok)

	book, err := repo.GetBook(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 0, book.CopiesAvailable)
}

func TestCheckoutConcurrentSameUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser(model.User{ID: 1, UserUid: "uid-alice", Email: "alice@example.com"})
	repo.addBook(model.Book{ID: 10, Title: "SICP", Author: "Abelson", Copies: 5, CopiesAvailable: 5})
	svc := newTestService(repo)

	var wg sync.WaitGroup
	results := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Checkout(ctx, "alice@example.com", 10)
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range results {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, errs.ErrAlreadyCheckedOut)
		}
	}
	require.Equal(t, 1, ok)

	// exactly one copy reserved despite the race
	book, err := repo.GetBook(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 4, book.CopiesAvailable)
}

func TestRenewLimits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	seedTwoUsersOneCopy(repo)
	svc := newTestService(repo)

	_, err := svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)

	first, err := svc.Renew(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.Equal(t, 1, first.RenewalCount)
	require.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), first.DueDate)

	second, err := svc.Renew(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.Equal(t, 2, second.RenewalCount)

	_, err = svc.Renew(ctx, "alice@example.com", 10)
	require.ErrorIs(t, err, errs.ErrMaxRenewals)

	// availability never moved across renewals
	book, err := repo.GetBook(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 0, book.CopiesAvailable)
}

func TestRenewOverdue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	seedTwoUsersOneCopy(repo)
	svc := newTestService(repo)

	_, err := svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)

	repo.setDueDate(1, 10, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))
	_, err = svc.Renew(ctx, "alice@example.com", 10)
	require.ErrorIs(t, err, errs.ErrLoanOverdue)

	// due today is still renewable
	repo.setDueDate(1, 10, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	renewed, err := svc.Renew(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), renewed.DueDate)
}

func TestRenewWithoutOpenLoan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	seedTwoUsersOneCopy(repo)
	svc := newTestService(repo)

	_, err := svc.Renew(ctx, "alice@example.com", 10)
	require.ErrorIs(t, err, errs.ErrNoOpenLoan)
}

func TestRenewConflictRetry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	seedTwoUsersOneCopy(repo)
	svc := newTestService(repo)

	_, err := svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)

	repo.renewConflicts = 1
	renewed, err := svc.Renew(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.Equal(t, 1, renewed.RenewalCount)

	repo.renewConflicts = renewRetries
	_, err = svc.Renew(ctx, "alice@example.com", 10)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestAdminReturnAndRenew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	seedTwoUsersOneCopy(repo)
	svc := newTestService(repo)

	_, err := svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)

	_, err = svc.AdminRenew(ctx, "uid-missing", 10)
	require.ErrorIs(t, err, errs.ErrUserNotFound)

	renewed, err := svc.AdminRenew(ctx, "uid-alice", 10)
	require.NoError(t, err)
	require.Equal(t, 1, renewed.RenewalCount)

	// overdue rule applies to admins too
	repo.setDueDate(1, 10, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	_, err = svc.AdminRenew(ctx, "uid-alice", 10)
	require.ErrorIs(t, err, errs.ErrLoanOverdue)

	returned, err := svc.AdminReturn(ctx, "uid-alice", 10)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnedDate)

	_, err = svc.AdminReturn(ctx, "uid-alice", 10)
	require.ErrorIs(t, err, errs.ErrAlreadyReturned)
}

func TestIsCheckedOutAndLoanCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	seedTwoUsersOneCopy(repo)
	svc := newTestService(repo)

	held, err := svc.IsCheckedOut(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.False(t, held)

	_, err = svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)

	held, err = svc.IsCheckedOut(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.True(t, held)

	_, err = svc.Return(ctx, "alice@example.com", 10)
	require.NoError(t, err)

	held, err = svc.IsCheckedOut(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	require.False(t, held)

	// history keeps the returned loan
	count, err := svc.LoanCount(ctx, "alice@example.com")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestCurrentLoansDaysLeft(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser(model.User{ID: 1, UserUid: "uid-alice", Email: "alice@example.com"})
	repo.addBook(model.Book{ID: 10, Title: "On Time", Copies: 2, CopiesAvailable: 2})
	repo.addBook(model.Book{ID: 11, Title: "Late", Copies: 2, CopiesAvailable: 2})
	svc := newTestService(repo)

	_, err := svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, "alice@example.com", 11)
	require.NoError(t, err)
	repo.setDueDate(1, 11, time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC))

	loans, err := svc.CurrentLoans(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, loans, 2)

	byID := map[int]model.CurrentLoan{}
	for _, l := range loans {
		byID[l.Book.ID] = l
	}
	require.Equal(t, 7, byID[10].DaysLeft)
	// overdue goes negative, not clamped
	require.Equal(t, -2, byID[11].DaysLeft)
}

func TestLoanStatsAcrossUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser(model.User{ID: 1, UserUid: "uid-alice", Email: "alice@example.com"})
	repo.addUser(model.User{ID: 2, UserUid: "uid-bob", Email: "bob@example.com"})
	repo.addBook(model.Book{ID: 10, Copies: 3, CopiesAvailable: 3})
	svc := newTestService(repo)

	_, err := svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	_, err = svc.Return(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)

	// returned loans still count toward totals
	total, err := svc.TotalCheckouts(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, total.Total)

	perUser, err := svc.CheckoutsPerUser(ctx)
	require.NoError(t, err)
	require.Len(t, perUser, 2)

	byUid := map[string]model.CheckoutPerUser{}
	for _, p := range perUser {
		byUid[p.UserUid] = p
	}
	require.EqualValues(t, 2, byUid["uid-alice"].Count)
	// users with no checkouts appear with a zero count
	require.EqualValues(t, 0, byUid["uid-bob"].Count)
}

func TestLoanOverviewStatuses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser(model.User{ID: 1, UserUid: "uid-alice", Name: "Alice", Email: "alice@example.com"})
	repo.addBook(model.Book{ID: 10, Title: "A", Copies: 3, CopiesAvailable: 3})
	repo.addBook(model.Book{ID: 11, Title: "B", Copies: 3, CopiesAvailable: 3})
	repo.addBook(model.Book{ID: 12, Title: "C", Copies: 3, CopiesAvailable: 3})
	svc := newTestService(repo)

	_, err := svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)
	repo.setDueDate(1, 10, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC))

	_, err = svc.Checkout(ctx, "alice@example.com", 11)
	require.NoError(t, err)
	repo.setDueDate(1, 11, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))

	_, err = svc.Checkout(ctx, "alice@example.com", 12)
	require.NoError(t, err)
	repo.setDueDate(1, 12, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	_, err = svc.Return(ctx, "alice@example.com", 12)
	require.NoError(t, err)

	list, err := svc.LoanOverview(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	require.Equal(t, 3, list.TotalElements)

	byBook := map[int]model.LoanOverview{}
	for _, item := range list.Items {
		byBook[item.BookID] = item
	}

	require.Equal(t, model.StatusOverdue, byBook[10].Status)
	require.Equal(t, -1, byBook[10].RemainingDays)

	require.Equal(t, model.StatusDueSoon, byBook[11].Status)
	require.Equal(t, 2, byBook[11].RemainingDays)

	// returned forces remaining days to zero regardless of the due date
	require.Equal(t, model.StatusReturned, byBook[12].Status)
	require.Equal(t, 0, byBook[12].RemainingDays)
	require.NotNil(t, byBook[12].ReturnedDate)
	require.Equal(t, "uid-alice", byBook[12].UserID)
	require.Equal(t, "Alice", byBook[12].UserName)
}

func TestLoanOverviewPaging(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser(model.User{ID: 1, UserUid: "uid-alice", Email: "alice@example.com"})
	for i := 0; i < 5; i++ {
		repo.addBook(model.Book{ID: 10 + i, Copies: 1, CopiesAvailable: 1})
	}
	svc := newTestService(repo)

	for i := 0; i < 5; i++ {
		_, err := svc.Checkout(ctx, "alice@example.com", 10+i)
		require.NoError(t, err)
	}

	list, err := svc.LoanOverview(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	require.Equal(t, 5, list.TotalElements)
	require.Equal(t, 2, list.Page)
	require.Equal(t, 2, list.PageSize)
}

func TestApplyCatalogUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser(model.User{ID: 1, UserUid: "uid-alice", Email: "alice@example.com"})
	svc := newTestService(repo)

	require.NoError(t, svc.ApplyCatalogUpdate(ctx, kafka.CatalogEvent{
		BookID: 10, Title: "New Arrival", Author: "Author", Copies: 2,
	}))

	book, err := repo.GetBook(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 2, book.CopiesAvailable)

	_, err = svc.Checkout(ctx, "alice@example.com", 10)
	require.NoError(t, err)

	// shrinking the catalog below the open-loan count clamps availability at zero
	require.NoError(t, svc.ApplyCatalogUpdate(ctx, kafka.CatalogEvent{
		BookID: 10, Title: "New Arrival", Author: "Author", Copies: 1,
	}))
	book, err = repo.GetBook(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 1, book.Copies)
	require.Equal(t, 0, book.CopiesAvailable)

	// malformed events are skipped, not failed
	require.NoError(t, svc.ApplyCatalogUpdate(ctx, kafka.CatalogEvent{BookID: 0, Copies: 1}))
	_, err = repo.GetBook(ctx, 0)
	require.ErrorIs(t, err, errs.ErrBookNotFound)
}
