package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/elibrary/loan-service/loan/internal/errs"
	"github.com/elibrary/loan-service/loan/internal/model"
	"github.com/elibrary/loan-service/loan/internal/repository"
	"github.com/elibrary/loan-service/pkg/kafka"
)

// renewRetries bounds the optimistic retry loop for concurrent renewals.
const renewRetries = 3

type Service struct {
	log  *zap.Logger
	repo repository.Repository
	now  func() time.Time
}

func NewService(repo repository.Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Checkout lends one copy of the book to the user. The availability check and
// the record insert happen atomically in the repository; running out of
// copies or losing the duplicate race never leaves partial state behind.
func (s *Service) Checkout(ctx context.Context, email string, bookID int) (model.Loan, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return model.Loan{}, err
	}
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return model.Loan{}, err
	}

	if _, err := s.repo.GetOpenLoan(ctx, user.ID, book.ID); err == nil {
		return model.Loan{}, errs.ErrAlreadyCheckedOut
	} else if !errors.Is(err, errs.ErrNoOpenLoan) {
		return model.Loan{}, err
	}

	checkoutDate := s.today()
	loan, err := s.repo.CreateLoan(ctx, user.ID, book.ID, checkoutDate, checkoutDate.AddDate(0, 0, model.LoanPeriodDays))
	if err != nil {
		return model.Loan{}, err
	}

	s.log.Info("checkout",
		zap.String("loanUid", loan.LoanUid),
		zap.String("user", user.UserUid),
		zap.Int("bookID", book.ID))
	return loan, nil
}

// Return closes the user's open loan and releases the copy.
func (s *Service) Return(ctx context.Context, email string, bookID int) (model.Loan, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return model.Loan{}, err
	}
	return s.returnLoan(ctx, user, bookID)
}

// Renew extends the open loan by the full loan period from today. Renewal
// never touches the availability counter.
func (s *Service) Renew(ctx context.Context, email string, bookID int) (model.Loan, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return model.Loan{}, err
	}
	return s.renew(ctx, user, bookID)
}

// AdminReturn is Return keyed by the directory user id instead of the
// caller's own identity. Same rules, same errors.
func (s *Service) AdminReturn(ctx context.Context, userUid string, bookID int) (model.Loan, error) {
	user, err := s.repo.GetUserByUid(ctx, userUid)
	if err != nil {
		return model.Loan{}, err
	}
	return s.returnLoan(ctx, user, bookID)
}

// AdminRenew is Renew keyed by the directory user id.
func (s *Service) AdminRenew(ctx context.Context, userUid string, bookID int) (model.Loan, error) {
	user, err := s.repo.GetUserByUid(ctx, userUid)
	if err != nil {
		return model.Loan{}, err
	}
	return s.renew(ctx, user, bookID)
}

func (s *Service) IsCheckedOut(ctx context.Context, email string, bookID int) (bool, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if _, err := s.repo.GetOpenLoan(ctx, user.ID, bookID); err != nil {
		if errors.Is(err, errs.ErrNoOpenLoan) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) LoanCount(ctx context.Context, email string) (int64, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return s.repo.LoanCount(ctx, user.ID)
}

func (s *Service) returnLoan(ctx context.Context, user model.User, bookID int) (model.Loan, error) {
	loan, err := s.repo.ReturnLoan(ctx, user.ID, bookID, s.today())
	if err != nil {
		return model.Loan{}, err
	}
	s.log.Info("return",
		zap.String("loanUid", loan.LoanUid),
		zap.String("user", user.UserUid),
		zap.Int("bookID", bookID))
	return loan, nil
}

func (s *Service) renew(ctx context.Context, user model.User, bookID int) (model.Loan, error) {
	today := s.today()
	for i := 0; i < renewRetries; i++ {
		loan, err := s.repo.GetOpenLoan(ctx, user.ID, bookID)
		if err != nil {
			return model.Loan{}, err
		}
		if loan.RenewalCount >= model.MaxRenewals {
			return model.Loan{}, errs.ErrMaxRenewals
		}
		// due today still renews; only a passed due date blocks
		if loan.DueDate.Before(today) {
			return model.Loan{}, errs.ErrLoanOverdue
		}

		renewed, err := s.repo.RenewLoan(ctx, loan.ID, today.AddDate(0, 0, model.LoanPeriodDays), loan.RenewalCount)
		if err == nil {
			return renewed, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return model.Loan{}, err
		}
	}
	return model.Loan{}, errs.ErrConflict
}

// ApplyCatalogUpdate is fed by the catalog-events consumer and keeps the
// local book read model in sync with the catalog service.
func (s *Service) ApplyCatalogUpdate(ctx context.Context, event kafka.CatalogEvent) error {
	if event.BookID <= 0 || event.Copies < 0 {
		s.log.Warn("skip malformed catalog event", zap.Any("event", event))
		return nil
	}
	return s.repo.UpsertBook(ctx, model.Book{
		ID:          event.BookID,
		Title:       event.Title,
		Author:      event.Author,
		Description: event.Description,
		Category:    event.Category,
		Copies:      event.Copies,
	})
}
