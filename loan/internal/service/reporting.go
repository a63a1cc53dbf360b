package service

import (
	"context"

	"github.com/elibrary/loan-service/loan/internal/model"
)

// CurrentLoans lists the user's open loans with signed days left; overdue
// loans go negative, nothing is clamped.
func (s *Service) CurrentLoans(ctx context.Context, email string) ([]model.CurrentLoan, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.CurrentLoans(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	loans := make([]model.CurrentLoan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, model.CurrentLoan{
			Book:     row.Book,
			DaysLeft: model.DaysBetween(today, row.DueDate),
		})
	}
	return loans, nil
}

// TotalCheckouts counts every loan ever created, returned ones included.
func (s *Service) TotalCheckouts(ctx context.Context) (model.CheckoutCount, error) {
	total, err := s.repo.TotalCheckouts(ctx)
	if err != nil {
		return model.CheckoutCount{}, err
	}
	return model.CheckoutCount{Total: total}, nil
}

func (s *Service) CheckoutsPerUser(ctx context.Context) ([]model.CheckoutPerUser, error) {
	return s.repo.CheckoutsPerUser(ctx)
}

// LoanOverview pages through every loan joined with user and book identity.
// remainingDays and status are computed against today at read time.
func (s *Service) LoanOverview(ctx context.Context, page, size int) (model.LoanOverviewList, error) {
	rows, total, err := s.repo.ListLoans(ctx, page, size)
	if err != nil {
		return model.LoanOverviewList{}, err
	}

	today := s.today()
	items := make([]model.LoanOverview, 0, len(rows))
	for _, row := range rows {
		status := model.StatusAt(row.ReturnedDate, row.DueDate, today)
		remaining := model.DaysBetween(today, row.DueDate)
		if status == model.StatusReturned {
			remaining = 0
		}
		items = append(items, model.LoanOverview{
			ID:            row.ID,
			LoanUid:       row.LoanUid,
			UserID:        row.UserUid,
			UserName:      row.UserName,
			UserEmail:     row.UserEmail,
			BookID:        row.BookID,
			BookTitle:     row.BookTitle,
			BookAuthor:    row.BookAuthor,
			CheckoutDate:  row.CheckoutDate,
			DueDate:       row.DueDate,
			ReturnedDate:  row.ReturnedDate,
			RenewalCount:  row.RenewalCount,
			RemainingDays: remaining,
			Status:        status,
		})
	}

	return model.LoanOverviewList{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: total,
		},
		Items: items,
	}, nil
}
