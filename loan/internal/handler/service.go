package handler

import (
	"context"

	"github.com/elibrary/loan-service/loan/internal/model"
	"github.com/elibrary/loan-service/loan/internal/service"
	"github.com/elibrary/loan-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go -package=mocks

type LoanService interface {
	Checkout(ctx context.Context, email string, bookID int) (model.Loan, error)
	Return(ctx context.Context, email string, bookID int) (model.Loan, error)
	Renew(ctx context.Context, email string, bookID int) (model.Loan, error)
	AdminReturn(ctx context.Context, userUid string, bookID int) (model.Loan, error)
	AdminRenew(ctx context.Context, userUid string, bookID int) (model.Loan, error)
	IsCheckedOut(ctx context.Context, email string, bookID int) (bool, error)
	LoanCount(ctx context.Context, email string) (int64, error)

	CurrentLoans(ctx context.Context, email string) ([]model.CurrentLoan, error)
	TotalCheckouts(ctx context.Context) (model.CheckoutCount, error)
	CheckoutsPerUser(ctx context.Context) ([]model.CheckoutPerUser, error)
	LoanOverview(ctx context.Context, page, size int) (model.LoanOverviewList, error)

	ApplyCatalogUpdate(ctx context.Context, event kafka.CatalogEvent) error
}

var _ LoanService = (*service.Service)(nil)
