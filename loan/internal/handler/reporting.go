package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/elibrary/loan-service/loan/internal/model"
	"github.com/elibrary/loan-service/pkg/auth"
	"github.com/elibrary/loan-service/pkg/kafka"
)

// GetCurrentLoans godoc
// @Summary  Open loans of the calling user with days left
// @Tags     loans
// @Produce  json
// @Success  200 {array} model.CurrentLoan
// @Router   /loans [get]
func (h *Handler) GetCurrentLoans(c echo.Context) error {
	ctx := c.Request().Context()
	email, err := auth.GetUserName(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	loans, err := h.loanSvc.CurrentLoans(ctx, email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// GetLoanCount godoc
// @Summary  Historical loan count of the calling user
// @Tags     loans
// @Produce  json
// @Success  200 {object} model.CheckoutCount
// @Router   /loans/count [get]
func (h *Handler) GetLoanCount(c echo.Context) error {
	ctx := c.Request().Context()
	email, err := auth.GetUserName(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	count, err := h.loanSvc.LoanCount(ctx, email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.CheckoutCount{Total: count})
}

// GetLoanOverview godoc
// @Summary  Paginated loan ledger with derived status
// @Tags     admin
// @Produce  json
// @Param    page query int false "page"
// @Param    size query int false "size"
// @Success  200 {object} model.LoanOverviewList
// @Router   /admin/loans [get]
func (h *Handler) GetLoanOverview(c echo.Context) error {
	ctx := c.Request().Context()
	page, _ := strconv.Atoi(c.QueryParam("page")) //nolint:errcheck
	size, _ := strconv.Atoi(c.QueryParam("size")) //nolint:errcheck
	if page < 0 || size < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid paging")
	}

	list, err := h.loanSvc.LoanOverview(ctx, page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

// GetTotalCheckouts godoc
// @Summary  Total number of loans ever created
// @Tags     admin
// @Produce  json
// @Success  200 {object} model.CheckoutCount
// @Router   /admin/loans/count [get]
func (h *Handler) GetTotalCheckouts(c echo.Context) error {
	count, err := h.loanSvc.TotalCheckouts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, count)
}

// GetLoanStats godoc
// @Summary  Total and per-user checkout counts
// @Tags     admin
// @Produce  json
// @Success  200 {object} model.LoanStats
// @Router   /admin/loans/stats [get]
func (h *Handler) GetLoanStats(c echo.Context) error {
	var stats model.LoanStats

	gg, ctx := errgroup.WithContext(c.Request().Context())
	gg.Go(func() error {
		total, err := h.loanSvc.TotalCheckouts(ctx)
		if err != nil {
			return err
		}
		stats.Total = total.Total
		return nil
	})
	gg.Go(func() error {
		perUser, err := h.loanSvc.CheckoutsPerUser(ctx)
		if err != nil {
			return err
		}
		stats.PerUser = perUser
		return nil
	})
	if err := gg.Wait(); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, stats)
}

// AdminRenew godoc
// @Summary  Renew a loan on behalf of a user
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    request body model.AdminLoanRequest true "user and book"
// @Success  200 {object} model.Loan
// @Router   /admin/loans/renew [post]
func (h *Handler) AdminRenew(c echo.Context) error {
	ctx := c.Request().Context()
	var req model.AdminLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	loan, err := h.loanSvc.AdminRenew(ctx, req.UserID, req.BookID)
	if err != nil {
		return httpError(err)
	}
	h.enqueueLoanEvent(req.UserID, loan, kafka.EventRenew)

	return c.JSON(http.StatusOK, loan)
}

// AdminReturn godoc
// @Summary  Return a loan on behalf of a user
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    request body model.AdminLoanRequest true "user and book"
// @Success  200 {object} model.Loan
// @Router   /admin/loans/return [post]
func (h *Handler) AdminReturn(c echo.Context) error {
	ctx := c.Request().Context()
	var req model.AdminLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	loan, err := h.loanSvc.AdminReturn(ctx, req.UserID, req.BookID)
	if err != nil {
		return httpError(err)
	}
	h.enqueueLoanEvent(req.UserID, loan, kafka.EventReturn)

	return c.JSON(http.StatusOK, loan)
}
