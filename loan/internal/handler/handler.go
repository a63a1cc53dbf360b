package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/elibrary/loan-service/loan/internal/errs"
	"github.com/elibrary/loan-service/loan/internal/model"
	"github.com/elibrary/loan-service/pkg/auth"
	"github.com/elibrary/loan-service/pkg/kafka"
	md "github.com/elibrary/loan-service/pkg/middleware"
	"github.com/elibrary/loan-service/pkg/validate"
	_ "github.com/elibrary/loan-service/swagger"
)

type Handler struct {
	loanSvc  LoanService
	enqueuer Enqueuer
	log      *zap.Logger
}

func New(loanSvc LoanService, producer sarama.SyncProducer, log *zap.Logger) *Handler {
	return &Handler{
		loanSvc:  loanSvc,
		enqueuer: NewEnqueuer(producer),
		log:      log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.AuthContext,
	)
	api.POST("/loans", h.Checkout)
	api.GET("/loans", h.GetCurrentLoans)
	api.GET("/loans/count", h.GetLoanCount)
	api.GET("/loans/:bookId/checked-out", h.IsCheckedOut)
	api.POST("/loans/:bookId/return", h.Return)
	api.POST("/loans/:bookId/renew", h.Renew)

	admin := api.Group("/admin", md.AdminOnly)
	admin.GET("/loans", h.GetLoanOverview)
	admin.GET("/loans/count", h.GetTotalCheckouts)
	admin.GET("/loans/stats", h.GetLoanStats)
	admin.POST("/loans/renew", h.AdminRenew)
	admin.POST("/loans/return", h.AdminReturn)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Checkout godoc
// @Summary  Check out a book for the calling user
// @Tags     loans
// @Accept   json
// @Produce  json
// @Param    request body model.CheckoutRequest true "book to check out"
// @Success  200 {object} model.Loan
// @Router   /loans [post]
func (h *Handler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	var req model.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	email, err := auth.GetUserName(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	loan, err := h.loanSvc.Checkout(ctx, email, req.BookID)
	if err != nil {
		return httpError(err)
	}
	h.enqueueLoanEvent(email, loan, kafka.EventCheckout)

	return c.JSON(http.StatusOK, loan)
}

// Return godoc
// @Summary  Return a checked-out book
// @Tags     loans
// @Produce  json
// @Param    bookId path int true "book id"
// @Success  200 {object} model.Loan
// @Router   /loans/{bookId}/return [post]
func (h *Handler) Return(c echo.Context) error {
	ctx := c.Request().Context()
	email, err := auth.GetUserName(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	loan, err := h.loanSvc.Return(ctx, email, bookID)
	if err != nil {
		return httpError(err)
	}
	h.enqueueLoanEvent(email, loan, kafka.EventReturn)

	return c.JSON(http.StatusOK, loan)
}

// Renew godoc
// @Summary  Extend the due date of an open loan
// @Tags     loans
// @Produce  json
// @Param    bookId path int true "book id"
// @Success  200 {object} model.Loan
// @Router   /loans/{bookId}/renew [post]
func (h *Handler) Renew(c echo.Context) error {
	ctx := c.Request().Context()
	email, err := auth.GetUserName(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	loan, err := h.loanSvc.Renew(ctx, email, bookID)
	if err != nil {
		return httpError(err)
	}
	h.enqueueLoanEvent(email, loan, kafka.EventRenew)

	return c.JSON(http.StatusOK, loan)
}

// IsCheckedOut godoc
// @Summary  Whether the calling user holds an open loan for the book
// @Tags     loans
// @Produce  json
// @Param    bookId path int true "book id"
// @Success  200 {object} model.CheckedOut
// @Router   /loans/{bookId}/checked-out [get]
func (h *Handler) IsCheckedOut(c echo.Context) error {
	ctx := c.Request().Context()
	email, err := auth.GetUserName(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	checkedOut, err := h.loanSvc.IsCheckedOut(ctx, email, bookID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.CheckedOut{CheckedOut: checkedOut})
}

func (h *Handler) enqueueLoanEvent(userName string, loan model.Loan, eventType kafka.EventType) {
	event := kafka.LoanEvent{
		Timestamp: time.Now().UTC(),
		UserName:  userName,
		LoanUid:   loan.LoanUid,
		BookID:    loan.BookID,
		EventType: eventType,
	}
	if err := h.enqueuer.Enqueue(kafka.LoanTopic, event); err != nil {
		h.log.Error("enqueue loan event", zap.Error(err), zap.String("loanUid", loan.LoanUid))
	}
}

func bookIDParam(c echo.Context) (int, error) {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil || bookID <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid bookId")
	}
	return bookID, nil
}

// httpError maps the business error taxonomy onto HTTP statuses; the mapping
// lives only here.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrUserNotFound),
		errors.Is(err, errs.ErrBookNotFound),
		errors.Is(err, errs.ErrNoOpenLoan),
		errors.Is(err, errs.ErrNoCopiesAvailable):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrAlreadyCheckedOut):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrAlreadyReturned),
		errors.Is(err, errs.ErrLoanOverdue),
		errors.Is(err, errs.ErrMaxRenewals):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
