package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libstack/lending-service/internal/errs"
	md "github.com/libstack/lending-service/pkg/middleware"
	"github.com/libstack/lending-service/pkg/validate"
)

type Handler struct {
	lendingSvc LendingService
	log        *zap.Logger
}

func New(lendingSvc LendingService, log *zap.Logger) *Handler {
	return &Handler{
		lendingSvc: lendingSvc,
		log:        log,
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

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.AuthContext,
	)

	api.GET("/books", h.ListBooks)
	api.GET("/books/:bookUid", h.GetBook)

	api.POST("/loans", h.IssueLoan)
	api.GET("/loans", h.ListLoans)
	api.POST("/loans/:loanUid/renew", h.RenewLoan)

	api.POST("/reservations", h.CreateReservation)
	api.GET("/reservations", h.ListReservations)
	api.PATCH("/reservations/:reservationUid", h.TransitionReservation)

	api.GET("/fines", h.ListFines)

	staff := api.Group("", md.StaffOnly)
	staff.POST("/books", h.CreateBook)
	staff.PATCH("/books/:bookUid/status", h.AdjustBookStatus)
	staff.POST("/loans/:loanUid/return", h.ReturnLoan)
	staff.POST("/fines", h.CreateFine)
	staff.PATCH("/fines/:fineUid", h.ResolveFine)
	staff.POST("/books/:bookUid/audits", h.RecordAudit)
	staff.POST("/audits/:auditUid/resolve", h.ResolveAudit)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError translates the error taxonomy to transport codes. Rule
// violations read as 4xx with the violation spelled out; anything
// unclassified is an infrastructure fault.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrDuplicateLoan),
		errors.Is(err, errs.ErrDuplicateReservation):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrBookUnavailable),
		errors.Is(err, errs.ErrBorrowLimit),
		errors.Is(err, errs.ErrOutstandingFines),
		errors.Is(err, errs.ErrOverdueLoans),
		errors.Is(err, errs.ErrAccountNotActive),
		errors.Is(err, errs.ErrBookAvailable),
		errors.Is(err, errs.ErrBelowActiveLoans),
		errors.Is(err, errs.ErrLoanConflict),
		errors.Is(err, errs.ErrReservationConflict),
		errors.Is(err, errs.ErrCopiesExceedTotal),
		errors.Is(err, errs.ErrLoanNotActive),
		errors.Is(err, errs.ErrMaxRenewals),
		errors.Is(err, errs.ErrLoanOverdue),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrReservationExpired),
		errors.Is(err, errs.ErrAlreadyResolved),
		errors.Is(err, errs.ErrFineResolved),
		errors.Is(err, errs.ErrInvalidAction):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
