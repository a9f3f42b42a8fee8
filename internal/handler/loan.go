package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libstack/lending-service/internal/model"
)

func (h *Handler) IssueLoan(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	var req model.IssueLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	loan, err := h.lendingSvc.IssueLoan(c.Request().Context(), p, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	loanUid := c.Param("loanUid")
	if loanUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid is empty")
	}
	var req model.ReturnLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	resp, err := h.lendingSvc.ReturnLoan(c.Request().Context(), loanUid, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) RenewLoan(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	loanUid := c.Param("loanUid")
	if loanUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid is empty")
	}
	resp, err := h.lendingSvc.RenewLoan(c.Request().Context(), p, loanUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListLoans reports the caller's loans. Staff may inspect another
// user's loans with ?username=.
func (h *Handler) ListLoans(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	username := p.Username
	if target := c.QueryParam("username"); target != "" && p.IsStaff() {
		username = target
	}
	loans, err := h.lendingSvc.ListLoans(c.Request().Context(), username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}
