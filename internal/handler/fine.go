package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libstack/lending-service/internal/model"
)

func (h *Handler) CreateFine(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	var req model.CreateFineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	fine, err := h.lendingSvc.CreateFine(c.Request().Context(), p, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, fine)
}

func (h *Handler) ResolveFine(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	fineUid := c.Param("fineUid")
	if fineUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "fineUid is empty")
	}
	var req model.ResolveFineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	fine, err := h.lendingSvc.ResolveFine(c.Request().Context(), p, fineUid, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, fine)
}

func (h *Handler) ListFines(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	username := p.Username
	if target := c.QueryParam("username"); target != "" && p.IsStaff() {
		username = target
	}
	fines, err := h.lendingSvc.ListFines(c.Request().Context(), username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, fines)
}
