package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libstack/lending-service/internal/model"
)

func (h *Handler) RecordAudit(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	bookUid := c.Param("bookUid")
	if bookUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "bookUid is empty")
	}
	var req model.RecordAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	audit, err := h.lendingSvc.RecordAudit(c.Request().Context(), p, bookUid, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, audit)
}

func (h *Handler) ResolveAudit(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	auditUid := c.Param("auditUid")
	if auditUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "auditUid is empty")
	}
	var req model.ResolveAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	audit, err := h.lendingSvc.ResolveAudit(c.Request().Context(), p, auditUid, req.Notes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, audit)
}
