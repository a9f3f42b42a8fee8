package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/libstack/lending-service/internal/model"
)

func (h *Handler) CreateReservation(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	rsv, err := h.lendingSvc.CreateReservation(c.Request().Context(), p, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rsv)
}

func (h *Handler) ListReservations(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	username := p.Username
	if target := c.QueryParam("username"); target != "" && p.IsStaff() {
		username = target
	}
	items, err := h.lendingSvc.ListReservations(c.Request().Context(), username)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) TransitionReservation(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	reservationUid := c.Param("reservationUid")
	if reservationUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reservationUid is empty")
	}
	var req model.TransitionReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	rsv, err := h.lendingSvc.TransitionReservation(c.Request().Context(), p, reservationUid, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rsv)
}
