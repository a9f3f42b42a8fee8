package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/libstack/lending-service/internal/model"
	"github.com/libstack/lending-service/pkg/auth"
)

func identity(c echo.Context) (auth.Profile, error) {
	p, err := auth.Identity(c.Request().Context())
	if err != nil {
		return auth.Profile{}, echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return p, nil
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	book, err := h.lendingSvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) GetBook(c echo.Context) error {
	bookUid := c.Param("bookUid")
	book, err := h.lendingSvc.GetBook(c.Request().Context(), bookUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) ListBooks(c echo.Context) error {
	var (
		err  error
		page int
		size int
	)
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err = strconv.Atoi(pageParam); err != nil || page < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if size, err = strconv.Atoi(sizeParam); err != nil || size < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "size is invalid")
		}
	}
	books, err := h.lendingSvc.ListBooks(c.Request().Context(), page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) AdjustBookStatus(c echo.Context) error {
	p, err := identity(c)
	if err != nil {
		return err
	}
	bookUid := c.Param("bookUid")
	var req model.AdjustBookStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	book, err := h.lendingSvc.AdjustBookStatus(c.Request().Context(), p, bookUid, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}
