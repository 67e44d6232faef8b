package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
)

func (h *Handler) Borrow(c echo.Context) error {
	var req model.BorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	records, err := h.borrowSvc.Borrow(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotEligible):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, errs.ErrInsufficientCopies):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, records)
}

func (h *Handler) Return(c echo.Context) error {
	recordID := c.Param("recordId")
	rec, err := h.borrowSvc.Return(c.Request().Context(), recordID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) History(c echo.Context) error {
	memberID := c.Param("memberId")
	history, err := h.borrowSvc.History(c.Request().Context(), memberID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, history)
}

func (h *Handler) Eligibility(c echo.Context) error {
	memberID := c.Param("memberId")
	requested := 0
	if param := c.QueryParam("requested"); param != "" {
		var err error
		if requested, err = strconv.Atoi(param); err != nil || requested < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, errors.New("requested is invalid"))
		}
	}

	eligibility, err := h.borrowSvc.CheckEligibility(c.Request().Context(), memberID, requested)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, eligibility)
}

// GetFines derives pending fines for the member before listing them, so
// a freshly overdue loan shows up without a separate refresh step.
func (h *Handler) GetFines(c echo.Context) error {
	memberID := c.Param("memberId")
	fines, err := h.fineSvc.GeneratePendingFines(c.Request().Context(), memberID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, fines)
}
