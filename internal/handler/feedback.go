package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookhive/library-service/internal/errs"
	"github.com/bookhive/library-service/internal/model"
)

func (h *Handler) CreateComplaint(c echo.Context) error {
	var req model.ComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	complaint, err := h.feedbackSvc.CreateComplaint(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, complaint)
}

func (h *Handler) ListComplaints(c echo.Context) error {
	complaints, err := h.feedbackSvc.ListComplaints(c.Request().Context(), c.QueryParam("memberId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, complaints)
}

func (h *Handler) AdvanceComplaint(c echo.Context) error {
	var req model.ComplaintStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	complaint, err := h.feedbackSvc.AdvanceComplaint(c.Request().Context(), c.Param("complaintId"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrIllegalTransition):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, complaint)
}

func (h *Handler) CreateDonation(c echo.Context) error {
	var req model.DonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	donation, err := h.feedbackSvc.CreateDonation(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, donation)
}

func (h *Handler) ListDonations(c echo.Context) error {
	donations, err := h.feedbackSvc.ListDonations(c.Request().Context(), c.QueryParam("memberId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, donations)
}

func (h *Handler) ResolveDonation(c echo.Context) error {
	var req model.DonationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	donation, err := h.feedbackSvc.ResolveDonation(c.Request().Context(), c.Param("donationId"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrIllegalTransition):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, donation)
}
