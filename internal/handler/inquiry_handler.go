package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "lumina/internal/errors"
	"lumina/internal/metrics"
	"lumina/internal/model"
	"lumina/internal/service"
)

// InquiryHandler handles contact inquiries.
type InquiryHandler struct {
	inquiries service.InquiryService
}

func NewInquiryHandler(inquiries service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

// Create godoc
// @Summary Send a contact inquiry
// @Tags inquiries
// @Accept json
// @Produce json
// @Param request body model.InquiryInput true "Inquiry"
// @Success 201 {object} model.Inquiry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /inquiries [post]
func (h *InquiryHandler) Create(c echo.Context) error {
	var req model.InquiryInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
	}
	if req.ServiceType == "" {
		req.ServiceType = model.DefaultServiceType
	}

	inquiry, err := h.inquiries.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			metrics.RecordInquiry("invalid")
		} else {
			metrics.RecordInquiry("failed")
		}
		return httpError(err)
	}
	metrics.RecordInquiry("sent")
	return c.JSON(http.StatusCreated, inquiry)
}

// List godoc
// @Summary List inquiries, newest first
// @Tags inquiries
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Inquiry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /inquiries [get]
func (h *InquiryHandler) List(c echo.Context) error {
	inquiries, err := h.inquiries.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, inquiries)
}
