package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/service"
)

// ProfileHandler handles the owner profile.
type ProfileHandler struct {
	profiles service.ProfileService
}

func NewProfileHandler(profiles service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get godoc
// @Summary Profile of the signed-in user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return httpError(err)
	}
	profile, err := h.profiles.Mine(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	if profile == nil {
		return httpError(apperrors.ErrNotFound)
	}
	return c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary Update profile fields
// @Description Only the fields present in the body change. An unknown id changes nothing.
// @Tags profile
// @Accept json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param request body model.ProfileUpdate true "Fields to change"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile/{id} [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req model.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
	}
	if err := h.profiles.Update(c.Request().Context(), c.Param("id"), req); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
