package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lumina/internal/config"
)

// ModeResponse reports which backend serves requests.
type ModeResponse struct {
	Mode string `json:"mode"`
}

// Mode godoc
// @Summary Backend mode
// @Description "mock" when data lives in memory, "live" otherwise.
// @Tags system
// @Produce json
// @Success 200 {object} ModeResponse
// @Router /mode [get]
func Mode(mode config.BackendMode) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, ModeResponse{Mode: string(mode)})
	}
}
