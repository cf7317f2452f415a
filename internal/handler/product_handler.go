package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/service"
)

// ProductHandler handles digital product endpoints.
type ProductHandler struct {
	products service.ProductService
}

func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List godoc
// @Summary List products, newest first
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

// Create godoc
// @Summary Create a product
// @Description Price is a decimal; it defaults to 0 and must not be negative.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ProductInput true "Product"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req model.ProductInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
	}

	product, err := h.products.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, product)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
