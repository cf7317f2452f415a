package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "lumina/internal/errors"
	"lumina/internal/metrics"
	"lumina/internal/service"
	"lumina/internal/storage"
)

// StorageHandler accepts image uploads.
type StorageHandler struct {
	uploads  service.UploadService
	maxBytes int64
}

func NewStorageHandler(uploads service.UploadService, maxBytes int64) *StorageHandler {
	return &StorageHandler{uploads: uploads, maxBytes: maxBytes}
}

// UploadResponse carries the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload godoc
// @Summary Upload an image
// @Tags storage
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param bucket path string true "Bucket" Enums(projects, products, avatars)
// @Param file formData file true "Image"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 415 {object} errors.ErrorResponse
// @Router /storage/{bucket} [post]
func (h *StorageHandler) Upload(c echo.Context) error {
	bucket := c.Param("bucket")
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Error: "file is required", Code: "INVALID_REQUEST"})
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	url, err := h.uploads.Upload(c.Request().Context(), bucket, storage.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if !errors.Is(err, apperrors.ErrUnknownBucket) {
		metrics.RecordUpload(bucket, err == nil)
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
