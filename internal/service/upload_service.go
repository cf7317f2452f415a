package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	apperrors "lumina/internal/errors"
	"lumina/internal/storage"
)

// UploadService checks uploads before handing them to the storage backend.
type UploadService interface {
	Upload(ctx context.Context, bucket string, file storage.File) (string, error)
}

type uploadService struct {
	uploader storage.Uploader
	maxBytes int64
}

func NewUploadService(uploader storage.Uploader, maxBytes int64) UploadService {
	return &uploadService{uploader: uploader, maxBytes: maxBytes}
}

func (s *uploadService) Upload(ctx context.Context, bucket string, file storage.File) (string, error) {
	if !storage.ValidBucket(bucket) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownBucket, bucket)
	}
	if len(file.Data) == 0 {
		return "", &apperrors.ValidationError{Fields: []string{"file"}}
	}
	if int64(len(file.Data)) > s.maxBytes {
		return "", apperrors.ErrUploadTooLarge
	}
	// trust the bytes, not the client supplied header
	detected := mimetype.Detect(file.Data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", fmt.Errorf("%w: %s", apperrors.ErrNotImage, detected.String())
	}
	file.ContentType = detected.String()
	if file.Name == "" {
		file.Name = fmt.Sprintf("upload-%d%s", time.Now().Unix(), detected.Extension())
	}

	url, err := s.uploader.Upload(ctx, bucket, file)
	if err != nil {
		return "", fmt.Errorf("upload to %s: %w", bucket, err)
	}
	return url, nil
}
