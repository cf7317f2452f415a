package repository

import (
	"errors"

	"gorm.io/gorm"

	apperrors "lumina/internal/errors"
)

const newestFirst = "created_at DESC"

// notFound translates GORM's missing-row error into the domain sentinel.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
