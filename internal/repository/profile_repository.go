package repository

import (
	"context"

	"gorm.io/gorm"

	"lumina/internal/model"
)

// ProfileRepository defines profile persistence operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	// FindOwner returns the earliest profile, i.e. the site owner's.
	FindOwner(ctx context.Context) (*model.Profile, error)
	Update(ctx context.Context, id string, update model.ProfileUpdate) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (r *profileRepository) FindOwner(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

// Update writes the set fields of update. An update that sets nothing is a no-op.
func (r *profileRepository) Update(ctx context.Context, id string, update model.ProfileUpdate) error {
	cols := update.Columns()
	if len(cols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Updates(cols).Error
}
