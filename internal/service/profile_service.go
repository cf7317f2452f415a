package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/repository"
)

// ProfileService reads and edits the owner profile.
type ProfileService interface {
	// Mine returns the profile of userID, or nil when none exists.
	Mine(ctx context.Context, userID string) (*model.Profile, error)
	// Owner returns the site owner's profile for the public pages, or nil.
	Owner(ctx context.Context) (*model.Profile, error)
	Update(ctx context.Context, id string, update model.ProfileUpdate) error
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Mine(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Owner(ctx context.Context) (*model.Profile, error) {
	profile, err := s.repo.FindOwner(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find owner profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, id string, update model.ProfileUpdate) error {
	if id == "" {
		return &apperrors.ValidationError{Fields: []string{"id"}}
	}
	if err := s.repo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
