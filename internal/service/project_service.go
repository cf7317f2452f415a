package service

import (
	"context"
	"fmt"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/repository"
)

// ProjectService manages portfolio projects.
type ProjectService interface {
	List(ctx context.Context) ([]model.Project, error)
	Create(ctx context.Context, in model.ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) Create(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	if err := apperrors.Required([]string{"title", "category", "image_url"}, map[string]string{
		"title":     in.Title,
		"category":  in.Category,
		"image_url": in.ImageURL,
	}); err != nil {
		return nil, err
	}
	project := model.NewProject(in)
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
