package repository

import (
	"context"

	"gorm.io/gorm"

	"lumina/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	List(ctx context.Context) ([]model.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository builds a GORM-backed repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Order(newestFirst).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Delete removes the project with id; deleting an unknown id is not an error.
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{}).Error
}
