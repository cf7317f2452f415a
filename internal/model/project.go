package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a portfolio entry shown in the "Selected Works" grid.
type Project struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Category    string    `json:"category" gorm:"size:120;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url" gorm:"size:1024;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// ProjectInput holds the caller-supplied fields of a new project.
type ProjectInput struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"required"`
}

// NewProject builds an unsaved Project from input.
func NewProject(in ProjectInput) *Project {
	return &Project{
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
}

// BeforeCreate sets the ID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
