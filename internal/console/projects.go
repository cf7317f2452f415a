package console

import (
	"strings"

	"lumina/internal/model"
	"lumina/internal/service"
	"lumina/internal/storage"
)

// ProjectForm holds the values of the new project form.
type ProjectForm struct {
	Title       string
	Category    string
	Description string
	ImageURL    string
}

// ProjectsManager is the Projects tab.
type ProjectsManager struct {
	*crudManager[model.Project, ProjectForm, model.ProjectInput]
}

func NewProjectsManager(projects service.ProjectService, uploads service.UploadService) *ProjectsManager {
	return &ProjectsManager{newCRUDManager[model.Project, ProjectForm, model.ProjectInput](projects, uploads, storage.BucketProjects, formSpec[model.Project, ProjectForm, model.ProjectInput]{
		noun:        "project",
		createLabel: "Project",
		id:          func(p model.Project) string { return p.ID },
		imageURL:    func(f ProjectForm) string { return f.ImageURL },
		setImageURL: func(f *ProjectForm, url string) { f.ImageURL = url },
		input: func(f ProjectForm) (model.ProjectInput, error) {
			return model.ProjectInput{
				Title:       strings.TrimSpace(f.Title),
				Category:    strings.TrimSpace(f.Category),
				Description: strings.TrimSpace(f.Description),
				ImageURL:    f.ImageURL,
			}, nil
		},
	})}
}
