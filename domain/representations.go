package domain

import (
	"taskhub/hateoas"
	"time"

	"github.com/fundwit/go-commons/types"
)

type ProjectRepresentation struct {
	ID        types.ID  `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Links []hateoas.Link `json:"links,omitempty"`
}

type ProjectDetail struct {
	ProjectRepresentation
	Tasks []TaskRepresentation `json:"tasks"`
}

type TaskRepresentation struct {
	ID        types.ID  `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ProjectID types.ID  `json:"projectId"`

	Links []hateoas.Link `json:"links,omitempty"`
}

type CollaboratorRepresentation struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Function Function `json:"function,omitempty"`

	Links []hateoas.Link `json:"links,omitempty"`
}

type ProjectPage struct {
	Content []ProjectRepresentation `json:"content"`
	Page    hateoas.PageMetadata    `json:"page"`
	Links   []hateoas.Link          `json:"links"`
}

type TaskPage struct {
	Content []TaskRepresentation `json:"content"`
	Page    hateoas.PageMetadata `json:"page"`
	Links   []hateoas.Link       `json:"links"`
}

type CollaboratorPage struct {
	Content []CollaboratorRepresentation `json:"content"`
	Page    hateoas.PageMetadata         `json:"page"`
	Links   []hateoas.Link               `json:"links"`
}

func NewProjectRepresentation(p *Project) ProjectRepresentation {
	return ProjectRepresentation{ID: p.ID, Name: p.Name, Status: p.Status, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		Links: hateoas.ResourceLinks(PathProjects, p.ID)}
}

// NewProjectDetail nests the tasks of the project, each of them carrying its self link only.
func NewProjectDetail(p *Project, tasks []Task) ProjectDetail {
	detail := ProjectDetail{ProjectRepresentation: NewProjectRepresentation(p), Tasks: make([]TaskRepresentation, 0, len(tasks))}
	for i := range tasks {
		r := NewTaskRepresentation(&tasks[i])
		r.Links = []hateoas.Link{hateoas.SelfLink(PathTasks, tasks[i].ID)}
		detail.Tasks = append(detail.Tasks, r)
	}
	return detail
}

func NewTaskRepresentation(t *Task) TaskRepresentation {
	return TaskRepresentation{ID: t.ID, Name: t.Name, Status: t.Status, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
		ProjectID: t.ProjectID, Links: hateoas.ResourceLinks(PathTasks, t.ID)}
}

func NewCollaboratorRepresentation(c *Collaborator) CollaboratorRepresentation {
	return CollaboratorRepresentation{ID: c.ID, Name: c.Name, Email: c.Email, Function: c.Function,
		Links: hateoas.ResourceLinks(PathCollaborators, c.ID)}
}

func NewProjectPage(projects []Project, req hateoas.PageRequest, total int64, collectionPath string) *ProjectPage {
	meta := hateoas.NewPageMetadata(req, total)
	page := &ProjectPage{Content: make([]ProjectRepresentation, 0, len(projects)), Page: meta,
		Links: hateoas.PageLinks(collectionPath, req, meta)}
	for i := range projects {
		page.Content = append(page.Content, NewProjectRepresentation(&projects[i]))
	}
	return page
}

func NewTaskPage(tasks []Task, req hateoas.PageRequest, total int64, collectionPath string) *TaskPage {
	meta := hateoas.NewPageMetadata(req, total)
	page := &TaskPage{Content: make([]TaskRepresentation, 0, len(tasks)), Page: meta,
		Links: hateoas.PageLinks(collectionPath, req, meta)}
	for i := range tasks {
		page.Content = append(page.Content, NewTaskRepresentation(&tasks[i]))
	}
	return page
}

func NewCollaboratorPage(collaborators []Collaborator, req hateoas.PageRequest, total int64, collectionPath string) *CollaboratorPage {
	meta := hateoas.NewPageMetadata(req, total)
	page := &CollaboratorPage{Content: make([]CollaboratorRepresentation, 0, len(collaborators)), Page: meta,
		Links: hateoas.PageLinks(collectionPath, req, meta)}
	for i := range collaborators {
		page.Content = append(page.Content, NewCollaboratorRepresentation(&collaborators[i]))
	}
	return page
}
