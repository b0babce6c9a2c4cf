package domain

import (
	"time"

	"github.com/fundwit/go-commons/types"
)

const (
	PathProjects      = "/v1/projects"
	PathTasks         = "/v1/tasks"
	PathCollaborators = "/v1/collaborators"
)

type Project struct {
	ID types.ID `json:"id" gorm:"primary_key;auto_increment:false"`

	Name   string `json:"name" gorm:"size:100;not null"`
	Status Status `json:"status" gorm:"size:16;not null"`

	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func (Project) TableName() string {
	return "projects"
}

type Task struct {
	ID types.ID `json:"id" gorm:"primary_key;auto_increment:false"`

	Name   string `json:"name" gorm:"size:100;not null"`
	Status Status `json:"status" gorm:"size:16;not null"`

	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`

	ProjectID types.ID `json:"projectId" gorm:"not null;index:idx_tasks_project_id"`
}

func (Task) TableName() string {
	return "tasks"
}

type Collaborator struct {
	ID types.ID `json:"id" gorm:"primary_key;auto_increment:false"`

	Name     string   `json:"name" gorm:"size:100;not null"`
	Email    string   `json:"email" gorm:"size:150;not null;unique_index:uix_collaborators_email"`
	Function Function `json:"function" gorm:"size:16;not null"`
}

func (Collaborator) TableName() string {
	return "collaborators"
}

// TaskCollaborator is a row of the join relation between tasks and collaborators.
type TaskCollaborator struct {
	TaskID         types.ID `json:"taskId" gorm:"primary_key;auto_increment:false"`
	CollaboratorID types.ID `json:"collaboratorId" gorm:"primary_key;auto_increment:false;index:idx_task_collaborators_collaborator_id"`

	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (TaskCollaborator) TableName() string {
	return "task_collaborators"
}
