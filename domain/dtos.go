package domain

import "github.com/fundwit/go-commons/types"

// Absent or null fields of the *Updating payloads keep the stored value.
// The *Creation payloads carry no status: new projects and tasks always start NOT_DONE.

type ProjectCreation struct {
	Name string `json:"name"`
}

type ProjectUpdating struct {
	Name   *string `json:"name"`
	Status *Status `json:"status"`
}

type TaskCreation struct {
	Name      string    `json:"name"`
	ProjectID *types.ID `json:"projectId"`
}

type TaskUpdating struct {
	Name   *string `json:"name"`
	Status *Status `json:"status"`
}

type CollaboratorCreation struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Function *Function `json:"function"`
}

type CollaboratorUpdating struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Function *Function `json:"function"`
}

type TaskAssignment struct {
	TaskID         types.ID `json:"taskId" form:"taskId" binding:"required"`
	CollaboratorID types.ID `json:"collaboratorId" form:"collaboratorId" binding:"required"`
}

type ProjectTaskCount struct {
	ProjectID   types.ID `json:"projectId"`
	ProjectName string   `json:"projectName"`
	TaskCount   int64    `json:"taskCount"`
}

type CollaboratorTaskCount struct {
	CollaboratorID   types.ID `json:"collaboratorId"`
	CollaboratorName string   `json:"collaboratorName"`
	TaskCount        int64    `json:"taskCount"`
}

type TaskCollaboratorCount struct {
	TaskID            types.ID `json:"taskId"`
	TaskName          string   `json:"taskName"`
	CollaboratorCount int64    `json:"collaboratorCount"`
}
