package domain

import (
	"regexp"
	"strings"
	"taskhub/bizerror"
	"time"
	"unicode/utf8"

	"github.com/fundwit/go-commons/types"
)

const (
	MinNameLength = 3
	MaxNameLength = 100
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateName rejects blank names with ErrEmptyName and names outside [3,100] characters with ErrInvalidNameSize.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return bizerror.ErrEmptyName
	}
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		return bizerror.ErrInvalidNameSize
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return bizerror.ErrInvalidEmail
	}
	return nil
}

func (c *ProjectCreation) Validate() error {
	return ValidateName(c.Name)
}

func (c *ProjectCreation) BuildProject(id types.ID, now time.Time) *Project {
	return &Project{ID: id, Name: c.Name, Status: StatusNotDone, CreatedAt: now, UpdatedAt: now}
}

func (u *ProjectUpdating) Validate() error {
	if u.Name != nil {
		return ValidateName(*u.Name)
	}
	return nil
}

func (u *ProjectUpdating) ApplyTo(p *Project, now time.Time) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	p.UpdatedAt = now
}

// Validate checks the name only, the project reference is resolved against the store by the caller.
func (c *TaskCreation) Validate() error {
	return ValidateName(c.Name)
}

func (c *TaskCreation) BuildTask(id types.ID, now time.Time) *Task {
	t := &Task{ID: id, Name: c.Name, Status: StatusNotDone, CreatedAt: now, UpdatedAt: now}
	if c.ProjectID != nil {
		t.ProjectID = *c.ProjectID
	}
	return t
}

func (u *TaskUpdating) Validate() error {
	if u.Name != nil {
		return ValidateName(*u.Name)
	}
	return nil
}

func (u *TaskUpdating) ApplyTo(t *Task, now time.Time) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	t.UpdatedAt = now
}

// Validate checks name and email format, email uniqueness needs the store and is left to the caller.
func (c *CollaboratorCreation) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	return ValidateEmail(c.Email)
}

func (c *CollaboratorCreation) BuildCollaborator(id types.ID) *Collaborator {
	r := &Collaborator{ID: id, Name: c.Name, Email: c.Email}
	if c.Function != nil {
		r.Function = *c.Function
	}
	return r
}

func (u *CollaboratorUpdating) Validate() error {
	if u.Name != nil {
		if err := ValidateName(*u.Name); err != nil {
			return err
		}
	}
	if u.Email != nil {
		return ValidateEmail(*u.Email)
	}
	return nil
}

func (u *CollaboratorUpdating) ApplyTo(c *Collaborator) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Function != nil {
		c.Function = *u.Function
	}
}
