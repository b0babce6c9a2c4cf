package domain_test

import (
	"encoding/json"
	"strings"
	"taskhub/bizerror"
	"taskhub/domain"
	"testing"
	"time"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func TestValidateName(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should reject blank name as empty", func(t *testing.T) {
		Expect(domain.ValidateName("")).To(Equal(bizerror.ErrEmptyName))
		Expect(domain.ValidateName(" \t ")).To(Equal(bizerror.ErrEmptyName))
	})

	t.Run("should check name size inclusively", func(t *testing.T) {
		Expect(domain.ValidateName("ab")).To(Equal(bizerror.ErrInvalidNameSize))
		Expect(domain.ValidateName("abc")).To(BeNil())
		Expect(domain.ValidateName(strings.Repeat("a", 100))).To(BeNil())
		Expect(domain.ValidateName(strings.Repeat("a", 101))).To(Equal(bizerror.ErrInvalidNameSize))
	})

	t.Run("should count characters instead of bytes", func(t *testing.T) {
		Expect(domain.ValidateName("项目一")).To(BeNil())
		Expect(domain.ValidateName(strings.Repeat("é", 100))).To(BeNil())
	})
}

func TestValidateEmail(t *testing.T) {
	RegisterTestingT(t)

	for _, email := range []string{"jane@example.com", "jane.doe+work@mail.example.org", "a_b%c@x.io"} {
		Expect(domain.ValidateEmail(email)).To(BeNil(), email)
	}
	for _, email := range []string{"invalid-email", "", "jane@example", "jane@example.c", "@example.com", "jane doe@example.com"} {
		Expect(domain.ValidateEmail(email)).To(Equal(bizerror.ErrInvalidEmail), email)
	}
}

func TestProjectMutation(t *testing.T) {
	RegisterTestingT(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should default status when building project", func(t *testing.T) {
		p := (&domain.ProjectCreation{Name: "Website Revamp"}).BuildProject(100, now)
		Expect(*p).To(Equal(domain.Project{ID: 100, Name: "Website Revamp", Status: domain.StatusNotDone,
			CreatedAt: now, UpdatedAt: now}))

		c := domain.ProjectCreation{}
		Expect(json.Unmarshal([]byte(`{"name": "Website Revamp", "status": "DONE"}`), &c)).To(BeNil())
		p = c.BuildProject(100, now)
		Expect(p.Status).To(Equal(domain.StatusNotDone))
	})

	t.Run("should apply only present fields on update", func(t *testing.T) {
		p := domain.Project{ID: 1, Name: "Website Revamp", Status: domain.StatusNotDone, CreatedAt: now, UpdatedAt: now}
		done := domain.StatusDone
		later := now.Add(time.Hour)

		u := domain.ProjectUpdating{Status: &done}
		Expect(u.Validate()).To(BeNil())
		u.ApplyTo(&p, later)
		Expect(p).To(Equal(domain.Project{ID: 1, Name: "Website Revamp", Status: domain.StatusDone, CreatedAt: now, UpdatedAt: later}))

		name := "Website Relaunch"
		u = domain.ProjectUpdating{Name: &name}
		u.ApplyTo(&p, later)
		Expect(p.Name).To(Equal("Website Relaunch"))
		Expect(p.Status).To(Equal(domain.StatusDone))
	})

	t.Run("should validate present name on update", func(t *testing.T) {
		short := "ab"
		Expect((&domain.ProjectUpdating{Name: &short}).Validate()).To(Equal(bizerror.ErrInvalidNameSize))
		blank := "  "
		Expect((&domain.ProjectUpdating{Name: &blank}).Validate()).To(Equal(bizerror.ErrEmptyName))
		Expect((&domain.ProjectUpdating{}).Validate()).To(BeNil())
	})
}

func TestTaskMutation(t *testing.T) {
	RegisterTestingT(t)
	now := time.Now()

	t.Run("should build task with default status", func(t *testing.T) {
		projectID := types.ID(10)
		task := (&domain.TaskCreation{Name: "Design mockups", ProjectID: &projectID}).BuildTask(20, now)
		Expect(*task).To(Equal(domain.Task{ID: 20, Name: "Design mockups", Status: domain.StatusNotDone,
			CreatedAt: now, UpdatedAt: now, ProjectID: 10}))

		c := domain.TaskCreation{}
		Expect(json.Unmarshal([]byte(`{"name": "Design mockups", "status": "DOING", "projectId": "10"}`), &c)).To(BeNil())
		task = c.BuildTask(21, now)
		Expect(task.Status).To(Equal(domain.StatusNotDone))
		Expect(task.ProjectID).To(Equal(types.ID(10)))
	})

	t.Run("should keep name when only status is updated", func(t *testing.T) {
		task := domain.Task{ID: 20, Name: "Design mockups", Status: domain.StatusNotDone, ProjectID: 10, CreatedAt: now, UpdatedAt: now}
		doing := domain.StatusDoing
		u := domain.TaskUpdating{Status: &doing}
		Expect(u.Validate()).To(BeNil())
		later := now.Add(time.Minute)
		u.ApplyTo(&task, later)
		Expect(task).To(Equal(domain.Task{ID: 20, Name: "Design mockups", Status: domain.StatusDoing, ProjectID: 10,
			CreatedAt: now, UpdatedAt: later}))
	})
}

func TestCollaboratorMutation(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should validate creation", func(t *testing.T) {
		designer := domain.FunctionDesigner
		c := domain.CollaboratorCreation{Name: "Jane Doe", Email: "jane@example.com", Function: &designer}
		Expect(c.Validate()).To(BeNil())
		Expect(*c.BuildCollaborator(5)).To(Equal(domain.Collaborator{ID: 5, Name: "Jane Doe", Email: "jane@example.com",
			Function: domain.FunctionDesigner}))

		Expect((&domain.CollaboratorCreation{Name: "", Email: "jane@example.com"}).Validate()).To(Equal(bizerror.ErrEmptyName))
		Expect((&domain.CollaboratorCreation{Name: "Jane Doe", Email: "invalid-email"}).Validate()).To(Equal(bizerror.ErrInvalidEmail))
	})

	t.Run("should validate and apply updating", func(t *testing.T) {
		c := domain.Collaborator{ID: 5, Name: "Jane Doe", Email: "jane@example.com", Function: domain.FunctionDesigner}

		invalid := "invalid-email"
		Expect((&domain.CollaboratorUpdating{Email: &invalid}).Validate()).To(Equal(bizerror.ErrInvalidEmail))

		email := "jane.doe@example.com"
		tester := domain.FunctionTester
		u := domain.CollaboratorUpdating{Email: &email, Function: &tester}
		Expect(u.Validate()).To(BeNil())
		u.ApplyTo(&c)
		Expect(c).To(Equal(domain.Collaborator{ID: 5, Name: "Jane Doe", Email: "jane.doe@example.com", Function: domain.FunctionTester}))
	})
}
