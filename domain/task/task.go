package task

import (
	"context"
	"fmt"
	"taskhub/bizerror"
	"taskhub/domain"
	"taskhub/domain/collaborator"
	"taskhub/domain/project"
	"taskhub/event"
	"taskhub/hateoas"
	"taskhub/idgen"
	"taskhub/persistence"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

var (
	idWorker = idgen.NewWorker()

	QueryTasksFunc                = QueryTasks
	DetailTaskFunc                = DetailTask
	CreateTaskFunc                = CreateTask
	UpdateTaskFunc                = UpdateTask
	DeleteTaskFunc                = DeleteTask
	CountCollaboratorsPerTaskFunc = CountCollaboratorsPerTask
	AssignCollaboratorFunc        = AssignCollaborator
	UnassignCollaboratorFunc      = UnassignCollaborator
)

func QueryTasks(ctx context.Context, req hateoas.PageRequest) (*domain.TaskPage, error) {
	req = req.Normalize()
	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	var total int64
	if err := db.Model(&domain.Task{}).Count(&total).Error; err != nil {
		return nil, err
	}
	var tasks []domain.Task
	if err := db.Order(req.OrderBy("name", "id")).Offset(req.Offset()).Limit(req.Size).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return domain.NewTaskPage(tasks, req, total, domain.PathTasks), nil
}

func DetailTask(ctx context.Context, id types.ID) (*domain.TaskRepresentation, error) {
	t, err := FindTask(persistence.ActiveDataSourceManager.GormDB(ctx), id)
	if err != nil {
		return nil, err
	}
	r := domain.NewTaskRepresentation(t)
	return &r, nil
}

// CreateTask resolves the project reference before looking at the name.
func CreateTask(ctx context.Context, c *domain.TaskCreation) (*domain.TaskRepresentation, error) {
	if c == nil {
		return nil, bizerror.ErrRequiredInput
	}
	if c.ProjectID == nil || *c.ProjectID == 0 {
		return nil, bizerror.ErrMissingForeignKey.WithMessage("Project id is required")
	}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if _, err := project.FindProject(db, *c.ProjectID); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	t := c.BuildTask(idgen.NextID(idWorker), time.Now())
	if err := db.Create(t).Error; err != nil {
		if persistence.IsForeignKeyViolation(err) {
			return nil, bizerror.ErrNotFound.WithMessage("Project not found")
		}
		return nil, err
	}

	r := domain.NewTaskRepresentation(t)
	event.PublishEvent(event.SourceTypeTask, t.ID, t.Name, event.EventCategoryCreated, nil, nil, withoutLinks(r))
	return &r, nil
}

func UpdateTask(ctx context.Context, id types.ID, u *domain.TaskUpdating) (*domain.TaskRepresentation, error) {
	if u == nil {
		return nil, bizerror.ErrRequiredInput
	}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	t, err := FindTask(db, id)
	if err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	old := *t
	u.ApplyTo(t, time.Now())
	if err := db.Save(t).Error; err != nil {
		return nil, err
	}

	r := domain.NewTaskRepresentation(t)
	changes := event.UpdatedProperties{}.
		Track("name", old.Name, t.Name).
		Track("status", string(old.Status), string(t.Status))
	event.PublishEvent(event.SourceTypeTask, t.ID, t.Name, event.EventCategoryPropertyUpdated, changes, nil, withoutLinks(r))
	return &r, nil
}

func DeleteTask(ctx context.Context, id types.ID) error {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	t, err := FindTask(db, id)
	if err != nil {
		return err
	}
	if err := db.Delete(t).Error; err != nil {
		if persistence.IsForeignKeyViolation(err) {
			logrus.Infof("task %s is still referenced: %v", id, err)
			return bizerror.ErrIntegrityConflict.WithMessage("Task " + id.String() + " still has collaborators assigned")
		}
		return err
	}

	event.PublishEvent(event.SourceTypeTask, t.ID, t.Name, event.EventCategoryDeleted, nil, nil, nil)
	return nil
}

// CountCollaboratorsPerTask counts the collaborators of every task in the project, the largest counts first.
func CountCollaboratorsPerTask(ctx context.Context, projectID types.ID) ([]domain.TaskCollaboratorCount, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if _, err := project.FindProject(db, projectID); err != nil {
		return nil, err
	}

	counts := []domain.TaskCollaboratorCount{}
	err := db.Table("tasks").
		Select("tasks.id AS task_id, tasks.name AS task_name, COUNT(task_collaborators.collaborator_id) AS collaborator_count").
		Joins("LEFT JOIN task_collaborators ON task_collaborators.task_id = tasks.id").
		Where("tasks.project_id = ?", projectID).
		Group("tasks.id, tasks.name").
		Order("collaborator_count DESC, tasks.id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func AssignCollaborator(ctx context.Context, a *domain.TaskAssignment) (string, error) {
	if a == nil {
		return "", bizerror.ErrRequiredInput
	}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	t, err := FindTask(db, a.TaskID)
	if err != nil {
		return "", err
	}
	c, err := collaborator.FindCollaborator(db, a.CollaboratorID)
	if err != nil {
		return "", err
	}

	var existing int64
	if err := db.Model(&domain.TaskCollaborator{}).Where("task_id = ? AND collaborator_id = ?", t.ID, c.ID).
		Count(&existing).Error; err != nil {
		return "", err
	}
	duplicated := bizerror.ErrDuplicateAssignment.WithMessage(
		fmt.Sprintf("Collaborator %s is already assigned to task %s", c.Name, t.Name))
	if existing > 0 {
		return "", duplicated
	}

	if err := db.Create(&domain.TaskCollaborator{TaskID: t.ID, CollaboratorID: c.ID, CreatedAt: time.Now()}).Error; err != nil {
		if persistence.IsUniqueViolation(err) {
			return "", duplicated
		}
		if persistence.IsForeignKeyViolation(err) {
			return "", bizerror.ErrNotFound.WithMessage("Task or collaborator not found")
		}
		return "", err
	}

	event.PublishEvent(event.SourceTypeTask, t.ID, t.Name, event.EventCategoryRelationUpdated, nil,
		event.UpdatedRelations{{PropertyName: "collaborators", TargetType: event.SourceTypeCollaborator, NewTargetId: c.ID.String()}}, nil)
	return fmt.Sprintf("Collaborator: %s assigned to Task: %s", c.Name, t.Name), nil
}

func UnassignCollaborator(ctx context.Context, a *domain.TaskAssignment) error {
	if a == nil {
		return bizerror.ErrRequiredInput
	}
	db := persistence.ActiveDataSourceManager.GormDB(ctx).
		Where("task_id = ? AND collaborator_id = ?", a.TaskID, a.CollaboratorID).Delete(&domain.TaskCollaborator{})
	if db.Error != nil {
		return db.Error
	}
	if db.RowsAffected == 0 {
		return bizerror.ErrNotFound.WithMessage("Assignment not found")
	}

	event.PublishEvent(event.SourceTypeTask, a.TaskID, "", event.EventCategoryRelationUpdated, nil,
		event.UpdatedRelations{{PropertyName: "collaborators", TargetType: event.SourceTypeCollaborator, OldTargetId: a.CollaboratorID.String()}}, nil)
	return nil
}

func FindTask(db *gorm.DB, id types.ID) (*domain.Task, error) {
	var t domain.Task
	if err := db.Where("id = ?", id).First(&t).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrNotFound.WithMessage("Task not found")
		}
		return nil, err
	}
	return &t, nil
}

func withoutLinks(r domain.TaskRepresentation) domain.TaskRepresentation {
	r.Links = nil
	return r
}
