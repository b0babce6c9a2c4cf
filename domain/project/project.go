package project

import (
	"context"
	"taskhub/bizerror"
	"taskhub/domain"
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

	QueryProjectsFunc        = QueryProjects
	DetailProjectFunc        = DetailProject
	QueryProjectTasksFunc    = QueryProjectTasks
	CreateProjectFunc        = CreateProject
	UpdateProjectFunc        = UpdateProject
	DeleteProjectFunc        = DeleteProject
	CountProjectsFunc        = CountProjects
	CountTasksPerProjectFunc = CountTasksPerProject
)

func QueryProjects(ctx context.Context, req hateoas.PageRequest) (*domain.ProjectPage, error) {
	req = req.Normalize()
	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	var total int64
	if err := db.Model(&domain.Project{}).Count(&total).Error; err != nil {
		return nil, err
	}
	var projects []domain.Project
	if err := db.Order(req.OrderBy("name", "id")).Offset(req.Offset()).Limit(req.Size).Find(&projects).Error; err != nil {
		return nil, err
	}
	return domain.NewProjectPage(projects, req, total, domain.PathProjects), nil
}

func DetailProject(ctx context.Context, id types.ID) (*domain.ProjectDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	p, err := FindProject(db, id)
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	if err := db.Where("project_id = ?", id).Order("name ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	detail := domain.NewProjectDetail(p, tasks)
	return &detail, nil
}

func QueryProjectTasks(ctx context.Context, id types.ID, req hateoas.PageRequest) (*domain.TaskPage, error) {
	req = req.Normalize()
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if _, err := FindProject(db, id); err != nil {
		return nil, err
	}

	var total int64
	if err := db.Model(&domain.Task{}).Where("project_id = ?", id).Count(&total).Error; err != nil {
		return nil, err
	}
	var tasks []domain.Task
	if err := db.Where("project_id = ?", id).Order(req.OrderBy("name", "id")).
		Offset(req.Offset()).Limit(req.Size).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return domain.NewTaskPage(tasks, req, total, hateoas.ItemPath(domain.PathProjects, id)+"/tasks"), nil
}

func CreateProject(ctx context.Context, c *domain.ProjectCreation) (*domain.ProjectRepresentation, error) {
	if c == nil {
		return nil, bizerror.ErrRequiredInput
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p := c.BuildProject(idgen.NextID(idWorker), time.Now())
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).Create(p).Error; err != nil {
		return nil, err
	}

	r := domain.NewProjectRepresentation(p)
	event.PublishEvent(event.SourceTypeProject, p.ID, p.Name, event.EventCategoryCreated, nil, nil, withoutLinks(r))
	return &r, nil
}

// UpdateProject resolves the project before validating the payload, an unknown id is always reported as not found.
func UpdateProject(ctx context.Context, id types.ID, u *domain.ProjectUpdating) (*domain.ProjectRepresentation, error) {
	if u == nil {
		return nil, bizerror.ErrRequiredInput
	}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	p, err := FindProject(db, id)
	if err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	old := *p
	u.ApplyTo(p, time.Now())
	if err := db.Save(p).Error; err != nil {
		return nil, err
	}

	r := domain.NewProjectRepresentation(p)
	changes := event.UpdatedProperties{}.
		Track("name", old.Name, p.Name).
		Track("status", string(old.Status), string(p.Status))
	event.PublishEvent(event.SourceTypeProject, p.ID, p.Name, event.EventCategoryPropertyUpdated, changes, nil, withoutLinks(r))
	return &r, nil
}

func DeleteProject(ctx context.Context, id types.ID) error {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	p, err := FindProject(db, id)
	if err != nil {
		return err
	}
	if err := db.Delete(p).Error; err != nil {
		if persistence.IsForeignKeyViolation(err) {
			logrus.Infof("project %s is still referenced: %v", id, err)
			return bizerror.ErrIntegrityConflict.WithMessage("Project " + id.String() + " still has tasks")
		}
		return err
	}

	event.PublishEvent(event.SourceTypeProject, p.ID, p.Name, event.EventCategoryDeleted, nil, nil, nil)
	return nil
}

func CountProjects(ctx context.Context) (int64, error) {
	var count int64
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).Model(&domain.Project{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountTasksPerProject includes projects without any task, the largest counts first.
func CountTasksPerProject(ctx context.Context) ([]domain.ProjectTaskCount, error) {
	counts := []domain.ProjectTaskCount{}
	err := persistence.ActiveDataSourceManager.GormDB(ctx).Table("projects").
		Select("projects.id AS project_id, projects.name AS project_name, COUNT(tasks.id) AS task_count").
		Joins("LEFT JOIN tasks ON tasks.project_id = projects.id").
		Group("projects.id, projects.name").
		Order("task_count DESC, projects.id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func FindProject(db *gorm.DB, id types.ID) (*domain.Project, error) {
	var p domain.Project
	if err := db.Where("id = ?", id).First(&p).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrNotFound.WithMessage("Project not found")
		}
		return nil, err
	}
	return &p, nil
}

func withoutLinks(r domain.ProjectRepresentation) domain.ProjectRepresentation {
	r.Links = nil
	return r
}
