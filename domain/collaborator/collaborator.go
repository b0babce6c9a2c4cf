package collaborator

import (
	"context"
	"taskhub/bizerror"
	"taskhub/domain"
	"taskhub/event"
	"taskhub/hateoas"
	"taskhub/idgen"
	"taskhub/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

var (
	idWorker = idgen.NewWorker()

	QueryCollaboratorsFunc        = QueryCollaborators
	DetailCollaboratorFunc        = DetailCollaborator
	CreateCollaboratorFunc        = CreateCollaborator
	UpdateCollaboratorFunc        = UpdateCollaborator
	DeleteCollaboratorFunc        = DeleteCollaborator
	CountCollaboratorsFunc        = CountCollaborators
	CountTasksPerCollaboratorFunc = CountTasksPerCollaborator
)

func QueryCollaborators(ctx context.Context, req hateoas.PageRequest) (*domain.CollaboratorPage, error) {
	req = req.Normalize()
	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	var total int64
	if err := db.Model(&domain.Collaborator{}).Count(&total).Error; err != nil {
		return nil, err
	}
	var collaborators []domain.Collaborator
	if err := db.Order(req.OrderBy("name", "id")).Offset(req.Offset()).Limit(req.Size).Find(&collaborators).Error; err != nil {
		return nil, err
	}
	return domain.NewCollaboratorPage(collaborators, req, total, domain.PathCollaborators), nil
}

func DetailCollaborator(ctx context.Context, id types.ID) (*domain.CollaboratorRepresentation, error) {
	c, err := FindCollaborator(persistence.ActiveDataSourceManager.GormDB(ctx), id)
	if err != nil {
		return nil, err
	}
	r := domain.NewCollaboratorRepresentation(c)
	return &r, nil
}

func CreateCollaborator(ctx context.Context, c *domain.CollaboratorCreation) (*domain.CollaboratorRepresentation, error) {
	if c == nil {
		return nil, bizerror.ErrRequiredInput
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := checkEmailAvailable(db, c.Email, 0); err != nil {
		return nil, err
	}

	record := c.BuildCollaborator(idgen.NextID(idWorker))
	if err := db.Create(record).Error; err != nil {
		if persistence.IsUniqueViolation(err) {
			return nil, duplicateEmail(record.Email)
		}
		return nil, err
	}

	r := domain.NewCollaboratorRepresentation(record)
	event.PublishEvent(event.SourceTypeCollaborator, record.ID, record.Name, event.EventCategoryCreated, nil, nil, withoutLinks(r))
	return &r, nil
}

func UpdateCollaborator(ctx context.Context, id types.ID, u *domain.CollaboratorUpdating) (*domain.CollaboratorRepresentation, error) {
	if u == nil {
		return nil, bizerror.ErrRequiredInput
	}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	record, err := FindCollaborator(db, id)
	if err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if u.Email != nil && *u.Email != record.Email {
		if err := checkEmailAvailable(db, *u.Email, id); err != nil {
			return nil, err
		}
	}

	old := *record
	u.ApplyTo(record)
	if err := db.Save(record).Error; err != nil {
		if persistence.IsUniqueViolation(err) {
			return nil, duplicateEmail(record.Email)
		}
		return nil, err
	}

	r := domain.NewCollaboratorRepresentation(record)
	changes := event.UpdatedProperties{}.
		Track("name", old.Name, record.Name).
		Track("email", old.Email, record.Email).
		Track("function", string(old.Function), string(record.Function))
	event.PublishEvent(event.SourceTypeCollaborator, record.ID, record.Name, event.EventCategoryPropertyUpdated, changes, nil, withoutLinks(r))
	return &r, nil
}

func DeleteCollaborator(ctx context.Context, id types.ID) error {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	record, err := FindCollaborator(db, id)
	if err != nil {
		return err
	}
	if err := db.Delete(record).Error; err != nil {
		if persistence.IsForeignKeyViolation(err) {
			logrus.Infof("collaborator %s is still referenced: %v", id, err)
			return bizerror.ErrIntegrityConflict.WithMessage("Collaborator " + id.String() + " is still assigned to tasks")
		}
		return err
	}

	event.PublishEvent(event.SourceTypeCollaborator, record.ID, record.Name, event.EventCategoryDeleted, nil, nil, nil)
	return nil
}

func CountCollaborators(ctx context.Context) (int64, error) {
	var count int64
	if err := persistence.ActiveDataSourceManager.GormDB(ctx).Model(&domain.Collaborator{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountTasksPerCollaborator includes collaborators without any task, the largest counts first.
func CountTasksPerCollaborator(ctx context.Context) ([]domain.CollaboratorTaskCount, error) {
	counts := []domain.CollaboratorTaskCount{}
	err := persistence.ActiveDataSourceManager.GormDB(ctx).Table("collaborators").
		Select("collaborators.id AS collaborator_id, collaborators.name AS collaborator_name, " +
			"COUNT(task_collaborators.task_id) AS task_count").
		Joins("LEFT JOIN task_collaborators ON task_collaborators.collaborator_id = collaborators.id").
		Group("collaborators.id, collaborators.name").
		Order("task_count DESC, collaborators.id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// EmailExists checks email uniqueness without loading any collaborator, excludeID skips the collaborator itself.
func EmailExists(db *gorm.DB, email string, excludeID types.ID) (bool, error) {
	var count int64
	q := db.Model(&domain.Collaborator{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func checkEmailAvailable(db *gorm.DB, email string, excludeID types.ID) error {
	exists, err := EmailExists(db, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return duplicateEmail(email)
	}
	return nil
}

func duplicateEmail(email string) error {
	return bizerror.ErrDuplicateEmail.WithMessage("The email " + email + " is already in use.")
}

func FindCollaborator(db *gorm.DB, id types.ID) (*domain.Collaborator, error) {
	var c domain.Collaborator
	if err := db.Where("id = ?", id).First(&c).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrNotFound.WithMessage("Collaborator not found")
		}
		return nil, err
	}
	return &c, nil
}

func withoutLinks(r domain.CollaboratorRepresentation) domain.CollaboratorRepresentation {
	r.Links = nil
	return r
}
