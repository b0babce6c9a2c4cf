package persistence

import (
	"context"
	"fmt"
	"taskhub/domain"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// sqlite cannot add constraints to an existing table, so its schema is declared up front.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id)`,
	`CREATE TABLE IF NOT EXISTS collaborators (
		id INTEGER NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(150) NOT NULL,
		"function" VARCHAR(16) NOT NULL,
		CONSTRAINT uix_collaborators_email UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS task_collaborators (
		task_id BIGINT NOT NULL REFERENCES tasks(id) ON DELETE RESTRICT,
		collaborator_id BIGINT NOT NULL REFERENCES collaborators(id) ON DELETE RESTRICT,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (task_id, collaborator_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_task_collaborators_collaborator_id ON task_collaborators(collaborator_id)`,
}

type foreignKey struct {
	name   string
	table  string
	column string
	refers string
}

var foreignKeys = []foreignKey{
	{name: "fk_tasks_project_id", table: "tasks", column: "project_id", refers: "projects(id)"},
	{name: "fk_task_collaborators_task_id", table: "task_collaborators", column: "task_id", refers: "tasks(id)"},
	{name: "fk_task_collaborators_collaborator_id", table: "task_collaborators", column: "collaborator_id", refers: "collaborators(id)"},
}

// Migrate creates the schema when missing, running it twice is harmless.
func (m *DataSourceManager) Migrate(ctx context.Context) error {
	db := m.GormDB(ctx)
	if db == nil {
		return fmt.Errorf("data source is not started")
	}

	if m.DatabaseConfig.DriverType == DriverSqlite {
		for _, statement := range sqliteSchema {
			if err := db.Exec(statement).Error; err != nil {
				return err
			}
		}
		logrus.Info("sqlite schema migrated")
		return nil
	}

	if err := db.AutoMigrate(&domain.Project{}, &domain.Task{}, &domain.Collaborator{}, &domain.TaskCollaborator{}).Error; err != nil {
		return err
	}
	for _, fk := range foreignKeys {
		if err := addForeignKey(db, m.DatabaseConfig.DriverType, fk); err != nil {
			return err
		}
	}
	logrus.Infof("%s schema migrated", m.DatabaseConfig.DriverType)
	return nil
}

func addForeignKey(db *gorm.DB, driverType string, fk foreignKey) error {
	schema := "DATABASE()"
	if driverType == DriverPostgres {
		schema = "current_schema()"
	}
	var count int
	err := db.Raw("SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_type = 'FOREIGN KEY'"+
		" AND table_schema = "+schema+" AND table_name = ? AND constraint_name = ?", fk.table, fk.name).Row().Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Exec(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s ON DELETE RESTRICT",
		fk.table, fk.name, fk.column, fk.refers)).Error
}
