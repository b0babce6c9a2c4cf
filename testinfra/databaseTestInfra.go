package testinfra

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"taskhub/persistence"

	"github.com/google/uuid"
)

type TestDatabase struct {
	TestDatabaseName string
	DS               *persistence.DataSourceManager

	file string
}

// StartTestDatabase creates an isolated, migrated database: a temporary sqlite file by default,
// a mysql database when TEST_DB_DRIVER=mysql (server from TEST_MYSQL_SERVICE=root:root@(127.0.0.1:3306)).
func StartTestDatabase(baseName string) *TestDatabase {
	databaseName := baseName + "_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	var testDatabase *TestDatabase
	if os.Getenv("TEST_DB_DRIVER") == persistence.DriverMysql {
		testDatabase = prepareMysqlTestDatabase(databaseName)
	} else {
		file := filepath.Join(os.TempDir(), databaseName+".db")
		testDatabase = &TestDatabase{TestDatabaseName: databaseName, file: file, DS: &persistence.DataSourceManager{
			DatabaseConfig: &persistence.DatabaseConfig{
				DriverType: persistence.DriverSqlite,
				DriverArgs: "file:" + file + "?_foreign_keys=on&_busy_timeout=5000&_loc=auto",
			},
		}}
	}

	ds := testDatabase.DS
	if err := ds.Start(); err != nil {
		defer ds.Stop()
		log.Fatalf("database conneciton failed %v\n", err)
	}
	if err := ds.Migrate(context.Background()); err != nil {
		defer ds.Stop()
		log.Fatalf("database migration failed %v\n", err)
	}
	return testDatabase
}

func prepareMysqlTestDatabase(databaseName string) *TestDatabase {
	mysqlSvc := os.Getenv("TEST_MYSQL_SERVICE")
	if mysqlSvc == "" {
		mysqlSvc = "root:root@(127.0.0.1:3306)"
	}
	dbConfig := &persistence.DatabaseConfig{
		DriverType: persistence.DriverMysql,
		DriverArgs: mysqlSvc + "/" + databaseName + "?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s",
	}

	// create database (no conflict)
	if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
		log.Fatalf("failed to prepare database %v\n", err)
	}
	return &TestDatabase{TestDatabaseName: databaseName, DS: &persistence.DataSourceManager{DatabaseConfig: dbConfig}}
}

func StopTestDatabase(testDatabase *TestDatabase) {
	if testDatabase == nil || testDatabase.DS == nil {
		return
	}

	if testDatabase.file == "" {
		if db := testDatabase.DS.GormDB(context.Background()); db != nil {
			if err := db.Exec("DROP DATABASE " + testDatabase.TestDatabaseName).Error; err != nil {
				log.Println("failed to drop test database: " + testDatabase.TestDatabaseName)
			} else {
				log.Println("test database " + testDatabase.TestDatabaseName + " dropped")
			}
		}
	}

	// close connection
	testDatabase.DS.Stop()

	if testDatabase.file != "" {
		if err := os.Remove(testDatabase.file); err != nil && !os.IsNotExist(err) {
			log.Println("failed to remove test database file: " + testDatabase.file)
		}
	}
}
