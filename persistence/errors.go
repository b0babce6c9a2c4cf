package persistence

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	mysqlErrDupEntry         = 1062
	mysqlErrRowIsReferenced  = 1451
	mysqlErrNoReferencedRow  = 1452
	mysqlErrRowIsReferenced2 = 1217

	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"

	sqliteForeignKeyFailed = "FOREIGN KEY constraint failed"
	sqliteUniqueFailed     = "UNIQUE constraint failed"
)

// IsForeignKeyViolation reports whether err is a referential integrity failure raised by the store.
func IsForeignKeyViolation(err error) bool {
	return anyError(err, func(e error) bool {
		var mysqlErr *mysql.MySQLError
		if errors.As(e, &mysqlErr) {
			return mysqlErr.Number == mysqlErrRowIsReferenced || mysqlErr.Number == mysqlErrRowIsReferenced2 ||
				mysqlErr.Number == mysqlErrNoReferencedRow
		}
		var sqliteErr sqlite3.Error
		if errors.As(e, &sqliteErr) {
			if sqliteErr.Code != sqlite3.ErrConstraint {
				return false
			}
			// without extended result codes enabled the driver reports the plain constraint code
			return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey ||
				strings.Contains(sqliteErr.Error(), sqliteForeignKeyFailed)
		}
		var pqErr *pq.Error
		if errors.As(e, &pqErr) {
			return pqErr.Code == pqForeignKeyViolation
		}
		return false
	})
}

// IsUniqueViolation reports whether err is a unique or primary key collision raised by the store.
func IsUniqueViolation(err error) bool {
	return anyError(err, func(e error) bool {
		var mysqlErr *mysql.MySQLError
		if errors.As(e, &mysqlErr) {
			return mysqlErr.Number == mysqlErrDupEntry
		}
		var sqliteErr sqlite3.Error
		if errors.As(e, &sqliteErr) {
			if sqliteErr.Code != sqlite3.ErrConstraint {
				return false
			}
			return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
				strings.Contains(sqliteErr.Error(), sqliteUniqueFailed)
		}
		var pqErr *pq.Error
		if errors.As(e, &pqErr) {
			return pqErr.Code == pqUniqueViolation
		}
		return false
	})
}

func anyError(err error, match func(error) bool) bool {
	if err == nil {
		return false
	}
	if errs, ok := err.(gorm.Errors); ok {
		for _, e := range errs {
			if match(e) {
				return true
			}
		}
		return false
	}
	return match(err)
}
