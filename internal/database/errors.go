package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MySQL server error numbers for foreign key failures.
const (
	mysqlRowIsReferenced = 1451 // parent row still has children
	mysqlNoReferencedRow = 1452 // child points to a missing parent
)

// IsForeignKeyViolation reports whether err is the store rejecting a
// write because of a foreign key constraint, for either supported driver.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return true
		}
		return strings.Contains(sqliteErr.Error(), "FOREIGN KEY constraint failed")
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlRowIsReferenced || mysqlErr.Number == mysqlNoReferencedRow
	}
	return false
}
