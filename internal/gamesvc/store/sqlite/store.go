// Package sqlite implements the game service stores over an embedded SQLite
// database (modernc.org/sqlite, no cgo). It backs single-node deployments
// (DB_DRIVER=sqlite) and the test suites.
//
// The database handle must come from db.OpenSQLite, whose DSN makes every
// transaction BEGIN IMMEDIATE; AppendMove depends on that for serialization.
package sqlite

import (
	"errors"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

type rowScanner interface {
	Scan(dest ...any) error
}
