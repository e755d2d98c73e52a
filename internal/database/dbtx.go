package database

import (
	"database/sql"
)

// DBTX defines the database operations needed by repositories.
// This interface is satisfied by *DB and by test doubles.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	ExecReturningID(query string, args ...interface{}) (int64, error)
	GetDialect() Dialect
}
