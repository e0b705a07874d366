package repositories

import (
	"database/sql"
)

// execer is satisfied by both [sql.DB] and [sql.Tx] so writes can join a caller's transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
