package db

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open opens a Postgres connection using the given DSN. Caller must call Close when done.
func Open(dsn string) (*sql.DB, error) {
	db, err := OpenLazy(dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenLazy opens a Postgres connection pool without verifying reachability.
// The first query will surface connection errors instead.
func OpenLazy(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}
