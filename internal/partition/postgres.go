package partition

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes used to map DDL failures.
const (
	codeDuplicateTable = "42P07"
	codeUndefinedTable = "42P01"
)

// PostgresStore stores each partition as a dedicated table in the master
// database, named by partition key. Table names are sanitized with
// pgx.Identifier, so keys never reach SQL unquoted.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a partition store backed by the given db.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create allocates an empty partition table at key. Returns ErrExists if a
// table with that name already exists.
func (s *PostgresStore) Create(ctx context.Context, key string) error {
	stmt := fmt.Sprintf(
		"CREATE TABLE %s (id TEXT PRIMARY KEY, doc JSONB NOT NULL, created_at TIMESTAMPTZ NOT NULL DEFAULT now())",
		ident(key))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		if pgCode(err) == codeDuplicateTable {
			return ErrExists
		}
		return err
	}
	return nil
}

// Exists reports whether a partition table is allocated at key.
func (s *PostgresStore) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1)",
		key).Scan(&exists)
	return exists, err
}

// Copy copies every row from the partition at fromKey into the partition at
// toKey in a single INSERT..SELECT. The source table is never modified.
func (s *PostgresStore) Copy(ctx context.Context, fromKey, toKey string) error {
	stmt := fmt.Sprintf(
		"INSERT INTO %s (id, doc, created_at) SELECT id, doc, created_at FROM %s",
		ident(toKey), ident(fromKey))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		if pgCode(err) == codeUndefinedTable {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Drop deallocates the partition table at key. Dropping an absent table is not an error.
func (s *PostgresStore) Drop(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", ident(key)))
	return err
}

// List returns the keys of all allocated partition tables.
func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name LIKE 'org\_%' ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Put upserts doc under id in the partition at key.
func (s *PostgresStore) Put(ctx context.Context, key, id string, doc []byte) error {
	stmt := fmt.Sprintf(
		"INSERT INTO %s (id, doc) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc",
		ident(key))
	if _, err := s.db.ExecContext(ctx, stmt, id, doc); err != nil {
		if pgCode(err) == codeUndefinedTable {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Items returns all documents in the partition at key, by id.
func (s *PostgresStore) Items(ctx context.Context, key string) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT id, doc FROM %s", ident(key)))
	if err != nil {
		if pgCode(err) == codeUndefinedTable {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer rows.Close()
	items := make(map[string][]byte)
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		items[id] = doc
	}
	return items, rows.Err()
}

func ident(key string) string {
	return pgx.Identifier{key}.Sanitize()
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
