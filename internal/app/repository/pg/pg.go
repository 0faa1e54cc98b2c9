package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// TargetDB is the read/write view of the target store.
type TargetDB struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection with a ping so a
// bad host or password fails before any read happens.
func Open(connectionString string) (*TargetDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &TargetDB{db: db}, nil
}

// NewTargetDB wraps an existing connection. Used by tests.
func NewTargetDB(db *sql.DB) *TargetDB {
	return &TargetDB{db: db}
}

func (t *TargetDB) Close() error {
	return t.db.Close()
}

// DB exposes the underlying handle for transaction control in the copier.
func (t *TargetDB) DB() *sql.DB {
	return t.db
}
