package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// ErrSourceNotFound is returned when the SQLite database file does not
// exist. The caller must not have opened any connection by then.
var ErrSourceNotFound = errors.New("sqlite database not found")

// Open opens the source database read-only. The file must already exist;
// sqlite would otherwise happily create an empty database and every count
// downstream would silently be zero.
func Open(path string) (*SourceDB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SourceDB{db: db}, nil
}

// SourceDB is the read-only view of the source store.
type SourceDB struct {
	db *sql.DB
}

// NewSourceDB wraps an existing connection. Used by tests.
func NewSourceDB(db *sql.DB) *SourceDB {
	return &SourceDB{db: db}
}

func (s *SourceDB) Close() error {
	return s.db.Close()
}
