package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the filemap table, which maps
// every processed source file to its output document.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Migrate creates the filemap table and its ordering index. Idempotent.
func (s *Store) Migrate() error {
	err := s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(schemaDDL)
		return err
	})
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Drop removes the filemap table, closes the connection and deletes the
// database files. The store is unusable afterwards.
func (s *Store) Drop() error {
	err := s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(dropDDL)
		return err
	})
	if err != nil {
		s.db.Close()
		return fmt.Errorf("drop: %w", err)
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("drop: close: %w", err)
	}
	var errs []error
	for _, p := range []string{s.path, s.path + "-wal", s.path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("drop: remove database: %w", errors.Join(errs...))
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS filemap (
  id              TEXT PRIMARY KEY,
  src_file        TEXT NOT NULL,
  xml_file        TEXT NOT NULL,
  package         TEXT,
  filename        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_filemap_package_filename ON filemap(package, filename);
`

const dropDDL = `
DROP INDEX IF EXISTS idx_filemap_package_filename;
DROP TABLE IF EXISTS filemap;
`
