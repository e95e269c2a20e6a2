package kv

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is an alternative Store backend keeping both blobs in a single
// key-value table. Useful where a single database file is preferable to a
// directory of loose files.
type SQLite struct {
	db *sql.DB

	get    *sql.Stmt
	set    *sql.Stmt
	remove *sql.Stmt
}

// OpenSQLite opens (or creates) the database at path and prepares the
// key-value table.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

func (s *SQLite) prepareStatements() error {
	var err error

	s.get, err = s.db.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.set, err = s.db.Prepare(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`)
	if err != nil {
		return err
	}

	s.remove, err = s.db.Prepare(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	return nil
}

func (s *SQLite) Get(key string) ([]byte, bool) {
	var val []byte
	err := s.get.QueryRow(key).Scan(&val)
	if err != nil {
		return nil, false
	}
	return val, true
}

func (s *SQLite) Set(key string, value []byte) error {
	if _, err := s.set.Exec(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Remove(key string) error {
	if _, err := s.remove.Exec(key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Close releases prepared statements and the underlying database.
func (s *SQLite) Close() error {
	for _, stmt := range []*sql.Stmt{s.get, s.set, s.remove} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}
