// ABOUTME: SQLite database holding cached author vector runs
// ABOUTME: Resolves the data directory and opens file or in-memory databases with the schema applied
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBFile is the database name inside the data directory
const DBFile = "poetsim.db"

// DB is the cache database
type DB struct {
	conn *sql.DB
	path string
}

// DefaultDataDir returns POETSIM_DATA_DIR, or poetsim under the XDG data home
func DefaultDataDir() string {
	if dir := os.Getenv("POETSIM_DATA_DIR"); dir != "" {
		return dir
	}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "poetsim")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "poetsim")
	}
	return filepath.Join(".local", "share", "poetsim")
}

// DBPath returns the database file inside dataDir
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// Open opens the database file at path, creating its directory and tables
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return open(path, path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
}

// OpenInMemory opens a private in-memory database (for testing)
func OpenInMemory() (*DB, error) {
	return open(":memory:", ":memory:?_pragma=foreign_keys(ON)")
}

func open(path, dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// one connection: every pooled :memory: connection would be a separate
	// database, and the CLI never writes concurrently
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(Schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema in %s: %w", path, err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Close closes the database
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path, or ":memory:"
func (db *DB) Path() string {
	return db.path
}

// Begin starts a transaction
func (db *DB) Begin() (*sql.Tx, error) {
	return db.conn.Begin()
}

// Exec runs a statement that returns no rows
func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query runs a statement that returns rows
func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow runs a statement that returns at most one row
func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
