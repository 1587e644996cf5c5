// Package sqlite implements the repository interfaces on an embedded
// SQLite database via the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB owns the sql.DB handle shared by every repository. It is constructed
// once by the composition root and injected into the repositories it
// vends; there is no package-level singleton.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath, configures it, and runs
// migrations. Use ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection: SQLite serializes writes anyway, pragmas apply
	// per-connection, and ":memory:" databases are per-connection too.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// SQLite ships with foreign keys off; every referential-integrity
	// guarantee in this schema depends on them being on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.Migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows, so each entity's
// row-mapper works for single-row and multi-row queries alike.
type rowScanner interface {
	Scan(dest ...any) error
}

// isForeignKeyViolation reports whether err is SQLite rejecting a write
// over a foreign-key constraint. The driver exposes no typed error for
// this, so the message is matched the way the constraint name appears in
// every SQLite build.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// nullIfEmpty maps "" to NULL for optional text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt encodes a boolean for storage; boolean columns hold 0/1.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// dateString normalizes a scanned DATE column to YYYY-MM-DD text. The
// driver returns date-declared columns as time.Time when it can parse the
// stored text and as raw text otherwise; NULL becomes "".
func dateString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format("2006-01-02")
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}

// datetimeString normalizes a scanned DATETIME column to ISO-8601 text.
// Client-written columns are cast to TEXT in their select lists, so the
// usual case here is the stored string unchanged; the time.Time arm covers
// server-written values.
func datetimeString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.Format(time.RFC3339)
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}
