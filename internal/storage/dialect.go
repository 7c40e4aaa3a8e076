package storage

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "modernc.org/sqlite"             // Pure Go SQLite driver
)

// Dialect captures the differences between supported databases.
type Dialect interface {
	// Name is the configuration name ("sqlite", "postgres", "mysql").
	Name() string
	// DriverName returns the driver name for sql.Open.
	DriverName() string
	// RewriteQuery converts ? placeholders if the driver needs another syntax.
	RewriteQuery(query string) string
	// SupportsLastInsertId reports whether Result.LastInsertId works.
	SupportsLastInsertId() bool
	// ConfigureConnection applies pool settings and session pragmas.
	ConfigureConnection(db *sql.DB) error
	// Schema returns the statements that create the tables.
	Schema() []string
	// InsertProfileIgnore inserts a profile unless the id already exists.
	InsertProfileIgnore() string
}

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "", "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", name)
	}
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string                     { return "sqlite" }
func (sqliteDialect) DriverName() string               { return "sqlite" }
func (sqliteDialect) RewriteQuery(query string) string { return query }
func (sqliteDialect) SupportsLastInsertId() bool       { return true }

func (sqliteDialect) ConfigureConnection(db *sql.DB) error {
	// A single connection serializes writers and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	_, err := db.Exec("PRAGMA busy_timeout=5000;")
	return err
}

func (sqliteDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			points INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			pipes INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_profile ON scores(profile_id)`,
	}
}

func (sqliteDialect) InsertProfileIgnore() string {
	return "INSERT OR IGNORE INTO profiles (id, points, created_at, updated_at) VALUES (?, ?, ?, ?)"
}

type postgresDialect struct{}

func (postgresDialect) Name() string       { return "postgres" }
func (postgresDialect) DriverName() string { return "postgres" }

func (postgresDialect) RewriteQuery(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

// PostgreSQL needs a RETURNING clause instead.
func (postgresDialect) SupportsLastInsertId() bool { return false }

func (postgresDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}

func (postgresDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			points BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id BIGSERIAL PRIMARY KEY,
			profile_id TEXT NOT NULL,
			score BIGINT NOT NULL,
			pipes INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_profile ON scores(profile_id)`,
	}
}

func (postgresDialect) InsertProfileIgnore() string {
	return "INSERT INTO profiles (id, points, created_at, updated_at) VALUES (?, ?, ?, ?) ON CONFLICT (id) DO NOTHING"
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string                     { return "mysql" }
func (mysqlDialect) DriverName() string               { return "mysql" }
func (mysqlDialect) RewriteQuery(query string) string { return query }
func (mysqlDialect) SupportsLastInsertId() bool       { return true }

func (mysqlDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}

// MySQL cannot create an index only if missing, so indexes are declared inline.
func (mysqlDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id VARCHAR(128) PRIMARY KEY,
			points BIGINT NOT NULL DEFAULT 0,
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			profile_id VARCHAR(128) NOT NULL,
			score BIGINT NOT NULL,
			pipes INT NOT NULL DEFAULT 0,
			coins INT NOT NULL DEFAULT 0,
			created_at DATETIME(6) NOT NULL,
			INDEX idx_scores_top (score DESC),
			INDEX idx_scores_profile (profile_id)
		)`,
	}
}

func (mysqlDialect) InsertProfileIgnore() string {
	return "INSERT IGNORE INTO profiles (id, points, created_at, updated_at) VALUES (?, ?, ?, ?)"
}
