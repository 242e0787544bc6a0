package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// pragmas run on every new database handle, in order.
var pragmas = []struct {
	name, stmt string
}{
	{"WAL mode", "PRAGMA journal_mode = WAL"},
	{"foreign keys", "PRAGMA foreign_keys = ON"},
	{"busy timeout", "PRAGMA busy_timeout = 5000"},
}

// connPragmas are applied by the driver to every pooled connection of a
// file database; the pragmas loop above only reaches the first one.
const connPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// OpenDB opens the study store at path, creating its directory, applying
// pragmas and running migrations. MemoryPath gives a throwaway database
// limited to one connection, since each :memory: connection is a separate
// database.
func OpenDB(path string) (*sql.DB, error) {
	dsn := path
	if path != MemoryPath {
		dsn = path + "?" + connPragmas
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting %s: %w", p.name, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
