package database

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers. The store contract is identical for both; SQLite is
// the embedded single-file backend, Postgres the remote one.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to the configured backend. For SQLite, dsn is the database
// file path. A connection failure here is terminal: the caller is expected
// to exit, not retry.
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite:
		db, err := sqlx.Connect(DriverSQLite, dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}

		// WAL mode is only required once after creating the database, but
		// doesn't hurt to set it each time
		if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil

	case DriverPostgres:
		db, err := sqlx.Connect(DriverPostgres, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return db, nil

	default:
		return nil, errors.New("unsupported db driver: " + driver)
	}
}
