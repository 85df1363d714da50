package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/GuiaBolso/darwin"
)

// ApplicationID is the SQLite application_id for Relatrix databases.
// "RLTX" in ASCII: R=0x52, L=0x4C, T=0x54, X=0x58
const ApplicationID = 0x524C5458

// ErrInvalidDatabase is returned when the SQLite file is not a valid
// Relatrix database.
var ErrInvalidDatabase = errors.New("not a valid 'relatrix' database")

// defineMigrations returns the database migrations for the given driver.
// Each migration is defined in a separate row (versioned by major db release)
// comments must only appear after sql on a line and cannot span lines (comments are stripped before checksum calc)
// *NEVER* change/remove a step once released! (because a checksum of the script is saved with the migration)
func defineMigrations(driver string) []darwin.Migration {
	if driver == DriverPostgres {
		return postgresMigrations()
	}
	return sqliteMigrations()
}

func sqliteMigrations() []darwin.Migration {
	m := []darwin.Migration{

		// Set application_id first to identify this as a relatrix database
		// 0x524C5458 = "RLTX" in ASCII (R=0x52, L=0x4C, T=0x54, X=0x58)
		{Version: 1.00, Description: "Set application_id", Script: `
		PRAGMA application_id = 0x524C5458;`},

		// customer_id is the operator-supplied reference and is deliberately
		// not unique; row_id is the stable key used for update/delete.
		{Version: 1.01, Description: "Create Table 'customers'", Script: `
		CREATE TABLE IF NOT EXISTS customers (
			row_id INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(64),
			address VARCHAR(255),
			city VARCHAR(128),
			state VARCHAR(128),
			gender VARCHAR(16) NOT NULL,
			company VARCHAR(255),
			joined_date VARCHAR(10) NOT NULL,
			follow_up_date VARCHAR(10)
		);`},

		{Version: 1.02, Description: "Create Index 'idx_customers_customer_id'", Script: `
		CREATE INDEX IF NOT EXISTS idx_customers_customer_id ON customers (customer_id ASC);`},

		{Version: 1.03, Description: "Create Index 'idx_customers_follow_up_date'", Script: `
		CREATE INDEX IF NOT EXISTS idx_customers_follow_up_date ON customers (follow_up_date ASC);`},

		// sales.customer_id references customers.customer_id by convention
		// only. No foreign key and no cascade delete: orphaned sales are
		// kept, which the operator relies on when re-creating a customer.
		{Version: 1.04, Description: "Create Table 'sales'", Script: `
		CREATE TABLE IF NOT EXISTS sales (
			row_id INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_id VARCHAR(64) NOT NULL,
			product VARCHAR(255) NOT NULL,
			amount REAL NOT NULL,
			sale_date VARCHAR(10) NOT NULL
		);`},

		{Version: 1.05, Description: "Create Index 'idx_sales_customer_id'", Script: `
		CREATE INDEX IF NOT EXISTS idx_sales_customer_id ON sales (customer_id ASC);`},

		{Version: 1.06, Description: "Create Table 'users'", Script: `
		CREATE TABLE IF NOT EXISTS users (
			row_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE COLLATE NOCASE,
			password_hash VARCHAR(255) NOT NULL
		);`},
	}
	return m
}

func postgresMigrations() []darwin.Migration {
	m := []darwin.Migration{

		{Version: 1.01, Description: "Create Table 'customers'", Script: `
		CREATE TABLE IF NOT EXISTS customers (
			row_id BIGSERIAL PRIMARY KEY,
			customer_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(64),
			address VARCHAR(255),
			city VARCHAR(128),
			state VARCHAR(128),
			gender VARCHAR(16) NOT NULL,
			company VARCHAR(255),
			joined_date VARCHAR(10) NOT NULL,
			follow_up_date VARCHAR(10)
		);`},

		{Version: 1.02, Description: "Create Index 'idx_customers_customer_id'", Script: `
		CREATE INDEX IF NOT EXISTS idx_customers_customer_id ON customers (customer_id ASC);`},

		{Version: 1.03, Description: "Create Index 'idx_customers_follow_up_date'", Script: `
		CREATE INDEX IF NOT EXISTS idx_customers_follow_up_date ON customers (follow_up_date ASC);`},

		{Version: 1.04, Description: "Create Table 'sales'", Script: `
		CREATE TABLE IF NOT EXISTS sales (
			row_id BIGSERIAL PRIMARY KEY,
			customer_id VARCHAR(64) NOT NULL,
			product VARCHAR(255) NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			sale_date VARCHAR(10) NOT NULL
		);`},

		{Version: 1.05, Description: "Create Index 'idx_sales_customer_id'", Script: `
		CREATE INDEX IF NOT EXISTS idx_sales_customer_id ON sales (customer_id ASC);`},

		{Version: 1.06, Description: "Create Table 'users'", Script: `
		CREATE TABLE IF NOT EXISTS users (
			row_id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL
		);`},

		{Version: 1.07, Description: "Create Unique Index 'idx_users_email'", Script: `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (LOWER(email));`},
	}
	return m
}

// changes returns a user-friendly display of database version changes
func changes(v1, v2 float64) string {
	if v1 != v2 {
		return fmt.Sprintf("DB Version: %.2f (migrated from %.2f to %.2f)", v2, v1, v2)
	}
	return fmt.Sprintf("DB Version: %.2f", v1)
}

// currentVersion reads from migration table to get the latest version and number of steps applied
func currentVersion(db *sql.DB, driver string) (count int, ver float64, err error) {
	// might not have any migrations yet...
	var s string
	if driver == DriverPostgres {
		s = `select count(*) as n from information_schema.tables where table_name = 'darwin_migrations';`
	} else {
		s = `select count(*) as n from sqlite_master where tbl_name = 'darwin_migrations';`
	}
	err = db.QueryRow(s).Scan(&count)
	if err != nil || count == 0 {
		return 0, 0, err
	}

	s = `select count(*) as n, max(version) as ver from darwin_migrations;`
	err = db.QueryRow(s).Scan(&count, &ver)
	return count, ver, err
}

// minifiedMigrations returns our migrations with minified scripts so comments or formatting changes
// will not generate a new checksum
func minifiedMigrations(driver string) []darwin.Migration {
	migrations := defineMigrations(driver)
	for i := range migrations {
		migrations[i].Script = minify(migrations[i].Script)
	}
	return migrations
}

// minify simplifies the script to keep certain changes (spaces, tabs, case and comments) from
// creating a new checksum
func minify(script string) string {
	b := strings.Builder{}
	s := strings.ToLower(strings.ReplaceAll(script, "/*", "--"))
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		if i := strings.Index(line, "--"); i != -1 {
			line = line[0:i]
		}
		b.WriteString(strings.TrimSpace(line) + "\n")
	}
	result := strings.TrimSpace(strings.ReplaceAll(b.String(), "\t", " "))
	before := 0
	for len(result) != before {
		before = len(result)
		result = strings.ReplaceAll(result, "  ", " ")
	}
	return strings.TrimSpace(result)
}

// progress returns the steps attempted during this migration
func progress(ch <-chan darwin.MigrationInfo) string {
	var b strings.Builder

	for info := range ch {
		_, _ = fmt.Fprintf(&b, "v%.2f: \"%s\" (%s) Error: %v\n",
			info.Migration.Version, info.Migration.Description, info.Status.String(), info.Error)
	}
	return b.String()
}

// Schema returns the current table definitions as a string for display (without comments)
func Schema(driver string) string {
	var b strings.Builder

	schema := defineMigrations(driver)
	for _, m := range schema {
		_, _ = fmt.Fprintf(&b, "-- %s (%.2f)\n%s\n\n", m.Description, m.Version, m.Script)
	}
	return b.String()
}

// VerifyApplicationID checks that the SQLite database has the correct
// application_id. Returns ErrInvalidDatabase if the file belongs to a
// different application. Empty databases (application_id = 0, no tables)
// are accepted.
func VerifyApplicationID(db *sql.DB) error {
	var appID int
	if err := db.QueryRow("PRAGMA application_id;").Scan(&appID); err != nil {
		return fmt.Errorf("read application_id: %w", err)
	}

	// Accept our application ID
	if appID == ApplicationID {
		return nil
	}

	// Reject non-zero application IDs that aren't ours
	if appID != 0 {
		return fmt.Errorf("%w (application_id 0x%X)", ErrInvalidDatabase, appID)
	}

	// appID is 0 - only accept if database is empty (no user tables)
	var tableCount int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check tables: %w", err)
	}
	if tableCount > 0 {
		return fmt.Errorf("%w (has tables but no application_id)", ErrInvalidDatabase)
	}

	return nil
}

// RunMigrations applies all migrations to an already-open *sql.DB.
func RunMigrations(db *sql.DB, driver string) error {
	// Verify this is a relatrix database (or new) before migrating
	if driver == DriverSQLite {
		if err := VerifyApplicationID(db); err != nil {
			return err
		}
	}

	count, v1, err := currentVersion(db, driver)
	if err != nil {
		return err
	}

	migrations := minifiedMigrations(driver)
	if count == len(migrations) && v1 == migrations[count-1].Version {
		log.Printf("Database version %.2f is current, no migrations needed", v1)
		return nil // already up to date
	}

	var dialect darwin.Dialect = darwin.SqliteDialect{}
	if driver == DriverPostgres {
		dialect = darwin.PostgresDialect{}
	}

	// setup for the migrations
	infoChan := make(chan darwin.MigrationInfo, len(migrations))
	d := darwin.New(darwin.NewGenericDriver(db, dialect), migrations, infoChan)

	// perform the migrations
	var v2 float64
	if err := d.Migrate(); err != nil {
		close(infoChan)
		_, v2, _ = currentVersion(db, driver)
		prog := progress(infoChan)
		log.Printf("migration (was v%.2f now v%.2f): %v (%s)", v1, v2, err, prog)
		return fmt.Errorf("migration error: %w\n%s", err, prog)
	}
	close(infoChan)

	_, v2, err = currentVersion(db, driver)
	if err != nil {
		return err
	}

	log.Print(changes(v1, v2))
	return nil
}
