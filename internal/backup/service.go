// Package backup produces gzip-compressed SQL dumps of the embedded
// database. Only the SQLite backend is dumpable; a remote Postgres
// instance is expected to have its own backup regimen.
package backup

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"relatrix.app/crmserver/internal/database"
)

// ErrUnsupportedBackend is returned when the active driver cannot be
// dumped locally.
var ErrUnsupportedBackend = errors.New("backup is only supported on the sqlite3 backend")

type Service struct {
	db     *sqlx.DB
	dbPath string
}

func NewService(db *sqlx.DB, dbPath string) *Service {
	return &Service{
		db:     db,
		dbPath: dbPath,
	}
}

// BackupResult contains information about a completed backup
type BackupResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// CreateBackup writes a gzip-compressed SQL dump next to the database
// file, under a backups/ directory.
func (s *Service) CreateBackup(ctx context.Context) (*BackupResult, error) {
	if s.db.DriverName() != database.DriverSQLite {
		return nil, ErrUnsupportedBackend
	}

	backupDir := filepath.Join(filepath.Dir(s.dbPath), "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	filename := time.Now().Format("2006-01-02_15.04.05") + "_crmdump.sql.gz"
	backupPath := filepath.Join(backupDir, filename)

	// VACUUM INTO creates a clean, consolidated copy to dump from, so the
	// live database stays untouched while rows are read
	tempPath := filepath.Join(backupDir, "temp_backup.db")
	defer os.Remove(tempPath)

	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, tempPath); err != nil {
		return nil, fmt.Errorf("vacuum into temp: %w", err)
	}

	tempDB, err := sqlx.Open(database.DriverSQLite, tempPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open temp db: %w", err)
	}
	defer tempDB.Close()

	dump, err := generateDump(ctx, tempDB)
	if err != nil {
		return nil, fmt.Errorf("generate dump: %w", err)
	}

	file, err := os.Create(backupPath)
	if err != nil {
		return nil, fmt.Errorf("create backup file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	if _, err := gzWriter.Write([]byte(dump)); err != nil {
		return nil, fmt.Errorf("write gzip data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return nil, fmt.Errorf("close gzip writer: %w", err)
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("stat backup file: %w", err)
	}

	return &BackupResult{
		Filename: filename,
		Path:     backupPath,
		Size:     info.Size(),
	}, nil
}

// generateDump renders schema objects followed by INSERT statements for
// every user table, wrapped in a single transaction.
func generateDump(ctx context.Context, db *sqlx.DB) (string, error) {
	var sb strings.Builder

	sb.WriteString("-- Relatrix Database Backup\n")
	sb.WriteString(fmt.Sprintf("-- Generated: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("BEGIN TRANSACTION;\n\n")

	var schemas []struct {
		Name string `db:"name"`
		SQL  string `db:"sql"`
	}
	err := db.SelectContext(ctx, &schemas, `
		SELECT name, sql
		FROM sqlite_master
		WHERE sql IS NOT NULL
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY
			CASE type WHEN 'table' THEN 1 WHEN 'index' THEN 2 ELSE 3 END,
			name
	`)
	if err != nil {
		return "", fmt.Errorf("query schemas: %w", err)
	}
	for _, schema := range schemas {
		sb.WriteString(schema.SQL)
		sb.WriteString(";\n")
	}
	sb.WriteString("\n")

	var tables []string
	err = db.SelectContext(ctx, &tables, `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return "", fmt.Errorf("query tables: %w", err)
	}

	for _, table := range tables {
		if err := dumpTable(ctx, db, &sb, table); err != nil {
			return "", fmt.Errorf("dump table %s: %w", table, err)
		}
	}

	sb.WriteString("COMMIT;\n")
	return sb.String(), nil
}

func dumpTable(ctx context.Context, db *sqlx.DB, sb *strings.Builder, table string) error {
	rows, err := db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	for i, col := range columns {
		columns[i] = fmt.Sprintf("%q", col)
	}
	colList := strings.Join(columns, ", ")

	for rows.Next() {
		row, err := rows.SliceScan()
		if err != nil {
			return err
		}

		values := make([]string, len(row))
		for i, v := range row {
			values[i] = literal(v)
		}
		fmt.Fprintf(sb, "INSERT INTO %q (%s) VALUES (%s);\n", table, colList, strings.Join(values, ", "))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	sb.WriteString("\n")
	return nil
}

// literal renders a scanned value as a SQL literal.
func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return "'" + strings.ReplaceAll(string(val), "'", "''") + "'"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", val)
	}
}
