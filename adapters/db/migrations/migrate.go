// Package migrations applies the embedded ledger schema. The same SQL runs on
// PostgreSQL and SQLite.
package migrations

import (
	"context"
	"crypto/sha256"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"trngaudit/internal"
	"trngaudit/internal/errors"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator handles database schema migrations
type Migrator struct {
	db     *sqlx.DB
	logger *internal.Logger
	source fs.FS
}

// NewMigrator creates a migrator over the embedded schema
func NewMigrator(db *sqlx.DB, logger *internal.Logger) *Migrator {
	if logger == nil {
		logger = internal.NopLogger()
	}
	sub, _ := fs.Sub(files, "sql")
	return &Migrator{db: db, logger: logger, source: sub}
}

// MigrationFile represents a migration file
type MigrationFile struct {
	Version  string
	Name     string
	Checksum string
	SQL      string
}

// MigrationStatus reports whether a migration has been applied
type MigrationStatus struct {
	Version string
	Name    string
	Applied bool
}

// Up executes all pending migrations. A previously applied migration whose
// content changed is an error.
func (m *Migrator) Up(ctx context.Context) error {
	if err := m.ensureTable(ctx); err != nil {
		return err
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return errors.DatabaseError("failed to get applied migrations", err)
	}

	migrations, err := m.findMigrationFiles()
	if err != nil {
		return errors.Wrap(err, "failed to find migration files")
	}

	for _, file := range migrations {
		if checksum, ok := applied[file.Version]; ok {
			if checksum != file.Checksum {
				return errors.DatabaseError(
					fmt.Sprintf("migration %s was modified after being applied", file.Version), nil)
			}
			continue
		}

		if err := m.applyMigration(ctx, file); err != nil {
			return errors.DatabaseError(fmt.Sprintf("failed to apply migration %s", file.Version), err)
		}
		m.logger.Info("Applied migration: %s_%s", file.Version, file.Name)
	}

	return nil
}

// Status lists every known migration in version order
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return nil, errors.DatabaseError("failed to get applied migrations", err)
	}

	migrations, err := m.findMigrationFiles()
	if err != nil {
		return nil, errors.Wrap(err, "failed to find migration files")
	}

	status := make([]MigrationStatus, 0, len(migrations))
	for _, file := range migrations {
		_, ok := applied[file.Version]
		status = append(status, MigrationStatus{Version: file.Version, Name: file.Name, Applied: ok})
	}
	return status, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return errors.DatabaseError("failed to create migrations table", err)
	}
	return nil
}

// getAppliedMigrations returns applied versions mapped to their checksum
func (m *Migrator) getAppliedMigrations(ctx context.Context) (map[string]string, error) {
	rows, err := m.db.QueryxContext(ctx, "SELECT version, checksum FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]string)
	for rows.Next() {
		var version, checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, err
		}
		applied[version] = checksum
	}

	return applied, rows.Err()
}

// calculateChecksum computes SHA256 checksum of migration content
func calculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// findMigrationFiles reads NNN_name.sql files sorted by version
func (m *Migrator) findMigrationFiles() ([]MigrationFile, error) {
	entries, err := fs.ReadDir(m.source, ".")
	if err != nil {
		return nil, err
	}

	var migrations []MigrationFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(strings.TrimSuffix(entry.Name(), ".sql"), "_", 2)
		if len(parts) < 2 {
			continue // skip invalid filenames
		}

		data, err := fs.ReadFile(m.source, entry.Name())
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, MigrationFile{
			Version:  parts[0],
			Name:     parts[1],
			Checksum: calculateChecksum(data),
			SQL:      string(data),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// applyMigration executes a single migration and records it in one transaction
func (m *Migrator) applyMigration(ctx context.Context, file MigrationFile) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(file.SQL) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		tx.Rebind("INSERT INTO schema_migrations (version, checksum) VALUES (?, ?)"),
		file.Version, file.Checksum)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func splitStatements(sql string) []string {
	var stmts []string
	for _, stmt := range strings.Split(sql, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
