package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one embedded schema change, identified by the numeric prefix of its file name.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationStatus reports whether a migration has been applied.
type MigrationStatus struct {
	Migration
	AppliedAt *time.Time
}

// Migrator applies embedded migrations in version order and records them in schema_migrations.
type Migrator struct {
	db         *sql.DB
	migrations []Migration
}

func NewMigrator(db *sql.DB) (*Migrator, error) {
	migrations, err := loadMigrations(migrationFiles)
	if err != nil {
		return nil, err
	}

	return &Migrator{db: db, migrations: migrations}, nil
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	seen := make(map[int]string, len(entries))

	for _, entry := range entries {
		base := path.Base(entry)

		prefix, name, ok := strings.Cut(strings.TrimSuffix(base, ".sql"), "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: expected <version>_<name>.sql", base)
		}

		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s: invalid version: %w", base, err)
		}

		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration %s: version %d already used by %s", base, version, other)
		}

		seen[version] = base

		body, err := fs.ReadFile(fsys, entry)
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", base, err)
		}

		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })

	return migrations, nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[int]time.Time, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, err
	}

	rows, err := m.db.QueryContext(ctx, `SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("listing applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)

	for rows.Next() {
		var (
			version int
			at      time.Time
		)

		if err := rows.Scan(&version, &at); err != nil {
			return nil, fmt.Errorf("scanning migration: %w", err)
		}

		applied[version] = at
	}

	return applied, rows.Err()
}

// Up applies every pending migration, each in its own transaction, and returns the ones it applied.
func (m *Migrator) Up(ctx context.Context) ([]Migration, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var done []Migration

	for _, mig := range m.migrations {
		if _, ok := applied[mig.Version]; ok {
			continue
		}

		if err := m.apply(ctx, mig); err != nil {
			return done, err
		}

		done = append(done, mig)
	}

	return done, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", mig.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
		return fmt.Errorf("applying migration %d_%s: %w", mig.Version, mig.Name, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, applied_at) VALUES ($1, $2, NOW())`,
		mig.Version, mig.Name,
	); err != nil {
		return fmt.Errorf("recording migration %d: %w", mig.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", mig.Version, err)
	}

	return nil
}

// Status lists every known migration with its applied time, if any.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(m.migrations))

	for _, mig := range m.migrations {
		s := MigrationStatus{Migration: mig}
		if at, ok := applied[mig.Version]; ok {
			s.AppliedAt = &at
		}

		statuses = append(statuses, s)
	}

	return statuses, nil
}
