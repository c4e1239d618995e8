// Package migrations содержит схему БД и применяет ее при старте сервиса
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

// ErrMigration ошибка применения миграции
var ErrMigration = errors.New("migrations: failed to apply migration")

// Executor минимальный интерфейс БД для применения миграций
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Names возвращает имена файлов миграций в порядке применения
func Names() ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Apply применяет еще не примененные миграции, возвращает имена примененных
// Каждый файл выполняется одним запросом, pq поддерживает несколько выражений в простом запросе
func Apply(ctx context.Context, db Executor) ([]string, error) {
	if _, err := db.ExecContext(ctx, createVersionsTable); err != nil {
		return nil, fmt.Errorf("%w: create schema_migrations: %v", ErrMigration, err)
	}

	names, err := Names()
	if err != nil {
		return nil, fmt.Errorf("%w: list files: %v", ErrMigration, err)
	}

	applied := make([]string, 0, len(names))
	for _, name := range names {
		var exists bool
		err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, name,
		).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("%w: %s: check version: %v", ErrMigration, name, err)
		}
		if exists {
			continue
		}

		body, err := files.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("%w: %s: read: %v", ErrMigration, name, err)
		}

		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrMigration, name, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
			return applied, fmt.Errorf("%w: %s: record version: %v", ErrMigration, name, err)
		}
		applied = append(applied, name)
	}

	return applied, nil
}
