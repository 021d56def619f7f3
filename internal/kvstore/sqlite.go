package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/ecolife/ecolife-cli/internal/errors"
	"github.com/ecolife/ecolife-cli/internal/logger"
	"github.com/ecolife/ecolife-cli/internal/migration"
	"github.com/ecolife/ecolife-cli/migrations"
)

// SQLiteStore keeps entries in a small SQLite file next to the config.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens (creating if needed) the store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, apperrors.LocalUnavailable("create kv directory", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.LocalUnavailable("open kv database", err)
	}
	db.SetMaxOpenConns(1)

	subFS, err := fs.Sub(migrations.FS, "kv")
	if err != nil {
		db.Close()
		return nil, apperrors.LocalUnavailable("read kv migrations", err)
	}
	runner := migration.NewRunner(db, subFS, migration.DriverSQLite)
	if _, err := runner.ApplyMigrations(func(msg string) { logger.Debug(msg) }); err != nil {
		db.Close()
		return nil, apperrors.LocalUnavailable("migrate kv database", err)
	}

	return &SQLiteStore{path: path, db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.LocalUnavailable("kv get "+key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, apperrors.LocalUnavailable("kv decode "+key, err)
	}
	return true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.LocalUnavailable("kv encode "+key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return apperrors.LocalUnavailable("kv set "+key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return apperrors.LocalUnavailable("kv delete "+key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}
