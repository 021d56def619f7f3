package storage

import (
	"context"

	"github.com/ecolife/ecolife-cli/internal/models"
)

// Backend is a record store keyed by (user, day). Implementations do not
// validate day keys; the Adapter does that before calling them.
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Ping(ctx context.Context) error

	// Day records
	// GetDay returns sql.ErrNoRows when the user has no record for day.
	GetDay(ctx context.Context, userID, day string) (models.DayRecord, error)
	// UpsertDay merges patch into the stored record in one statement:
	// provided fields win, then existing values, then defaults.
	UpsertDay(ctx context.Context, userID string, patch models.DayRecordPatch) (models.DayRecord, error)
	// GetRange returns records with from <= day <= to, ascending by day.
	GetRange(ctx context.Context, userID, from, to string) ([]models.DayRecord, error)
	// DeleteDay removes the record and reports whether one existed.
	DeleteDay(ctx context.Context, userID, day string) (bool, error)

	// Schema
	SchemaVersion() (current, latest int, err error)
	Migrate(logFn func(string)) (int, error)

	// Utils
	GetConfigPath() string
}
