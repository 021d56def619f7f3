package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ecolife/ecolife-cli/internal/constants"
	apperrors "github.com/ecolife/ecolife-cli/internal/errors"
	"github.com/ecolife/ecolife-cli/internal/logger"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/session"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

// Adapter exposes the day-record operations for the signed-in user.
// Absent days are simply missing; callers treat them as all-false.
type Adapter struct {
	backend Backend
	session session.Source
	timeout time.Duration
}

// NewAdapter wraps backend. A non-positive timeout uses the default.
func NewAdapter(backend Backend, src session.Source, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	return &Adapter{backend: backend, session: src, timeout: timeout}
}

// Backend returns the underlying record store.
func (a *Adapter) Backend() Backend {
	return a.backend
}

// UserID returns the signed-in user or ErrNotAuthenticated.
func (a *Adapter) UserID() (string, error) {
	if a.session == nil {
		return "", apperrors.ErrNotAuthenticated
	}
	return a.session.UserID()
}

func (a *Adapter) prepare(days ...string) (string, error) {
	userID, err := a.UserID()
	if err != nil {
		return "", err
	}
	for _, d := range days {
		if !utils.IsValidKey(d) {
			return "", apperrors.InvalidDay(d)
		}
	}
	return userID, nil
}

// GetDay returns the record for day, or nil when none exists.
func (a *Adapter) GetDay(ctx context.Context, day string) (*models.DayRecord, error) {
	userID, err := a.prepare(day)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	rec, err := a.backend.GetDay(ctx, userID, day)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Backend("get day", err)
	}
	return &rec, nil
}

// UpsertDay creates or updates the record for patch.Day, keeping any
// field the patch leaves nil.
func (a *Adapter) UpsertDay(ctx context.Context, patch models.DayRecordPatch) (models.DayRecord, error) {
	userID, err := a.prepare(patch.Day)
	if err != nil {
		return models.DayRecord{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	rec, err := a.backend.UpsertDay(ctx, userID, patch)
	if err != nil {
		return models.DayRecord{}, apperrors.Backend("upsert day", err)
	}
	logger.Debug("Upserted day record", "day", rec.Day, "eco", rec.EcoDone, "challenge", rec.ChallengeDone)
	return rec, nil
}

// GetRange returns the stored records between from and to inclusive,
// oldest first. Rows whose day is not a valid key are dropped.
func (a *Adapter) GetRange(ctx context.Context, from, to string) ([]models.DayRecord, error) {
	userID, err := a.prepare(from, to)
	if err != nil {
		return nil, err
	}
	if from > to {
		return nil, apperrors.InvalidDay(from + ".." + to)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	rows, err := a.backend.GetRange(ctx, userID, from, to)
	if err != nil {
		return nil, apperrors.Backend("get range", err)
	}

	out := rows[:0]
	for _, r := range rows {
		if !utils.IsValidKey(r.Day) {
			logger.Warn("Skipping day record with malformed day", "id", r.ID, "day", r.Day)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// DeleteDay removes the record for day. Deleting a missing day is not an error.
func (a *Adapter) DeleteDay(ctx context.Context, day string) error {
	userID, err := a.prepare(day)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	existed, err := a.backend.DeleteDay(ctx, userID, day)
	if err != nil {
		return apperrors.Backend("delete day", err)
	}
	logger.Debug("Deleted day record", "day", day, "existed", existed)
	return nil
}
