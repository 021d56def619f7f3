package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecolife/ecolife-cli/internal/models"
)

const recordColumns = `id, user_id, day, eco_done, challenge_done,
	eco_proof_ref, challenge_proof_ref, challenge_note, updated_at`

// ?N parameters are positional, so one argument can feed both the insert
// and the conflict branch. An empty text argument clears its column.
const upsertDayQuery = `
	INSERT INTO day_records (
		id, user_id, day, eco_done, challenge_done,
		eco_proof_ref, challenge_proof_ref, challenge_note,
		created_at, updated_at
	) VALUES (
		?1, ?2, ?3, COALESCE(?4, 0), COALESCE(?5, 0),
		NULLIF(?6, ''), NULLIF(?7, ''), NULLIF(?8, ''),
		strftime('%Y-%m-%dT%H:%M:%fZ', 'now'), strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	)
	ON CONFLICT (user_id, day) DO UPDATE SET
		eco_done            = COALESCE(?4, day_records.eco_done),
		challenge_done      = COALESCE(?5, day_records.challenge_done),
		eco_proof_ref       = NULLIF(COALESCE(?6, day_records.eco_proof_ref), ''),
		challenge_proof_ref = NULLIF(COALESCE(?7, day_records.challenge_proof_ref), ''),
		challenge_note      = NULLIF(COALESCE(?8, day_records.challenge_note), ''),
		updated_at          = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	RETURNING ` + recordColumns

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.DayRecord, error) {
	var rec models.DayRecord
	var ecoProof, challengeProof, note sql.NullString
	var updatedAtStr string

	if err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Day, &rec.EcoDone, &rec.ChallengeDone,
		&ecoProof, &challengeProof, &note, &updatedAtStr,
	); err != nil {
		return models.DayRecord{}, err
	}

	if ecoProof.Valid {
		rec.EcoProofRef = &ecoProof.String
	}
	if challengeProof.Valid {
		rec.ChallengeProofRef = &challengeProof.String
	}
	if note.Valid {
		rec.ChallengeNote = &note.String
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, updatedAtStr)
	if err != nil {
		return models.DayRecord{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	rec.UpdatedAt = updatedAt
	return rec, nil
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (s *Store) GetDay(ctx context.Context, userID, day string) (models.DayRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM day_records
		WHERE user_id = ? AND day = ?
	`, userID, day)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return models.DayRecord{}, err
	}
	if err != nil {
		return models.DayRecord{}, fmt.Errorf("failed to get day record: %w", err)
	}
	return rec, nil
}

func (s *Store) UpsertDay(ctx context.Context, userID string, patch models.DayRecordPatch) (models.DayRecord, error) {
	row := s.db.QueryRowContext(ctx, upsertDayQuery,
		uuid.New().String(), userID, patch.Day,
		nullBool(patch.EcoDone), nullBool(patch.ChallengeDone),
		nullString(patch.EcoProofRef), nullString(patch.ChallengeProofRef), nullString(patch.ChallengeNote),
	)

	rec, err := scanRecord(row)
	if err != nil {
		return models.DayRecord{}, fmt.Errorf("failed to upsert day record: %w", err)
	}
	return rec, nil
}

func (s *Store) GetRange(ctx context.Context, userID, from, to string) ([]models.DayRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM day_records
		WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day ASC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query day records: %w", err)
	}
	defer rows.Close()

	var records []models.DayRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day records: %w", err)
	}
	return records, nil
}

func (s *Store) DeleteDay(ctx context.Context, userID, day string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM day_records WHERE user_id = ? AND day = ?`, userID, day)
	if err != nil {
		return false, fmt.Errorf("failed to delete day record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
