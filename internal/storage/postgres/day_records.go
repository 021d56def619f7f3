package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecolife/ecolife-cli/internal/models"
)

const recordColumns = `id, user_id, day, eco_done, challenge_done,
	eco_proof_ref, challenge_proof_ref, challenge_note, updated_at`

const upsertDayQuery = `
	INSERT INTO day_records (
		id, user_id, day, eco_done, challenge_done,
		eco_proof_ref, challenge_proof_ref, challenge_note
	) VALUES (
		$1, $2, $3, COALESCE($4::boolean, FALSE), COALESCE($5::boolean, FALSE),
		NULLIF($6::text, ''), NULLIF($7::text, ''), NULLIF($8::text, '')
	)
	ON CONFLICT ON CONSTRAINT day_records_user_day_key DO UPDATE SET
		eco_done            = COALESCE($4::boolean, day_records.eco_done),
		challenge_done      = COALESCE($5::boolean, day_records.challenge_done),
		eco_proof_ref       = NULLIF(COALESCE($6::text, day_records.eco_proof_ref), ''),
		challenge_proof_ref = NULLIF(COALESCE($7::text, day_records.challenge_proof_ref), ''),
		challenge_note      = NULLIF(COALESCE($8::text, day_records.challenge_note), ''),
		updated_at          = now()
	RETURNING ` + recordColumns

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.DayRecord, error) {
	var rec models.DayRecord
	var ecoProof, challengeProof, note sql.NullString

	if err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Day, &rec.EcoDone, &rec.ChallengeDone,
		&ecoProof, &challengeProof, &note, &rec.UpdatedAt,
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
	return rec, nil
}

func (s *Store) GetDay(ctx context.Context, userID, day string) (models.DayRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM day_records
		WHERE user_id = $1 AND day = $2
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
		patch.EcoDone, patch.ChallengeDone,
		patch.EcoProofRef, patch.ChallengeProofRef, patch.ChallengeNote,
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
		WHERE user_id = $1 AND day BETWEEN $2 AND $3
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
	res, err := s.db.ExecContext(ctx, `DELETE FROM day_records WHERE user_id = $1 AND day = $2`, userID, day)
	if err != nil {
		return false, fmt.Errorf("failed to delete day record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
