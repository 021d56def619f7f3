package models

import (
	"time"

	"github.com/ecolife/ecolife-cli/internal/constants"
)

// DayRecord is one user's activity for one calendar day.
type DayRecord struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Day               string    `json:"day"` // YYYY-MM-DD format
	EcoDone           bool      `json:"eco_done"`
	ChallengeDone     bool      `json:"challenge_done"`
	EcoProofRef       *string   `json:"eco_proof_ref,omitempty"`
	ChallengeProofRef *string   `json:"challenge_proof_ref,omitempty"`
	ChallengeNote     *string   `json:"challenge_note,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Has reports whether the given activity flag is set.
func (r DayRecord) Has(flag constants.Flag) bool {
	switch flag {
	case constants.FlagEco:
		return r.EcoDone
	case constants.FlagChallenge:
		return r.ChallengeDone
	default:
		return false
	}
}

// HasProof reports whether any evidence reference is attached.
func (r DayRecord) HasProof() bool {
	return (r.EcoProofRef != nil && *r.EcoProofRef != "") ||
		(r.ChallengeProofRef != nil && *r.ChallengeProofRef != "")
}

// DayRecordPatch is a partial update. Nil fields are left as they are
// (or take their default when the record is new). A text field set to ""
// clears the stored value back to null.
type DayRecordPatch struct {
	Day               string
	EcoDone           *bool
	ChallengeDone     *bool
	EcoProofRef       *string
	ChallengeProofRef *string
	ChallengeNote     *string
}

// Merge applies the patch over an existing record (nil for a new one),
// field by field: provided, else existing, else default.
func (p DayRecordPatch) Merge(existing *DayRecord) DayRecord {
	var out DayRecord
	if existing != nil {
		out = *existing
	}
	out.Day = p.Day
	if p.EcoDone != nil {
		out.EcoDone = *p.EcoDone
	}
	if p.ChallengeDone != nil {
		out.ChallengeDone = *p.ChallengeDone
	}
	if p.EcoProofRef != nil {
		out.EcoProofRef = clearable(p.EcoProofRef)
	}
	if p.ChallengeProofRef != nil {
		out.ChallengeProofRef = clearable(p.ChallengeProofRef)
	}
	if p.ChallengeNote != nil {
		out.ChallengeNote = clearable(p.ChallengeNote)
	}
	return out
}

func clearable(s *string) *string {
	if *s == "" {
		return nil
	}
	return s
}

// Bool returns a pointer to b, for building patches.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }
