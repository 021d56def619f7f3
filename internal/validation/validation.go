package validation

import (
	"context"
	"fmt"
	"sort"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/proofs"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDay   ConflictType = "invalid_day"
	ConflictFutureDay    ConflictType = "future_day"
	ConflictOrphanProof  ConflictType = "orphan_proof"
	ConflictMissingProof ConflictType = "missing_proof"
	ConflictEmptyRecord  ConflictType = "empty_record"
)

// Conflict represents a problem found in a stored day record
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string
	// Kind is set for proof conflicts.
	Kind constants.ProofKind
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Fixable reports whether AutoFix can repair any of the conflicts.
func (vr *ValidationResult) Fixable() bool {
	for _, c := range vr.Conflicts {
		if c.fixable() {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

func (c Conflict) fixable() bool {
	switch c.Type {
	case ConflictOrphanProof, ConflictMissingProof, ConflictEmptyRecord:
		return true
	}
	return false
}

// Validator checks stored day records against today's date and, when a
// proof store is given, that photo references still resolve.
type Validator struct {
	today  string
	proofs proofs.Store
}

// New creates a Validator. ps may be nil to skip photo lookups.
func New(today string, ps proofs.Store) *Validator {
	return &Validator{today: today, proofs: ps}
}

// ValidateRecords checks records and returns conflicts ordered by day.
func (v *Validator) ValidateRecords(ctx context.Context, records []models.DayRecord) ValidationResult {
	sorted := append([]models.DayRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Day < sorted[j].Day })

	result := ValidationResult{Conflicts: []Conflict{}}
	for _, rec := range sorted {
		result.Conflicts = append(result.Conflicts, v.validateRecord(ctx, rec)...)
	}
	return result
}

func (v *Validator) validateRecord(ctx context.Context, rec models.DayRecord) []Conflict {
	if !utils.IsValidKey(rec.Day) {
		return []Conflict{{
			Type:        ConflictInvalidDay,
			Day:         rec.Day,
			Description: fmt.Sprintf("Record %s has a malformed day %q and is ignored", rec.ID, rec.Day),
		}}
	}

	var conflicts []Conflict
	if rec.Day > v.today {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictFutureDay,
			Day:         rec.Day,
			Description: fmt.Sprintf("%s is after today (%s)", rec.Day, v.today),
		})
	}

	if isEmpty(rec) {
		return append(conflicts, Conflict{
			Type:        ConflictEmptyRecord,
			Day:         rec.Day,
			Description: fmt.Sprintf("%s has nothing recorded", rec.Day),
		})
	}

	proofsByKind := []struct {
		kind constants.ProofKind
		ref  *string
		done bool
	}{
		{constants.ProofEco, rec.EcoProofRef, rec.EcoDone},
		{constants.ProofChallenge, rec.ChallengeProofRef, rec.ChallengeDone},
	}
	for _, p := range proofsByKind {
		if p.ref == nil || *p.ref == "" {
			continue
		}
		if !p.done {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictOrphanProof,
				Day:         rec.Day,
				Kind:        p.kind,
				Description: fmt.Sprintf("%s has a %s photo but the activity is not marked", rec.Day, p.kind),
			})
			continue
		}
		if v.proofs != nil && !v.resolves(ctx, *p.ref) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMissingProof,
				Day:         rec.Day,
				Kind:        p.kind,
				Description: fmt.Sprintf("%s %s photo is missing: %s", rec.Day, p.kind, *p.ref),
			})
		}
	}
	return conflicts
}

func (v *Validator) resolves(ctx context.Context, ref string) bool {
	rc, err := v.proofs.Open(ctx, ref)
	if err != nil {
		return false
	}
	rc.Close()
	return true
}

func isEmpty(rec models.DayRecord) bool {
	return !rec.EcoDone && !rec.ChallengeDone && !rec.HasProof() &&
		(rec.ChallengeNote == nil || *rec.ChallengeNote == "")
}

// Fixer applies repairs to stored records.
type Fixer interface {
	UpsertDay(ctx context.Context, patch models.DayRecordPatch) (models.DayRecord, error)
	DeleteDay(ctx context.Context, day string) error
}

// AutoFix clears dangling photo references and removes empty records.
// Malformed and future days are left for the user. It returns a slice of
// FixActions describing what was done.
func AutoFix(ctx context.Context, conflicts []Conflict, fixer Fixer) []FixAction {
	actions := []FixAction{}
	for _, conflict := range conflicts {
		if !conflict.fixable() {
			continue
		}

		var (
			err    error
			action string
		)
		switch conflict.Type {
		case ConflictEmptyRecord:
			err = fixer.DeleteDay(ctx, conflict.Day)
			action = fmt.Sprintf("Removed empty record for %s", conflict.Day)
		default:
			patch := models.DayRecordPatch{Day: conflict.Day}
			if conflict.Kind == constants.ProofChallenge {
				patch.ChallengeProofRef = models.String("")
			} else {
				patch.EcoProofRef = models.String("")
			}
			_, err = fixer.UpsertDay(ctx, patch)
			action = fmt.Sprintf("Cleared %s photo reference for %s", conflict.Kind, conflict.Day)
		}

		if err != nil {
			action = fmt.Sprintf("Failed to fix %s: %v", conflict.Day, err)
		}
		actions = append(actions, FixAction{Action: action, SourceConflict: conflict})
	}
	return actions
}
