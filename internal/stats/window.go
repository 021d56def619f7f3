package stats

import (
	"fmt"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

// Slot is one day of a trailing window. Days without a stored record
// get a synthesized empty record and Present == false.
type Slot struct {
	Day     string
	Record  models.DayRecord
	Present bool
}

// Tone is 0 for no activity, 1 for exactly one flag and 2 for both.
func (s Slot) Tone() constants.Tone {
	tone := constants.ToneNone
	if s.Record.EcoDone {
		tone++
	}
	if s.Record.ChallengeDone {
		tone++
	}
	return tone
}

// HasProof reports whether any evidence is attached, independent of tone.
func (s Slot) HasProof() bool {
	return s.Record.HasProof()
}

// Summary reduces a window to counts and ratios.
type Summary struct {
	Days           int
	EcoCount       int
	ChallengeCount int
	ProofCount     int
	ActiveDays     int
	EcoRatio       float64
	ChallengeRatio float64
}

// BuildWindow returns length slots ending at endDay (inclusive), oldest
// first.
func BuildWindow(records map[string]models.DayRecord, endDay string, length int) ([]Slot, error) {
	if length < 0 {
		return nil, fmt.Errorf("window length must not be negative, got %d", length)
	}
	keys, err := utils.KeysEnding(endDay, length)
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, len(keys))
	for i, key := range keys {
		rec, ok := records[key]
		if !ok {
			rec = models.DayRecord{Day: key}
		}
		slots[i] = Slot{Day: key, Record: rec, Present: ok}
	}
	return slots, nil
}

// Summarize counts flags and proofs across slots.
func Summarize(slots []Slot) Summary {
	sum := Summary{Days: len(slots)}
	for _, slot := range slots {
		if slot.Record.EcoDone {
			sum.EcoCount++
		}
		if slot.Record.ChallengeDone {
			sum.ChallengeCount++
		}
		if slot.HasProof() {
			sum.ProofCount++
		}
		if slot.Tone() > constants.ToneNone {
			sum.ActiveDays++
		}
	}
	if sum.Days > 0 {
		sum.EcoRatio = float64(sum.EcoCount) / float64(sum.Days)
		sum.ChallengeRatio = float64(sum.ChallengeCount) / float64(sum.Days)
	}
	return sum
}
