// Package stats computes streaks and trailing-window summaries over a
// sparse set of day records. Everything here is pure: callers fetch a
// bounded range once and pass it in.
package stats

import (
	"strconv"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

// Streak is the length of an unbroken run of flagged days ending today.
type Streak struct {
	Days int
	// Capped means the run continues past the lookback limit, so the
	// true streak is longer than Days.
	Capped bool
}

// String renders the streak, with a "+" when it was capped.
func (s Streak) String() string {
	if s.Capped {
		return strconv.Itoa(s.Days) + "+"
	}
	return strconv.Itoa(s.Days)
}

// Index keys records by day. Later duplicates win.
func Index(records []models.DayRecord) map[string]models.DayRecord {
	m := make(map[string]models.DayRecord, len(records))
	for _, r := range records {
		m[r.Day] = r
	}
	return m
}

// CurrentStreak walks back from today while flag is set. At most limit
// days are counted; limit <= 0 walks until the first gap. The day just
// before the limit is peeked so records must cover limit+1 days.
func CurrentStreak(records map[string]models.DayRecord, flag constants.Flag, today string, limit int) Streak {
	var s Streak
	day := today
	for limit <= 0 || s.Days < limit {
		rec, ok := records[day]
		if !ok || !rec.Has(flag) {
			return s
		}
		s.Days++
		prev, err := utils.AddDays(day, -1)
		if err != nil {
			return s
		}
		day = prev
	}
	rec, ok := records[day]
	s.Capped = ok && rec.Has(flag)
	return s
}

// LongestRun returns the longest run of consecutive flagged slots.
func LongestRun(slots []Slot, flag constants.Flag) int {
	best, run := 0, 0
	for _, slot := range slots {
		if slot.Record.Has(flag) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}
