package stats

import (
	"testing"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/models"
)

func records(rs ...models.DayRecord) map[string]models.DayRecord {
	return Index(rs)
}

func TestCurrentStreak(t *testing.T) {
	today := "2024-05-10"

	tests := []struct {
		name    string
		today   string
		records map[string]models.DayRecord
		flag    constants.Flag
		limit   int
		want    Streak
	}{
		{
			name:    "empty record set",
			records: records(),
			flag:    constants.FlagEco,
			want:    Streak{},
		},
		{
			name: "run broken two days back",
			records: records(
				models.DayRecord{Day: "2024-05-10", EcoDone: true},
				models.DayRecord{Day: "2024-05-09", EcoDone: true},
				models.DayRecord{Day: "2024-05-08", EcoDone: false},
				models.DayRecord{Day: "2024-05-07", EcoDone: true},
			),
			flag: constants.FlagEco,
			want: Streak{Days: 2},
		},
		{
			name: "today missing flag",
			records: records(
				models.DayRecord{Day: "2024-05-10", ChallengeDone: true},
				models.DayRecord{Day: "2024-05-09", EcoDone: true},
			),
			flag: constants.FlagEco,
			want: Streak{},
		},
		{
			name: "gap in sparse records breaks run",
			records: records(
				models.DayRecord{Day: "2024-05-10", EcoDone: true},
				models.DayRecord{Day: "2024-05-08", EcoDone: true},
			),
			flag: constants.FlagEco,
			want: Streak{Days: 1},
		},
		{
			name: "challenge flag is independent",
			records: records(
				models.DayRecord{Day: "2024-05-10", EcoDone: true, ChallengeDone: true},
				models.DayRecord{Day: "2024-05-09", EcoDone: true, ChallengeDone: true},
				models.DayRecord{Day: "2024-05-08", EcoDone: true},
			),
			flag: constants.FlagChallenge,
			want: Streak{Days: 2},
		},
		{
			name:  "crosses month boundary",
			today: "2024-03-01",
			records: records(
				models.DayRecord{Day: "2024-03-01", EcoDone: true},
				models.DayRecord{Day: "2024-02-29", EcoDone: true},
				models.DayRecord{Day: "2024-02-28", EcoDone: true},
			),
			flag: constants.FlagEco,
			want: Streak{Days: 3},
		},
		{
			name: "capped at limit",
			records: records(
				models.DayRecord{Day: "2024-05-10", EcoDone: true},
				models.DayRecord{Day: "2024-05-09", EcoDone: true},
				models.DayRecord{Day: "2024-05-08", EcoDone: true},
			),
			flag:  constants.FlagEco,
			limit: 2,
			want:  Streak{Days: 2, Capped: true},
		},
		{
			name: "run exactly at limit is exact",
			records: records(
				models.DayRecord{Day: "2024-05-10", EcoDone: true},
				models.DayRecord{Day: "2024-05-09", EcoDone: true},
				models.DayRecord{Day: "2024-05-08", ChallengeDone: true},
			),
			flag:  constants.FlagEco,
			limit: 2,
			want:  Streak{Days: 2},
		},
		{
			name: "run at limit with no record beyond",
			records: records(
				models.DayRecord{Day: "2024-05-10", EcoDone: true},
				models.DayRecord{Day: "2024-05-09", EcoDone: true},
			),
			flag:  constants.FlagEco,
			limit: 2,
			want:  Streak{Days: 2},
		},
		{
			name: "run shorter than limit is exact",
			records: records(
				models.DayRecord{Day: "2024-05-10", EcoDone: true},
			),
			flag:  constants.FlagEco,
			limit: 90,
			want:  Streak{Days: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := today
			if tt.today != "" {
				day = tt.today
			}
			got := CurrentStreak(tt.records, tt.flag, day, tt.limit)
			if got != tt.want {
				t.Errorf("CurrentStreak() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStreakString(t *testing.T) {
	if got := (Streak{Days: 12}).String(); got != "12" {
		t.Errorf("String() = %q, want %q", got, "12")
	}
	if got := (Streak{Days: 90, Capped: true}).String(); got != "90+" {
		t.Errorf("String() = %q, want %q", got, "90+")
	}
}

func TestLongestRun(t *testing.T) {
	recs := records(
		models.DayRecord{Day: "2024-05-01", EcoDone: true},
		models.DayRecord{Day: "2024-05-02", EcoDone: true},
		models.DayRecord{Day: "2024-05-03", EcoDone: true},
		models.DayRecord{Day: "2024-05-05", EcoDone: true},
	)
	slots, err := BuildWindow(recs, "2024-05-06", 7)
	if err != nil {
		t.Fatalf("BuildWindow() error = %v", err)
	}
	if got := LongestRun(slots, constants.FlagEco); got != 3 {
		t.Errorf("LongestRun() = %d, want 3", got)
	}
	if got := LongestRun(slots, constants.FlagChallenge); got != 0 {
		t.Errorf("LongestRun(challenge) = %d, want 0", got)
	}
}
