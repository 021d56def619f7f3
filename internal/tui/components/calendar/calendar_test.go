package calendar

import (
	"strings"
	"testing"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/stats"
)

func window(t *testing.T, end string, length int, records ...models.DayRecord) []stats.Slot {
	t.Helper()
	slots, err := stats.BuildWindow(stats.Index(records), end, length)
	if err != nil {
		t.Fatalf("BuildWindow failed: %v", err)
	}
	return slots
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		tone constants.Tone
		want string
	}{
		{constants.ToneNone, glyphNone},
		{constants.ToneOne, glyphOne},
		{constants.ToneBoth, glyphBoth},
	}
	for _, tt := range tests {
		if got := Glyph(tt.tone); got != tt.want {
			t.Errorf("Glyph(%d) = %q, want %q", tt.tone, got, tt.want)
		}
	}
}

func TestCellUsesToneGlyph(t *testing.T) {
	slots := window(t, "2024-05-03", 3,
		models.DayRecord{Day: "2024-05-02", EcoDone: true},
		models.DayRecord{Day: "2024-05-03", EcoDone: true, ChallengeDone: true, EcoProofRef: models.String("file:///p.jpg")},
	)

	for i, want := range []string{glyphNone, glyphOne, glyphBoth} {
		if got := Cell(slots[i]); !strings.Contains(got, want) {
			t.Errorf("Cell(%s) = %q, want glyph %q", slots[i].Day, got, want)
		}
	}
}

func TestWeekday(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2024-05-10", "Fri"},
		{"2024-02-29", "Thu"},
		{"2024-02-30", "Fri"}, // rolls over to 2024-03-01
		{"05/10/2024", "?"},
	}
	for _, tt := range tests {
		if got := weekday(tt.day); got != tt.want {
			t.Errorf("weekday(%q) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestWeek(t *testing.T) {
	// 2024-05-10 is a Friday.
	slots := window(t, "2024-05-10", 7)
	out := Week(slots)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and body lines, got %d", len(lines))
	}
	for _, day := range []string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"} {
		if !strings.Contains(lines[0], day) {
			t.Errorf("header %q missing %s", lines[0], day)
		}
	}
	if strings.Index(lines[0], "Sat") > strings.Index(lines[0], "Fri") {
		t.Error("expected oldest day first")
	}
	if n := strings.Count(lines[1], glyphNone); n != 7 {
		t.Errorf("expected 7 empty cells, got %d", n)
	}
}

func TestGridRows(t *testing.T) {
	slots := window(t, "2024-05-10", constants.CalendarWindow)
	out := Grid(slots)

	lines := strings.Split(out, "\n")
	// 45 days is six full weeks plus three days.
	if len(lines) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "03/27") {
		t.Errorf("first row should start at 03/27, got %q", lines[0])
	}
	if n := strings.Count(lines[6], glyphNone); n != 3 {
		t.Errorf("last row should hold 3 cells, got %d", n)
	}
}

func TestGridEmpty(t *testing.T) {
	if got := Grid(nil); got != "" {
		t.Errorf("Grid(nil) = %q, want empty", got)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		ratio   float64
		full    int
		percent string
	}{
		{0, 0, "0%"},
		{0.5, 5, "50%"},
		{1, 10, "100%"},
		{1.7, 10, "100%"},
		{-1, 0, "0%"},
	}
	for _, tt := range tests {
		got := Bar(tt.ratio, 10)
		if n := strings.Count(got, "█"); n != tt.full {
			t.Errorf("Bar(%v) has %d filled cells, want %d", tt.ratio, n, tt.full)
		}
		if n := strings.Count(got, "░"); n != 10-tt.full {
			t.Errorf("Bar(%v) has %d empty cells, want %d", tt.ratio, n, 10-tt.full)
		}
		if !strings.HasSuffix(got, tt.percent) {
			t.Errorf("Bar(%v) = %q, want suffix %q", tt.ratio, got, tt.percent)
		}
	}
}
