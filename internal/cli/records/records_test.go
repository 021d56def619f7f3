package records

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecolife/ecolife-cli/internal/cli/clitest"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

func TestEcoMarkAndUndo(t *testing.T) {
	ctx := clitest.NewContext(t)
	bg := context.Background()

	out, err := clitest.CaptureStdout(t, func() error {
		return (&EcoMarkCmd{}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("eco mark failed: %v", err)
	}
	if !strings.Contains(out, "Eco action marked for "+ctx.Tracker.Today()) {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "streak: 1 day(s)") {
		t.Errorf("expected streak in output: %q", out)
	}

	rec, found, err := ctx.Tracker.Day(bg, "")
	if err != nil || !found || !rec.EcoDone {
		t.Fatalf("Day() = %+v, %v, %v; want eco done", rec, found, err)
	}

	if err := (&EcoMarkCmd{Undo: true}).Run(ctx); err != nil {
		t.Fatalf("eco undo failed: %v", err)
	}
	rec, _, err = ctx.Tracker.Day(bg, "")
	if err != nil {
		t.Fatal(err)
	}
	if rec.EcoDone {
		t.Error("eco mark was not cleared")
	}
}

func TestEcoMarkPastDay(t *testing.T) {
	ctx := clitest.NewContext(t)
	yesterday, err := utils.AddDays(ctx.Tracker.Today(), -1)
	if err != nil {
		t.Fatal(err)
	}

	out, err := clitest.CaptureStdout(t, func() error {
		return (&EcoMarkCmd{Date: yesterday}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("eco mark failed: %v", err)
	}
	// Streaks are only reported when marking today.
	if strings.Contains(out, "streak") {
		t.Errorf("unexpected streak line for a past day: %q", out)
	}

	if _, found, err := ctx.Tracker.Day(context.Background(), yesterday); err != nil || !found {
		t.Errorf("record for %s not stored: found=%v err=%v", yesterday, found, err)
	}
}

func TestEcoMarkInvalidDate(t *testing.T) {
	ctx := clitest.NewContext(t)
	if err := (&EcoMarkCmd{Date: "May 1"}).Run(ctx); err == nil {
		t.Error("expected error for a malformed date")
	}
}

func TestChallengeMarkWithNoteAndProof(t *testing.T) {
	ctx := clitest.NewContext(t)

	photo := filepath.Join(t.TempDir(), "bin.JPG")
	if err := os.WriteFile(photo, []byte("jpeg"), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := clitest.CaptureStdout(t, func() error {
		return (&ChallengeMarkCmd{Note: "sorted the recycling", Proof: photo}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("challenge mark failed: %v", err)
	}
	if !strings.Contains(out, "Photo saved: file://") {
		t.Errorf("expected photo ref in output: %q", out)
	}

	rec, _, err := ctx.Tracker.Day(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if !rec.ChallengeDone || rec.ChallengeNote == nil || *rec.ChallengeNote != "sorted the recycling" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.ChallengeProofRef == nil || !strings.HasSuffix(*rec.ChallengeProofRef, ".jpg") {
		t.Errorf("expected a .jpg proof ref, got %v", rec.ChallengeProofRef)
	}
	if rec.EcoDone {
		t.Error("challenge mark must not touch eco_done")
	}
}

func TestMarkDegradesWithoutPhoto(t *testing.T) {
	ctx := clitest.NewContext(t)

	out, err := clitest.CaptureStdout(t, func() error {
		return (&EcoMarkCmd{Proof: filepath.Join(t.TempDir(), "missing.png")}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("eco mark should succeed without the photo: %v", err)
	}
	if !strings.Contains(out, "Saved without photo") {
		t.Errorf("expected degrade warning: %q", out)
	}

	rec, _, err := ctx.Tracker.Day(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if !rec.EcoDone || rec.EcoProofRef != nil {
		t.Errorf("expected eco done without proof, got %+v", rec)
	}
}

func TestHistoryList(t *testing.T) {
	ctx := clitest.NewContext(t)

	out, err := clitest.CaptureStdout(t, func() error {
		return (&HistoryListCmd{Days: 7}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	if !strings.Contains(out, "No activity") {
		t.Errorf("expected empty message: %q", out)
	}

	older, _ := utils.AddDays(ctx.Tracker.Today(), -2)
	if err := (&EcoMarkCmd{Date: older}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ChallengeMarkCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	out, err = clitest.CaptureStdout(t, func() error {
		return (&HistoryListCmd{Days: 7}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	today := strings.Index(out, ctx.Tracker.Today())
	past := strings.Index(out, older)
	if today == -1 || past == -1 || today > past {
		t.Errorf("expected both days, newest first: %q", out)
	}
}

func TestHistoryDelete(t *testing.T) {
	ctx := clitest.NewContext(t)
	bg := context.Background()
	today := ctx.Tracker.Today()

	if err := (&EcoMarkCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	t.Run("declined", func(t *testing.T) {
		asked := clitest.StubConfirm(t, false)
		if err := (&HistoryDeleteCmd{Day: today}).Run(ctx); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if *asked != 1 {
			t.Errorf("expected one prompt, got %d", *asked)
		}
		if _, found, _ := ctx.Tracker.Day(bg, today); !found {
			t.Error("declined delete removed the record")
		}
	})

	t.Run("confirmed with --yes", func(t *testing.T) {
		asked := clitest.StubConfirm(t, false)
		if err := (&HistoryDeleteCmd{Day: today, Yes: true}).Run(ctx); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if *asked != 0 {
			t.Errorf("--yes should skip the prompt, asked %d times", *asked)
		}
		if _, found, _ := ctx.Tracker.Day(bg, today); found {
			t.Error("record still present after delete")
		}
	})

	t.Run("missing record", func(t *testing.T) {
		clitest.StubConfirm(t, true)
		out, err := clitest.CaptureStdout(t, func() error {
			return (&HistoryDeleteCmd{Day: today}).Run(ctx)
		})
		if err != nil {
			t.Fatalf("delete of a missing record failed: %v", err)
		}
		if !strings.Contains(out, "No record") {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("invalid day", func(t *testing.T) {
		if err := (&HistoryDeleteCmd{Day: "2024/05/01", Yes: true}).Run(ctx); err == nil {
			t.Error("expected error for a malformed day")
		}
	})
}
