package learn

import (
	"strings"
	"testing"

	"github.com/ecolife/ecolife-cli/internal/cli/clitest"
	"github.com/ecolife/ecolife-cli/internal/content"
	"github.com/ecolife/ecolife-cli/internal/rotation"
)

func TestTipCmdStableForDay(t *testing.T) {
	ctx := clitest.NewContext(t)

	first, err := clitest.CaptureStdout(t, func() error {
		return (&TipCmd{}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("tip failed: %v", err)
	}
	second, err := clitest.CaptureStdout(t, func() error {
		return (&TipCmd{}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("tip failed: %v", err)
	}
	if first != second {
		t.Errorf("tip changed within a day:\n%s\n---\n%s", first, second)
	}
}

func TestTipCmdOtherDay(t *testing.T) {
	ctx := clitest.NewContext(t)
	const day = "2024-01-01"

	out, err := clitest.CaptureStdout(t, func() error {
		return (&TipCmd{Date: day}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("tip failed: %v", err)
	}
	want := content.Tip(rotation.PickOfDay(len(content.Tips()), day, 0, false))
	if !strings.Contains(out, want.Title) {
		t.Errorf("expected tip %q:\n%s", want.Title, out)
	}

	if err := (&TipCmd{Date: "tomorrow"}).Run(ctx); err == nil {
		t.Error("expected error for a malformed date")
	}
}

func TestFactsNextAndLast(t *testing.T) {
	ctx := clitest.NewContext(t)

	out, err := clitest.CaptureStdout(t, func() error {
		return (&FactsLastCmd{}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("facts last failed: %v", err)
	}
	if !strings.Contains(out, "No facts shown yet") {
		t.Errorf("unexpected output before any batch: %q", out)
	}

	next, err := clitest.CaptureStdout(t, func() error {
		return (&FactsNextCmd{}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("facts next failed: %v", err)
	}
	if n := strings.Count(next, "• "); n != 3 {
		t.Errorf("expected 3 facts, got %d:\n%s", n, next)
	}

	last, err := clitest.CaptureStdout(t, func() error {
		return (&FactsLastCmd{}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("facts last failed: %v", err)
	}
	if last != next {
		t.Errorf("facts last should repeat the previous batch:\n%s\n---\n%s", next, last)
	}
}

func TestFactsReset(t *testing.T) {
	ctx := clitest.NewContext(t)

	if _, err := clitest.CaptureStdout(t, func() error {
		return (&FactsNextCmd{}).Run(ctx)
	}); err != nil {
		t.Fatalf("facts next failed: %v", err)
	}

	out, err := clitest.CaptureStdout(t, func() error {
		return (&FactsResetCmd{}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("facts reset failed: %v", err)
	}
	if !strings.Contains(out, "Facts reset") {
		t.Errorf("unexpected reset output: %q", out)
	}

	last, err := clitest.CaptureStdout(t, func() error {
		return (&FactsLastCmd{}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("facts last failed: %v", err)
	}
	if !strings.Contains(last, "No facts shown yet") {
		t.Errorf("expected an empty history after reset:\n%s", last)
	}
}

func TestTipCmdTimestampDate(t *testing.T) {
	ctx := clitest.NewContext(t)

	byKey, err := clitest.CaptureStdout(t, func() error {
		return (&TipCmd{Date: "2024-01-01"}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("tip failed: %v", err)
	}
	byStamp, err := clitest.CaptureStdout(t, func() error {
		return (&TipCmd{Date: "2024-01-01T12:00:00Z"}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("tip failed: %v", err)
	}
	if byKey != byStamp {
		t.Errorf("timestamp should resolve to the same day:\n%s\n---\n%s", byKey, byStamp)
	}
}
