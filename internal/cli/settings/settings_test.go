package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/cli/clitest"
	"github.com/ecolife/ecolife-cli/internal/config"
)

func newContext(t *testing.T) *cli.Context {
	t.Helper()
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return &cli.Context{Config: cfg}
}

func TestSettingsList(t *testing.T) {
	ctx := newContext(t)

	out, err := clitest.CaptureStdout(t, func() error {
		return (&SettingsCmd{List: true}).Run(ctx)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, want := range []string{"Timezone:              UTC", "Local Cache:", "Photo Storage:", "Directory:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Change a setting") {
		t.Error("--list should not print usage hint")
	}
}

func TestSettingsSet(t *testing.T) {
	ctx := newContext(t)

	if _, err := clitest.CaptureStdout(t, func() error {
		return (&SettingsCmd{Key: "timezone", Value: "Europe/Berlin"}).Run(ctx)
	}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(ctx.Config.Dir, "config.yaml"))
	if err != nil {
		t.Fatalf("config.yaml not written: %v", err)
	}
	if !strings.Contains(string(data), "Europe/Berlin") {
		t.Errorf("config.yaml missing new timezone:\n%s", data)
	}

	cfg, err := config.Load(ctx.Config.Dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
}

func TestSettingsSetErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
		want string
	}{
		{"missing value", SettingsCmd{Key: "timezone"}, "missing value"},
		{"unknown key", SettingsCmd{Key: "colour", Value: "green"}, "unknown setting"},
		{"invalid timezone", SettingsCmd{Key: "timezone", Value: "Mars/Olympus"}, "invalid timezone"},
		{"gcs without bucket", SettingsCmd{Key: "proofs.backend", Value: "gcs"}, "proofs.bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t)
			err := tt.cmd.Run(ctx)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
			if _, err := os.Stat(filepath.Join(ctx.Config.Dir, "config.yaml")); !os.IsNotExist(err) {
				t.Error("config.yaml must not be written on error")
			}
		})
	}
}
