package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ecolife/ecolife-cli/internal/constants"
	gokeyring "github.com/zalando/go-keyring"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, constants.DefaultTimezone)
	}
	if cfg.Backend != constants.BackendSQLite {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.Database != filepath.Join(dir, constants.DefaultDatabaseFile) {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.KV.Backend != constants.BackendSQLite || cfg.KV.Path != filepath.Join(dir, constants.DefaultKVFile) {
		t.Errorf("KV = %+v", cfg.KV)
	}
	if cfg.Proofs.Backend != constants.BackendLocal || cfg.Proofs.Dir != filepath.Join(dir, constants.DefaultProofsDirName) {
		t.Errorf("Proofs = %+v", cfg.Proofs)
	}
	if cfg.RequestTimeout != constants.DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.StreakLookbackDays != constants.DefaultStreakLookback {
		t.Errorf("StreakLookbackDays = %d", cfg.StreakLookbackDays)
	}
	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `timezone: Europe/Berlin
request_timeout: 3s
streak_lookback_days: 30
kv:
  backend: redis
  redis_addr: cache:6379
proofs:
  backend: gcs
  bucket: eco-proofs
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.StreakLookbackDays != 30 {
		t.Errorf("StreakLookbackDays = %d, want 30", cfg.StreakLookbackDays)
	}
	if cfg.KV.Backend != constants.BackendRedis || cfg.KV.RedisAddr != "cache:6379" {
		t.Errorf("KV = %+v", cfg.KV)
	}
	if cfg.Proofs.Backend != constants.BackendGCS || cfg.Proofs.Bucket != "eco-proofs" {
		t.Errorf("Proofs = %+v", cfg.Proofs)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ECOLIFE_TIMEZONE", "America/New_York")
	t.Setenv("ECOLIFE_KV_BACKEND", "redis")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q, want env override", cfg.Timezone)
	}
	if cfg.KV.Backend != constants.BackendRedis {
		t.Errorf("KV.Backend = %q, want env override", cfg.KV.Backend)
	}
}

func TestLoadDetectsPostgres(t *testing.T) {
	t.Setenv("ECOLIFE_DATABASE", "postgres://eco@localhost:5432/eco")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend != constants.BackendPostgres {
		t.Errorf("Backend = %q, want postgres", cfg.Backend)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad timezone", "timezone: Mars/Olympus\n", "timezone"},
		{"bad backend", "backend: mongo\n", "backend"},
		{"bad kv backend", "kv:\n  backend: memcached\n", "kv.backend"},
		{"gcs without bucket", "proofs:\n  backend: gcs\n", "proofs.bucket"},
		{"zero timeout", "request_timeout: 0s\n", "request_timeout"},
		{"negative lookback", "streak_lookback_days: -1\n", "streak_lookback_days"},
		{"malformed yaml", "timezone: [\n", "failed to read config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.content), 0600); err != nil {
				t.Fatalf("WriteFile() failed: %v", err)
			}
			_, err := Load(dir)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ecolife")

	path, err := WriteDefault(dir)
	if err != nil {
		t.Fatalf("WriteDefault() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	// Existing files are left alone.
	if err := os.WriteFile(path, []byte("timezone: Asia/Tokyo\n"), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := WriteDefault(dir); err != nil {
		t.Fatalf("second WriteDefault() failed: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone = %q, existing config was overwritten", cfg.Timezone)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := map[string]string{
		"~":               home,
		"~/.config/eco":   filepath.Join(home, ".config/eco"),
		"/abs/path":       "/abs/path",
		"relative/~/path": "relative/~/path",
	}
	for in, want := range tests {
		got, err := ExpandPath(in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("ExpandPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDatabaseConnection(t *testing.T) {
	gokeyring.MockInit()

	cfg := &Config{Database: "postgres://eco@db/eco"}
	if got, err := cfg.DatabaseConnection(); err != nil || got != "postgres://eco@db/eco" {
		t.Errorf("DatabaseConnection() = %q, %v", got, err)
	}

	cfg = &Config{Database: "/tmp/ecolife.db"}
	t.Setenv(constants.EnvDBConnection, "")
	if _, err := cfg.DatabaseConnection(); err == nil {
		t.Error("DatabaseConnection() without any source should fail")
	}

	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, "postgres://kr@db/eco"); err != nil {
		t.Fatalf("keyring Set failed: %v", err)
	}
	if got, err := cfg.DatabaseConnection(); err != nil || got != "postgres://kr@db/eco" {
		t.Errorf("DatabaseConnection() from keyring = %q, %v", got, err)
	}

	t.Setenv(constants.EnvDBConnection, "postgres://env@db/eco")
	if got, err := cfg.DatabaseConnection(); err != nil || got != "postgres://env@db/eco" {
		t.Errorf("DatabaseConnection() from env = %q, %v", got, err)
	}
}

func TestSet(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		key, value string
		check      func(*Config) bool
	}{
		{constants.SettingTimezone, "Asia/Tokyo", func(c *Config) bool { return c.Timezone == "Asia/Tokyo" }},
		{constants.SettingRequestTimeout, "7s", func(c *Config) bool { return c.RequestTimeout == 7*time.Second }},
		{constants.SettingStreakLookbackDays, "90", func(c *Config) bool { return c.StreakLookbackDays == 90 }},
		{constants.SettingKVRedisAddr, "cache:6380", func(c *Config) bool { return c.KV.RedisAddr == "cache:6380" }},
	}
	for _, tt := range tests {
		if _, err := Set(dir, tt.key, tt.value); err != nil {
			t.Fatalf("Set(%s) failed: %v", tt.key, err)
		}
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	for _, tt := range tests {
		if !tt.check(cfg) {
			t.Errorf("%s was not persisted as %q", tt.key, tt.value)
		}
	}
}

func TestSetDoesNotPersistEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ECOLIFE_TIMEZONE", "Europe/Paris")

	path, err := Set(dir, constants.SettingStreakLookbackDays, "10")
	if err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Europe/Paris") {
		t.Errorf("environment override leaked into config file:\n%s", data)
	}
}

func TestSetRejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown key", "colour", "green"},
		{"bad timezone", constants.SettingTimezone, "Nowhere/Town"},
		{"bad duration", constants.SettingRequestTimeout, "soon"},
		{"negative lookback", constants.SettingStreakLookbackDays, "-1"},
		{"password in database", constants.SettingDatabase, "postgres://eco:secret@db/ecolife"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if _, err := Set(dir, tt.key, tt.value); err == nil {
				t.Errorf("Set(%s, %q) succeeded, want error", tt.key, tt.value)
			}
			if _, err := os.Stat(filepath.Join(dir, "config.yaml")); !os.IsNotExist(err) {
				t.Error("config.yaml must not be written on error")
			}
		})
	}
}
