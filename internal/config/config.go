package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/keyring"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

type Config struct {
	Timezone           string        `mapstructure:"timezone"`
	Backend            string        `mapstructure:"backend"` // "sqlite" or "postgres"
	Database           string        `mapstructure:"database"`
	KV                 KVConfig      `mapstructure:"kv"`
	Proofs             ProofsConfig  `mapstructure:"proofs"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	StreakLookbackDays int           `mapstructure:"streak_lookback_days"`
	Debug              bool          `mapstructure:"debug"`

	// Dir is the resolved config directory; not read from the file.
	Dir string `mapstructure:"-"`
}

// Local key-value cache
type KVConfig struct {
	Backend   string `mapstructure:"backend"` // "sqlite" or "redis"
	Path      string `mapstructure:"path"`
	RedisAddr string `mapstructure:"redis_addr"`
}

// Photo proof storage
type ProofsConfig struct {
	Backend         string `mapstructure:"backend"` // "local" or "gcs"
	Dir             string `mapstructure:"dir"`
	Bucket          string `mapstructure:"bucket"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// fileViper holds the defaults and config.yaml only, so writes never
// persist environment overrides.
func fileViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(constants.ConfigFileName)
	v.SetConfigType(constants.ConfigFileType)
	v.AddConfigPath(dir)

	v.SetDefault(constants.SettingTimezone, constants.DefaultTimezone)
	v.SetDefault(constants.SettingBackend, constants.BackendSQLite)
	v.SetDefault(constants.SettingDatabase, filepath.Join(dir, constants.DefaultDatabaseFile))
	v.SetDefault(constants.SettingKVBackend, constants.BackendSQLite)
	v.SetDefault(constants.SettingKVPath, filepath.Join(dir, constants.DefaultKVFile))
	v.SetDefault(constants.SettingKVRedisAddr, constants.DefaultRedisAddr)
	v.SetDefault(constants.SettingProofsBackend, constants.BackendLocal)
	v.SetDefault(constants.SettingProofsDir, filepath.Join(dir, constants.DefaultProofsDirName))
	v.SetDefault(constants.SettingProofsBucket, "")
	v.SetDefault(constants.SettingProofsCredentials, "")
	v.SetDefault(constants.SettingRequestTimeout, constants.DefaultRequestTimeout)
	v.SetDefault(constants.SettingStreakLookbackDays, constants.DefaultStreakLookback)
	v.SetDefault(constants.SettingDebug, false)
	return v
}

func newViper(dir string) *viper.Viper {
	v := fileViper(dir)
	// ECOLIFE_TIMEZONE, ECOLIFE_KV_BACKEND, ...
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads config.yaml from dir (if present), then applies
// ECOLIFE_* environment overrides on top of the defaults.
func Load(dir string) (*Config, error) {
	dir, err := ExpandPath(dir)
	if err != nil {
		return nil, err
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Dir = dir

	for _, p := range []*string{&cfg.Database, &cfg.KV.Path, &cfg.Proofs.Dir, &cfg.Proofs.CredentialsFile} {
		if *p, err = ExpandPath(*p); err != nil {
			return nil, err
		}
	}
	if isPostgresURL(cfg.Database) {
		cfg.Backend = constants.BackendPostgres
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteDefault writes a config.yaml with default values into dir unless
// one already exists. It returns the file path.
func WriteDefault(dir string) (string, error) {
	dir, err := ExpandPath(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filePath(dir)
	v := fileViper(dir)
	if err := v.SafeWriteConfigAs(path); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return path, nil
		}
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

func filePath(dir string) string {
	return filepath.Join(dir, constants.ConfigFileName+"."+constants.ConfigFileType)
}

// Keys lists the settings Set accepts.
var Keys = []string{
	constants.SettingTimezone,
	constants.SettingBackend,
	constants.SettingDatabase,
	constants.SettingKVBackend,
	constants.SettingKVPath,
	constants.SettingKVRedisAddr,
	constants.SettingProofsBackend,
	constants.SettingProofsDir,
	constants.SettingProofsBucket,
	constants.SettingProofsCredentials,
	constants.SettingRequestTimeout,
	constants.SettingStreakLookbackDays,
	constants.SettingDebug,
}

// Set stores one setting in dir's config.yaml, creating the file if
// needed. The resulting config must validate; nothing is written
// otherwise. It returns the file path.
func Set(dir, key, value string) (string, error) {
	if !slices.Contains(Keys, key) {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	dir, err := ExpandPath(dir)
	if err != nil {
		return "", err
	}

	v := fileViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return "", fmt.Errorf("failed to read config: %w", err)
		}
	}
	v.Set(key, value)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return "", fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if isPostgresURL(cfg.Database) {
		cfg.Backend = constants.BackendPostgres
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if key == constants.SettingDatabase && isPostgresURL(value) {
		if u, err := url.Parse(value); err == nil && u.User != nil {
			if _, hasPassword := u.User.Password(); hasPassword {
				return "", fmt.Errorf("refusing to store a password in config.yaml; use 'ecolife keyring set' instead")
			}
		}
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	path := filePath(dir)
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	switch c.Backend {
	case constants.BackendSQLite, constants.BackendPostgres:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, constants.BackendSQLite, constants.BackendPostgres)
	}
	switch c.KV.Backend {
	case constants.BackendSQLite, constants.BackendRedis:
	default:
		return fmt.Errorf("unknown kv.backend %q (want %s or %s)", c.KV.Backend, constants.BackendSQLite, constants.BackendRedis)
	}
	switch c.Proofs.Backend {
	case constants.BackendLocal:
	case constants.BackendGCS:
		if strings.TrimSpace(c.Proofs.Bucket) == "" {
			return fmt.Errorf("proofs.bucket is required when proofs.backend is %s", constants.BackendGCS)
		}
	default:
		return fmt.Errorf("unknown proofs.backend %q (want %s or %s)", c.Proofs.Backend, constants.BackendLocal, constants.BackendGCS)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.StreakLookbackDays < 0 {
		return fmt.Errorf("streak_lookback_days must not be negative, got %d", c.StreakLookbackDays)
	}
	return nil
}

func isPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// DatabaseConnection returns the PostgreSQL connection string: the
// configured value when it is one, else ECOLIFE_DB_CONNECTION, else the
// OS keyring.
func (c *Config) DatabaseConnection() (string, error) {
	if isPostgresURL(c.Database) || strings.Contains(c.Database, "host=") {
		return c.Database, nil
	}
	if env := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); env != "" {
		return env, nil
	}
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("no PostgreSQL connection string configured; set database, %s, or run 'ecolife keyring set'", constants.EnvDBConnection)
		}
		return "", err
	}
	return connStr, nil
}
