package constants

const (
	// Config keys
	SettingTimezone           = "timezone"
	SettingBackend            = "backend"
	SettingDatabase           = "database"
	SettingKVBackend          = "kv.backend"
	SettingKVPath             = "kv.path"
	SettingKVRedisAddr        = "kv.redis_addr"
	SettingProofsBackend      = "proofs.backend"
	SettingProofsDir          = "proofs.dir"
	SettingProofsBucket       = "proofs.bucket"
	SettingProofsCredentials  = "proofs.credentials_file"
	SettingRequestTimeout     = "request_timeout"
	SettingStreakLookbackDays = "streak_lookback_days"
	SettingDebug              = "debug"

	// Backend names
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendLocal    = "local"
	BackendGCS      = "gcs"

	// Default Settings Values
	DefaultTimezone      = "UTC"
	DefaultDatabaseFile  = "ecolife.db"
	DefaultKVFile        = "local.db"
	DefaultProofsDirName = "proofs"
	DefaultRedisAddr     = "localhost:6379"
	ConfigFileName       = "config"
	ConfigFileType       = "yaml"
	EnvPrefix            = "ECOLIFE"
)
