package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecolife/ecolife-cli/internal/backup"
	"github.com/ecolife/ecolife-cli/internal/config"
	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/kvstore"
	"github.com/ecolife/ecolife-cli/internal/logger"
	"github.com/ecolife/ecolife-cli/internal/proofs"
	"github.com/ecolife/ecolife-cli/internal/session"
	"github.com/ecolife/ecolife-cli/internal/storage"
	"github.com/ecolife/ecolife-cli/internal/storage/postgres"
	"github.com/ecolife/ecolife-cli/internal/storage/sqlite"
	"github.com/ecolife/ecolife-cli/internal/tracker"
)

// Context is handed to every command's Run method.
type Context struct {
	Config  *config.Config
	Store   storage.Backend
	Session session.Source

	// Set by Open
	Records *storage.Adapter
	KV      kvstore.Store
	Proofs  proofs.Store
	Tracker *tracker.Service
}

// NewContext builds the record backend named by cfg. Nothing is opened
// yet; call Open (or Store.Init for a fresh install).
func NewContext(cfg *config.Config) (*Context, error) {
	store, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	return &Context{
		Config:  cfg,
		Store:   store,
		Session: session.KeyringSource{},
	}, nil
}

// NewBackend returns the record store for cfg.Backend.
func NewBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Backend {
	case constants.BackendPostgres:
		connStr, err := cfg.DatabaseConnection()
		if err != nil {
			return nil, err
		}
		if valid, err := postgres.ValidateConnString(connStr); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed in config; use 'ecolife keyring set', %s, or .pgpass", constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(connStr), nil
	default:
		return sqlite.NewStore(cfg.Database), nil
	}
}

// Open loads the record store and wires the local cache, proof storage
// and tracker. A broken cache or proof store is logged and left unset;
// the features that use them degrade instead of failing the command.
func (c *Context) Open(ctx context.Context) error {
	// Reopening replaces the cache and proof store.
	if err := c.closeLocal(); err != nil {
		logger.Debug("Failed to close previous local stores", "error", err)
	}
	if err := c.Store.Load(); err != nil {
		return err
	}
	if c.Session == nil {
		c.Session = session.KeyringSource{}
	}
	c.Records = storage.NewAdapter(c.Store, c.Session, c.Config.RequestTimeout)

	if kv, err := OpenKV(ctx, c.Config); err != nil {
		logger.Warn("Local cache unavailable, content picks will not persist", "error", err)
	} else {
		c.KV = kv
	}

	if ps, err := OpenProofs(ctx, c.Config); err != nil {
		logger.Warn("Proof storage unavailable, photos will not be saved", "error", err)
	} else {
		c.Proofs = ps
	}

	c.Tracker = tracker.New(c.Records, c.KV, c.Proofs, tracker.Options{
		Timezone:       c.Config.Timezone,
		StreakLookback: c.Config.StreakLookbackDays,
	})
	return nil
}

// OpenKV returns the local key-value cache for cfg.KV.Backend.
func OpenKV(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	if cfg.KV.Backend == constants.BackendRedis {
		return kvstore.OpenRedis(ctx, cfg.KV.RedisAddr)
	}
	return kvstore.OpenSQLite(cfg.KV.Path)
}

// OpenProofs returns the photo store for cfg.Proofs.Backend.
func OpenProofs(ctx context.Context, cfg *config.Config) (proofs.Store, error) {
	if cfg.Proofs.Backend == constants.BackendGCS {
		return proofs.NewGCSStore(ctx, cfg.Proofs.Bucket, cfg.Proofs.CredentialsFile)
	}
	return proofs.NewLocalStore(cfg.Proofs.Dir), nil
}

// Close releases everything Open acquired.
func (c *Context) Close() error {
	err := c.closeLocal()
	if c.Store != nil {
		err = errors.Join(err, c.Store.Close())
	}
	return err
}

func (c *Context) closeLocal() error {
	var errs []error
	if c.KV != nil {
		errs = append(errs, c.KV.Close())
		c.KV = nil
	}
	if closer, ok := c.Proofs.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	c.Proofs = nil
	return errors.Join(errs...)
}

// LocalDatabase returns the SQLite file path, or "" for remote backends.
func (c *Context) LocalDatabase() string {
	if _, ok := c.Store.(*sqlite.Store); ok {
		return c.Store.GetConfigPath()
	}
	return ""
}

// PerformAutomaticBackup snapshots a local database and only logs
// failures.
func (c *Context) PerformAutomaticBackup() {
	path := c.LocalDatabase()
	if path == "" {
		return
	}
	if _, err := backup.NewManager(path).CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
