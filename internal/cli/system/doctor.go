package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecolife/ecolife-cli/internal/backup"
	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/keyring"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/session"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

type DoctorCmd struct{}

// check is one diagnostic. Warnings are reported but do not fail the run.
type check struct {
	name    string
	warning bool
	needsDB bool
	run     func(context.Context, *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warning: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", warning: true, run: checkKeyring},
	{name: "Session", warning: true, run: checkSession},
	{name: "Local cache", warning: true, run: checkLocalCache},
	{name: "Proof storage", warning: true, run: checkProofStorage},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	fmt.Println("Running diagnostics...")
	fmt.Printf("Database: %s\n\n", redactQuery(ctx.Store.GetConfigPath()))

	hasError := false
	dbReachable := false

	if err := checkDBReachable(bg, ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(bg, ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(bg context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(bg, ctx.Config.RequestTimeout)
	defer cancel()
	if err := ctx.Store.Ping(pingCtx); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(_ context.Context, ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(_ context.Context, ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(_ context.Context, ctx *cli.Context) error {
	dbPath := ctx.LocalDatabase()
	if dbPath == "" {
		return fmt.Errorf("backups are managed by your PostgreSQL server")
	}
	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'ecolife backup create'")
	}
	return nil
}

func checkClockTimezone(_ context.Context, ctx *cli.Context) error {
	now, err := utils.NowInTimezone(ctx.Config.Timezone)
	if err != nil {
		return fmt.Errorf("falling back to local time: %w", err)
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(_ context.Context, _ *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkSession(_ context.Context, ctx *cli.Context) error {
	src := ctx.Session
	if src == nil {
		src = session.KeyringSource{}
	}
	if _, err := src.UserID(); err != nil {
		return fmt.Errorf("%w - use 'ecolife login' to sign in", err)
	}
	return nil
}

// checkLocalCache writes and reads back a sample value.
func checkLocalCache(bg context.Context, ctx *cli.Context) error {
	kv, err := cli.OpenKV(bg, ctx.Config)
	if err != nil {
		return err
	}
	defer kv.Close()

	const sampleKey = "doctor_check"
	want := models.TipPick{Day: utils.ToKey(time.Now(), nil), Index: 1}
	if err := kv.Set(bg, sampleKey, want); err != nil {
		return err
	}
	var got models.TipPick
	found, err := kv.Get(bg, sampleKey, &got)
	if err != nil {
		return err
	}
	if !found || got != want {
		return errors.New("sample value did not round-trip")
	}
	return kv.Delete(bg, sampleKey)
}

func checkProofStorage(bg context.Context, ctx *cli.Context) error {
	ps, err := cli.OpenProofs(bg, ctx.Config)
	if err != nil {
		return err
	}
	if closer, ok := ps.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
