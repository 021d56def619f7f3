package system

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/config"
	"github.com/ecolife/ecolife-cli/internal/session"
)

const testUser = "user-1"

// setupTestContext returns a context over a fresh config directory with
// a mocked keyring. The database is not initialized.
func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	gokeyring.MockInit()
	t.Setenv("ECOLIFE_USER_ID", "")

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	ctx, err := cli.NewContext(cfg)
	if err != nil {
		t.Fatalf("failed to build context: %v", err)
	}
	ctx.Session = session.Static(testUser)
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

// setupInitializedContext also initializes the database.
func setupInitializedContext(t *testing.T) *cli.Context {
	t.Helper()
	ctx := setupTestContext(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return ctx
}
