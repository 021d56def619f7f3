package settings

import (
	"fmt"
	"strings"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/config"
	"github.com/ecolife/ecolife-cli/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Key   string `arg:"" optional:"" help:"Setting to change, e.g. timezone or kv.backend."`
	Value string `arg:"" optional:"" help:"New value."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.List || c.Key == "" {
		printSettings(ctx.Config)
		if !c.List {
			fmt.Printf("\nChange a setting with: ecolife settings <key> <value>\nKeys: %s\n", strings.Join(config.Keys, ", "))
		}
		return nil
	}

	if c.Value == "" {
		return fmt.Errorf("missing value for %s", c.Key)
	}
	path, err := config.Set(ctx.Config.Dir, c.Key, c.Value)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Printf("Settings updated successfully: %s = %s\n", c.Key, c.Value)
	fmt.Printf("Written to: %s\n", path)
	return nil
}

func printSettings(cfg *config.Config) {
	fmt.Println("Current Settings:")
	fmt.Printf("  Timezone:              %s\n", cfg.Timezone)
	fmt.Printf("  Backend:               %s\n", cfg.Backend)
	fmt.Printf("  Database:              %s\n", cfg.Database)
	fmt.Printf("  Request Timeout:       %s\n", cfg.RequestTimeout)
	fmt.Printf("  Streak Lookback:       %d days\n", cfg.StreakLookbackDays)
	fmt.Printf("  Debug:                 %v\n", cfg.Debug)

	fmt.Println("\nLocal Cache:")
	fmt.Printf("  Backend:               %s\n", cfg.KV.Backend)
	if cfg.KV.Backend == constants.BackendRedis {
		fmt.Printf("  Redis Address:         %s\n", cfg.KV.RedisAddr)
	} else {
		fmt.Printf("  Path:                  %s\n", cfg.KV.Path)
	}

	fmt.Println("\nPhoto Storage:")
	fmt.Printf("  Backend:               %s\n", cfg.Proofs.Backend)
	if cfg.Proofs.Backend == constants.BackendGCS {
		fmt.Printf("  Bucket:                %s\n", cfg.Proofs.Bucket)
		if cfg.Proofs.CredentialsFile != "" {
			fmt.Printf("  Credentials:           %s\n", cfg.Proofs.CredentialsFile)
		}
	} else {
		fmt.Printf("  Directory:             %s\n", cfg.Proofs.Dir)
	}
}
