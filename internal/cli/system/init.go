package system

import (
	"fmt"
	"os"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/config"
)

type InitCmd struct {
	Force bool `help:"Delete an existing local database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	cfgPath, err := config.WriteDefault(ctx.Config.Dir)
	if err != nil {
		return err
	}
	fmt.Printf("Config file: %s\n", cfgPath)

	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ecolife storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

// reset removes the local database file. Remote databases are never
// dropped.
func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.LocalDatabase()
	if dbPath == "" {
		return fmt.Errorf("--force only applies to the local SQLite database")
	}
	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
