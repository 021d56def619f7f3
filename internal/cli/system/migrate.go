package system

import (
	"fmt"

	"github.com/ecolife/ecolife-cli/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version; apply nothing."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if c.Status {
		current, latest, err := ctx.Store.SchemaVersion()
		if err != nil {
			return err
		}
		fmt.Printf("Schema version: %d (latest %d)\n", current, latest)
		if current < latest {
			fmt.Printf("%d migration(s) pending. Run 'ecolife migrate' to apply.\n", latest-current)
		}
		return nil
	}

	count, err := ctx.Store.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
