package records

import (
	"context"
	"fmt"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/utils"
	"github.com/ecolife/ecolife-cli/internal/validation"
)

// Future records are only looked for this far ahead.
const futureHorizon = 366

type ValidateCmd struct {
	Days int  `help:"How many days back to check." default:"365"`
	Fix  bool `help:"Clear dangling photo references and remove empty records."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	today := ctx.Tracker.Today()
	from, err := utils.AddDays(today, -c.Days)
	if err != nil {
		return err
	}
	to, err := utils.AddDays(today, futureHorizon)
	if err != nil {
		return err
	}
	userID, err := ctx.Records.UserID()
	if err != nil {
		return err
	}

	// Read the backend directly so malformed rows are reported too.
	bg := context.Background()
	rangeCtx, cancel := context.WithTimeout(bg, ctx.Config.RequestTimeout)
	records, err := ctx.Records.Backend().GetRange(rangeCtx, userID, from, to)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	fmt.Printf("Validating %d record(s)...\n\n", len(records))
	result := validation.New(today, ctx.Proofs).ValidateRecords(bg, records)
	fmt.Println(result.FormatReport())

	if !result.HasConflicts() {
		return nil
	}
	if !c.Fix {
		if result.Fixable() {
			fmt.Println("Run with --fix to repair what can be repaired.")
		}
		return nil
	}

	actions := validation.AutoFix(bg, result.Conflicts, ctx.Records)
	if len(actions) == 0 {
		fmt.Println("Nothing could be fixed automatically.")
		return nil
	}
	fmt.Println("Fixes applied:")
	for _, a := range actions {
		fmt.Printf("  ✓ %s\n", a.Action)
	}
	return nil
}
