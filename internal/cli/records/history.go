package records

import (
	"context"
	"fmt"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/models"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

type HistoryListCmd struct {
	Days int `help:"How many days back to list." default:"30"`
}

func (c *HistoryListCmd) Run(ctx *cli.Context) error {
	records, err := ctx.Tracker.History(context.Background(), c.Days)
	if err != nil {
		return err
	}

	days := c.Days
	if days <= 0 {
		days = constants.DefaultHistoryDays
	}
	if len(records) == 0 {
		fmt.Printf("No activity in the last %d days.\n", days)
		return nil
	}

	fmt.Printf("%-10s  %-3s  %-9s  %-5s  %s\n", "DAY", "ECO", "CHALLENGE", "PHOTO", "NOTE")
	for _, r := range records {
		note := ""
		if r.ChallengeNote != nil {
			note = *r.ChallengeNote
		}
		photo := ""
		if r.HasProof() {
			photo = "yes"
		}
		fmt.Printf("%-10s  %-3s  %-9s  %-5s  %s\n", r.Day, tick(r.EcoDone), tick(r.ChallengeDone), photo, note)
	}
	fmt.Printf("\n%d day(s) with records in the last %d days.\n", len(records), days)
	return nil
}

func tick(b bool) string {
	if b {
		return "✓"
	}
	return "·"
}

type HistoryDeleteCmd struct {
	Day string `arg:"" help:"Day to delete (YYYY-MM-DD)."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HistoryDeleteCmd) Run(ctx *cli.Context) error {
	if !utils.IsValidKey(c.Day) {
		return fmt.Errorf("invalid day %q, expected YYYY-MM-DD", c.Day)
	}

	bg := context.Background()
	rec, found, err := ctx.Tracker.Day(bg, c.Day)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("No record for %s.\n", c.Day)
		return nil
	}

	if !c.Yes {
		ok, err := cli.Confirm(
			fmt.Sprintf("Delete the record for %s?", c.Day),
			describe(rec)+"\nThis cannot be undone.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Tracker.Delete(bg, c.Day); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted record for %s\n", c.Day)
	return nil
}

func describe(r models.DayRecord) string {
	s := fmt.Sprintf("Eco %s  Challenge %s", tick(r.EcoDone), tick(r.ChallengeDone))
	if r.HasProof() {
		s += "  (photo attached)"
	}
	return s
}
