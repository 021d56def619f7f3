package insights

import (
	"context"
	"fmt"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/stats"
	"github.com/ecolife/ecolife-cli/internal/tui/components/calendar"
)

const barWidth = 20

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	ov, err := ctx.Tracker.Overview(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Today: %s\n\n", ov.Today)
	fmt.Printf("  Eco action   %s   streak %s\n", status(ov.Record.EcoDone), ov.EcoStreak)
	fmt.Printf("  Challenge    %s   streak %s\n", status(ov.Record.ChallengeDone), ov.ChallengeStreak)
	if ov.Record.ChallengeNote != nil {
		fmt.Printf("  Note: %s\n", *ov.Record.ChallengeNote)
	}
	fmt.Println()
	fmt.Println(calendar.Week(ov.Week))
	fmt.Println()
	fmt.Printf("Tip of the day: %s\n  %s\n", ov.Tip.Title, ov.Tip.Body)
	return nil
}

func status(done bool) string {
	if done {
		return "✓ done"
	}
	return "○ open"
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	eco, challenge, err := ctx.Tracker.Streaks(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Eco streak:       %s day(s)\n", eco)
	fmt.Printf("Challenge streak: %s day(s)\n", challenge)
	if eco.Capped || challenge.Capped {
		fmt.Printf("\n+ means the streak reaches past the %d-day lookback (streak_lookback_days).\n", ctx.Config.StreakLookbackDays)
	}
	return nil
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	slots, sum, err := ctx.Tracker.Window(context.Background(), constants.WeekWindow)
	if err != nil {
		return err
	}
	fmt.Println("Last 7 days")
	fmt.Println()
	fmt.Println(calendar.Week(slots))
	fmt.Println()
	printSummary(slots, sum)
	return nil
}

type CalendarCmd struct {
	Days int `help:"Number of days to show, ending today." default:"45"`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive, got %d", c.Days)
	}
	slots, sum, err := ctx.Tracker.Window(context.Background(), c.Days)
	if err != nil {
		return err
	}
	fmt.Printf("Last %d days\n\n", c.Days)
	fmt.Println(calendar.Grid(slots))
	fmt.Println()
	fmt.Println(calendar.Legend())
	fmt.Println()
	printSummary(slots, sum)
	return nil
}

func printSummary(slots []stats.Slot, sum stats.Summary) {
	fmt.Printf("  Eco        %s  %d/%d\n", calendar.Bar(sum.EcoRatio, barWidth), sum.EcoCount, sum.Days)
	fmt.Printf("  Challenge  %s  %d/%d\n", calendar.Bar(sum.ChallengeRatio, barWidth), sum.ChallengeCount, sum.Days)
	fmt.Printf("  Active days: %d   With photo: %d   Best eco run: %d\n",
		sum.ActiveDays, sum.ProofCount, stats.LongestRun(slots, constants.FlagEco))
}
