package learn

import (
	"context"
	"fmt"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/models"
)

type TipCmd struct {
	Date string `help:"Show the tip for another day (YYYY-MM-DD or RFC 3339)."`
}

func (c *TipCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Tracker.Resolve(c.Date)
	if err != nil {
		return err
	}
	idx, tip := ctx.Tracker.TipOfDay(context.Background(), day)
	fmt.Printf("Tip for %s (#%d)\n\n", day, idx+1)
	fmt.Printf("%s\n  %s\n", tip.Title, tip.Body)
	return nil
}

type FactsNextCmd struct{}

func (c *FactsNextCmd) Run(ctx *cli.Context) error {
	printFacts(ctx.Tracker.NextFacts(context.Background()))
	return nil
}

type FactsLastCmd struct{}

func (c *FactsLastCmd) Run(ctx *cli.Context) error {
	facts, ok := ctx.Tracker.LastFacts(context.Background())
	if !ok {
		fmt.Println("No facts shown yet. Run 'ecolife facts next'.")
		return nil
	}
	printFacts(facts)
	return nil
}

type FactsResetCmd struct{}

func (c *FactsResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.ResetFacts(context.Background()); err != nil {
		return fmt.Errorf("failed to reset facts: %w", err)
	}
	fmt.Println("Facts reset. Every fact is back in the rotation.")
	return nil
}

func printFacts(facts []models.Fact) {
	fmt.Println("Recycling facts")
	for _, f := range facts {
		fmt.Printf("\n• %s\n", f.Text)
		if f.Source != "" {
			fmt.Printf("  (%s)\n", f.Source)
		}
	}
}
