package records

import (
	"context"
	"fmt"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/tracker"
)

type EcoMarkCmd struct {
	Date  string `help:"Day to mark (YYYY-MM-DD). Defaults to today."`
	Undo  bool   `help:"Clear the mark instead of setting it."`
	Proof string `help:"Photo to attach as proof." type:"path"`
}

func (c *EcoMarkCmd) Run(ctx *cli.Context) error {
	return mark(ctx, tracker.MarkRequest{
		Day:       c.Date,
		Kind:      constants.ProofEco,
		Done:      !c.Undo,
		ProofPath: c.Proof,
	})
}

type ChallengeMarkCmd struct {
	Date  string `help:"Day to mark (YYYY-MM-DD). Defaults to today."`
	Undo  bool   `help:"Clear the mark instead of setting it."`
	Note  string `help:"Short note about how the challenge went."`
	Proof string `help:"Photo to attach as proof." type:"path"`
}

func (c *ChallengeMarkCmd) Run(ctx *cli.Context) error {
	req := tracker.MarkRequest{
		Day:       c.Date,
		Kind:      constants.ProofChallenge,
		Done:      !c.Undo,
		ProofPath: c.Proof,
	}
	if c.Note != "" {
		req.Note = &c.Note
	}
	return mark(ctx, req)
}

func label(kind constants.ProofKind) string {
	if kind == constants.ProofChallenge {
		return "Challenge"
	}
	return "Eco action"
}

func mark(ctx *cli.Context, req tracker.MarkRequest) error {
	bg := context.Background()
	res, err := ctx.Tracker.Mark(bg, req)
	if err != nil {
		return err
	}

	if req.Done {
		fmt.Printf("✓ %s marked for %s\n", label(req.Kind), res.Record.Day)
	} else {
		fmt.Printf("○ %s cleared for %s\n", label(req.Kind), res.Record.Day)
	}
	if res.ProofRef != "" {
		fmt.Printf("  Photo saved: %s\n", res.ProofRef)
	}
	if res.ProofErr != nil {
		fmt.Printf("⚠ Saved without photo: %v\n", res.ProofErr)
	}
	if res.Record.ChallengeNote != nil && req.Kind == constants.ProofChallenge {
		fmt.Printf("  Note: %s\n", *res.Record.ChallengeNote)
	}

	if res.Record.Day != ctx.Tracker.Today() {
		return nil
	}
	eco, challenge, err := ctx.Tracker.Streaks(bg)
	if err != nil {
		// The mark is already saved.
		fmt.Printf("⚠ Could not refresh streaks: %v\n", err)
		return nil
	}
	streak := eco
	if req.Kind == constants.ProofChallenge {
		streak = challenge
	}
	fmt.Printf("  %s streak: %s day(s)\n", label(req.Kind), streak)
	return nil
}
