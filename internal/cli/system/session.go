package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ecolife/ecolife-cli/internal/cli"
	apperrors "github.com/ecolife/ecolife-cli/internal/errors"
	"github.com/ecolife/ecolife-cli/internal/session"
)

// LoginCmd stores the signed-in user id in the OS keyring.
type LoginCmd struct {
	UserID string `arg:"" optional:"" help:"Account id to sign in as. A new random id is generated when omitted."`
}

func (cmd *LoginCmd) Run(ctx *cli.Context) error {
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		userID = uuid.NewString()
	}
	if err := session.Login(userID); err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}
	fmt.Printf("✓ Signed in as %s\n", userID)
	return nil
}

type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(ctx *cli.Context) error {
	if err := session.Logout(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	fmt.Println("✓ Signed out")
	return nil
}

type WhoamiCmd struct{}

func (cmd *WhoamiCmd) Run(ctx *cli.Context) error {
	src := ctx.Session
	if src == nil {
		src = session.KeyringSource{}
	}
	userID, err := src.UserID()
	if errors.Is(err, apperrors.ErrNotAuthenticated) {
		fmt.Println("Not signed in. Use 'ecolife login' to sign in.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(userID)
	return nil
}
