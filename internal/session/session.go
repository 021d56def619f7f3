// Package session resolves the signed-in user for store operations.
package session

import (
	"errors"
	"os"
	"strings"

	"github.com/ecolife/ecolife-cli/internal/constants"
	apperrors "github.com/ecolife/ecolife-cli/internal/errors"
	"github.com/ecolife/ecolife-cli/internal/keyring"
	"github.com/ecolife/ecolife-cli/internal/logger"
)

// Source yields the current user id, or ErrNotAuthenticated.
type Source interface {
	UserID() (string, error)
}

// KeyringSource reads the user id stored by 'ecolife login'. The
// ECOLIFE_USER_ID environment variable takes precedence when set.
type KeyringSource struct{}

func (KeyringSource) UserID() (string, error) {
	if id := strings.TrimSpace(os.Getenv(constants.EnvUserID)); id != "" {
		return id, nil
	}
	id, err := keyring.GetSessionUser()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("Session lookup failed", "error", err)
		}
		return "", apperrors.ErrNotAuthenticated
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.ErrNotAuthenticated
	}
	return id, nil
}

// Static is a fixed session. The empty string means signed out.
type Static string

func (s Static) UserID() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", apperrors.ErrNotAuthenticated
	}
	return string(s), nil
}

// Login stores userID as the active session.
func Login(userID string) error {
	return keyring.SetSessionUser(strings.TrimSpace(userID))
}

// Logout clears the active session. Being already signed out is not an error.
func Logout() error {
	if err := keyring.DeleteSessionUser(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
