package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/ecolife/ecolife-cli/internal/logger"
)

var (
	// ErrNotAuthenticated is returned when no user session is available.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidDay is returned when a day key is not shaped YYYY-MM-DD.
	ErrInvalidDay = errors.New("invalid day key")
	// ErrLocalPersistenceUnavailable wraps local key-value read/write failures.
	ErrLocalPersistenceUnavailable = errors.New("local persistence unavailable")
)

// BackendError is a failure surfaced by the remote record store.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Backend wraps err as a BackendError for op. Nil stays nil.
func Backend(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

// IsBackend reports whether err is (or wraps) a BackendError.
func IsBackend(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// InvalidDay returns an ErrInvalidDay carrying the offending key.
func InvalidDay(day string) error {
	return fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDay, day)
}

// LocalUnavailable wraps a local persistence failure.
func LocalUnavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrLocalPersistenceUnavailable, op, err)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return fmt.Sprintf("Error: %v (run 'ecolife login <user-id>' first)", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
