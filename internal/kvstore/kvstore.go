// Package kvstore persists small per-device JSON values such as the
// cached tip of the day and the facts shuffle bag.
package kvstore

import (
	"context"
)

// Store is a JSON key-value store. Every error wraps
// errors.ErrLocalPersistenceUnavailable.
type Store interface {
	// Get decodes the value at key into dest and reports whether it existed.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}
