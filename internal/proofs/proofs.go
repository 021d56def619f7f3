// Package proofs stores photo evidence attached to day records. Stores
// return an opaque reference that is saved in the record's proof column.
package proofs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ecolife/ecolife-cli/internal/constants"
)

// Store persists proof blobs.
type Store interface {
	// Put writes r under key and returns a reference for Open.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// ObjectKey builds "<user>/<day>/<kind>-<uuid><ext>" for a source file name.
func ObjectKey(userID, day string, kind constants.ProofKind, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s-%s%s", userID, day, kind, uuid.New().String(), ext)
}

// ContentTypeForKey guesses a MIME type from the key's extension.
func ContentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	case strings.HasSuffix(s, ".heic"):
		return "image/heic"
	default:
		return "application/octet-stream"
	}
}

// UploadFile copies the file at path into store for (userID, day, kind)
// and returns the stored reference.
func UploadFile(ctx context.Context, store Store, userID, day string, kind constants.ProofKind, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open proof file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat proof file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("proof path %s is a directory", path)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ProofUploadTimeout)
	defer cancel()

	key := ObjectKey(userID, day, kind, path)
	return store.Put(ctx, key, f, ContentTypeForKey(key))
}
