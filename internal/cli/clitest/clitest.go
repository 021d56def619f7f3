// Package clitest builds command contexts over temporary directories.
package clitest

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/ecolife/ecolife-cli/internal/cli"
	"github.com/ecolife/ecolife-cli/internal/config"
	"github.com/ecolife/ecolife-cli/internal/session"
)

// User is the signed-in user of contexts built here.
const User = "user-1"

// NewContext returns an initialized, opened context backed by SQLite
// files under a temporary config directory.
func NewContext(t *testing.T) *cli.Context {
	t.Helper()
	gokeyring.MockInit()

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	ctx, err := cli.NewContext(cfg)
	if err != nil {
		t.Fatalf("failed to build context: %v", err)
	}
	ctx.Session = session.Static(User)

	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := ctx.Open(context.Background()); err != nil {
		t.Fatalf("failed to open context: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

// CaptureStdout runs fn and returns what it printed.
func CaptureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.Bytes()
	}()

	runErr := fn()
	w.Close()
	os.Stdout = orig
	out := <-done
	r.Close()
	return string(out), runErr
}

// StubConfirm makes cli.Confirm answer automatically for the rest of the
// test and counts how often it was asked.
func StubConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	asked := new(int)
	orig := cli.Confirm
	cli.Confirm = func(title, description string) (bool, error) {
		*asked++
		return answer, nil
	}
	t.Cleanup(func() { cli.Confirm = orig })
	return asked
}
