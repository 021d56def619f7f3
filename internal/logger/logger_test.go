package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitWithOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Debug("hidden at info level")
	Warn("range filtered", "day", "2024-13-99")

	out := buf.String()
	if strings.Contains(out, "hidden at info level") {
		t.Error("debug message written at info level")
	}
	if !strings.Contains(out, "range filtered") || !strings.Contains(out, "2024-13-99") {
		t.Errorf("warn output missing message or keyvals: %q", out)
	}
	if !strings.Contains(out, "ecolife") {
		t.Errorf("output missing prefix: %q", out)
	}
}

func TestInitDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Debug: true, Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Debug("visible in debug mode")
	if !strings.Contains(buf.String(), "visible in debug mode") {
		t.Errorf("debug message missing: %q", buf.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	With("component", "test").Info("discarded")
}
