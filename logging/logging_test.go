package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "profile")
	logger, cleanup, err := Setup(dir, "debug")
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	logger.Debug("test message")
	logger.Info("test info message")

	if err := cleanup(); err != nil {
		t.Errorf("cleanup failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	contentStr := string(content)
	if !strings.Contains(contentStr, `"level":"DEBUG"`) {
		t.Error("expected DEBUG level entry in log file")
	}
	if !strings.Contains(contentStr, `"level":"INFO"`) {
		t.Error("expected INFO level entry in log file")
	}
	if !strings.Contains(contentStr, "test message") {
		t.Error("expected test message in log file")
	}
}

func TestSetupTruncatesExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "debug.log")
	existingContent := "This should be truncated"
	if err := os.WriteFile(logPath, []byte(existingContent), 0o644); err != nil {
		t.Fatalf("failed to create existing log file: %v", err)
	}

	logger, cleanup, err := Setup(dir, "info")
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	logger.Info("new message after truncation")
	if err := cleanup(); err != nil {
		t.Errorf("cleanup failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(content), existingContent) {
		t.Error("expected existing content to be truncated")
	}
	if !strings.Contains(string(content), "new message after truncation") {
		t.Error("expected new message in truncated log file")
	}
}

func TestSetupUnwritableDir(t *testing.T) {
	t.Parallel()

	// A regular file where the directory should be.
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	logger, cleanup, err := Setup(filepath.Join(file, "sub"), "info")
	if err == nil {
		cleanup()
		t.Fatal("expected Setup() to fail")
	}
	if logger != nil || cleanup != nil {
		t.Error("expected nil logger and cleanup on failure")
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn entry missing")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
