package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripkit.log")
	log := NewLogger(path, true)
	log.Info("session started")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(raw)
	if !strings.Contains(line, `"message":"session started"`) || !strings.Contains(line, `"level":"INFO"`) {
		t.Fatalf("unexpected log line %q", line)
	}
}

func TestNewLoggerWithoutFile(t *testing.T) {
	log := NewLogger("", false)
	if !log.Core().Enabled(-1) {
		t.Fatal("development logger should enable debug")
	}
}
