package logger

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestLoggerWritesToConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORTAL_LOG_DIR", dir)

	l, err := NewLogger()
	if err != nil {
		t.Fatalf("NewLogger error: %v", err)
	}

	path := l.GetLogPath()
	if !strings.HasPrefix(path, dir) {
		t.Errorf("log path = %q, want it under %q", path, dir)
	}

	l.LogBooking("a@b.com", "A1", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if e.Type != "booking" || e.Email != "a@b.com" || e.Slot != "A1" || e.Status != "ok" {
		t.Errorf("event = %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Error("event missing timestamp")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.LogAuth("a@b.com", "1.2.3.4", nil)
	l.LogEvent("signup", "a@b.com")
	if err := l.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}
	if p := l.GetLogPath(); p != "" {
		t.Errorf("GetLogPath on nil logger = %q, want empty", p)
	}
}
