package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Event is one JSON line in the portal's event log. Events record what the
// portal forwarded and how the backend answered, never credentials or chat
// text.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Email     string    `json:"email,omitempty"`
	Slot      string    `json:"slot,omitempty"`
	Status    string    `json:"status,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Error     string    `json:"error,omitempty"`
	Message   string    `json:"message,omitempty"`
}

type Logger struct {
	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	logDir string
}

func NewLogger() (*Logger, error) {
	logDir, err := getLogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get log directory: %w", err)
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile := filepath.Join(logDir, fmt.Sprintf("portal-%s.log", time.Now().Format("20060102")))

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		file:   file,
		enc:    json.NewEncoder(file),
		logDir: logDir,
	}, nil
}

func getLogDir() (string, error) {
	if dir := os.Getenv("PORTAL_LOG_DIR"); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	var logDir string
	switch runtime.GOOS {
	case "windows":
		logDir = filepath.Join(homeDir, "AppData", "Local", "parkportal", "logs")
	case "darwin":
		logDir = filepath.Join(homeDir, "Library", "Logs", "parkportal")
	default: // linux and others
		logDir = filepath.Join(homeDir, ".local", "share", "parkportal", "logs")
		// Use XDG_DATA_HOME if set
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			logDir = filepath.Join(xdgData, "parkportal", "logs")
		}
	}

	return logDir, nil
}

func (l *Logger) Log(event Event) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	event.Timestamp = time.Now()
	l.enc.Encode(event)
}

func (l *Logger) LogAuth(email, clientIP string, err error) {
	e := Event{Type: "auth", Email: email, ClientIP: clientIP, Status: "ok"}
	if err != nil {
		e.Status = "failed"
		e.Error = err.Error()
	}
	l.Log(e)
}

func (l *Logger) LogBooking(email, slot string, err error) {
	e := Event{Type: "booking", Email: email, Slot: slot, Status: "ok"}
	if err != nil {
		e.Status = "failed"
		e.Error = err.Error()
	}
	l.Log(e)
}

func (l *Logger) LogValidation(slot, status, clientIP string) {
	l.Log(Event{Type: "validation", Slot: slot, Status: status, ClientIP: clientIP})
}

func (l *Logger) LogChatError(email string, err error) {
	l.Log(Event{Type: "chat", Email: email, Status: "failed", Error: err.Error()})
}

func (l *Logger) LogEvent(eventType, message string) {
	l.Log(Event{Type: eventType, Message: message})
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) GetLogPath() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}
