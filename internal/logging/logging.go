// SPDX-FileCopyrightText: 2025 The Nerd Fonts Manager Authors
// SPDX-License-Identifier: EUPL-1.2

// Package logging provides the append-only, timestamped operation log.
// Concurrent install workers share one Logger; the mutex keeps each line
// intact under concurrent appends.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level is the severity tag written into each log line.
type Level string

// Log levels.
const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

const timestampLayout = "2006-01-02 15:04:05"

// Logger appends `[timestamp] [LEVEL] message` lines to a log file.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	f   *os.File
	now func() time.Time
}

// Open creates a logger appending to the file at path, creating parent
// directories as needed.
func Open(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{w: f, f: f, now: time.Now}, nil
}

// NewWithWriter creates a logger over an arbitrary writer, for testing.
func NewWithWriter(w io.Writer, now func() time.Time) *Logger {
	if now == nil {
		now = time.Now
	}

	return &Logger{w: w, now: now}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{w: io.Discard, now: time.Now}
}

// Close releases the underlying log file.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}

	return l.f.Close()
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...any) {
	l.write(LevelInfo, format, args...)
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.write(LevelWarning, format, args...)
}

// Errorf logs an error.
func (l *Logger) Errorf(format string, args ...any) {
	l.write(LevelError, format, args...)
}

// write emits one line. A single Fprintf under the mutex keeps lines from
// interleaving when install workers log concurrently.
func (l *Logger) write(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintf(l.w, "[%s] [%s] %s\n", l.now().Format(timestampLayout), level, fmt.Sprintf(format, args...))
}
