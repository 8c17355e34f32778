// Package testutil provides logging helpers for leapaudit tests.
package testutil

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a debug logger that writes through t.Log, so seed
// runs, migrations and store queries show up only on failure or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// LogCapture keeps a copy of everything a logger wrote, for assertions
// on warnings such as per-example seed failures.
type LogCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// String returns the captured log text.
func (c *LogCapture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// NewCapturingLogger is NewTestLogger that also records its output.
// Embedding goroutines log concurrently, so writes are serialized.
func NewCapturingLogger(t testing.TB) (*slog.Logger, *LogCapture) {
	t.Helper()
	c := &LogCapture{}
	logger := slog.New(slog.NewTextHandler(testWriter{t: t, capture: c}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, c
}

type testWriter struct {
	t       testing.TB
	capture *LogCapture
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	if w.capture != nil {
		w.capture.mu.Lock()
		w.capture.buf.Write(p)
		w.capture.mu.Unlock()
	}
	w.t.Log(string(p))
	return len(p), nil
}
