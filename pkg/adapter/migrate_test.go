package adapter

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestRunMigrations_NotConnected(t *testing.T) {
	err := RunMigrations(context.Background(), nil, fstest.MapFS{}, "sqlite3", nil)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestGooseLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	gl := NewGooseLogger(logger)
	gl.Printf("OK   %s (%s)\n", "00001_create_exemplo_pratico.sql", "1ms")
	gl.Fatalf("bad version %d", 7)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "00001_create_exemplo_pratico.sql")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "bad version 7")
	assert.Contains(t, out, "component=migrate")
}
