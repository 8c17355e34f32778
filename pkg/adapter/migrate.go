package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

// goose keeps its base FS, dialect and logger in package globals.
var gooseMu sync.Mutex

// RunMigrations applies every pending goose migration found under
// "migrations" in fsys.
func RunMigrations(ctx context.Context, db *sql.DB, fsys fs.FS, dialect string, logger *slog.Logger) error {
	if db == nil {
		return ErrNotConnected
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(NewGooseLogger(logger))

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// gooseLogger forwards goose output to slog at debug level.
type gooseLogger struct {
	logger *slog.Logger
}

// NewGooseLogger adapts a slog.Logger to goose.Logger.
func NewGooseLogger(logger *slog.Logger) goose.Logger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &gooseLogger{logger: logger.With(slog.String("component", "migrate"))}
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level. goose calls it only on unrecoverable
// migration states; the caller still receives the returned error.
func (g *gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
