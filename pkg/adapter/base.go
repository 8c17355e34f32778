package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapaudit/pkg/core"
)

// ErrNotConnected is returned when a store is used before Connect.
var ErrNotConnected = errors.New("database connection not established")

// BaseSQLStore provides common database/sql functionality for stores.
// Embed this struct in concrete stores to get Close, Exec and Truncate.
type BaseSQLStore struct {
	DB     *sql.DB
	Cfg    core.TargetConfig
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLStore) Close() error {
	if b.DB == nil {
		return nil
	}
	b.log().Debug("closing database connection")
	err := b.DB.Close()
	b.DB = nil
	return err
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLStore) IsConnected() bool {
	return b.DB != nil
}

// Exec executes a statement that doesn't return rows.
func (b *BaseSQLStore) Exec(ctx context.Context, query string, args ...any) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	if _, err := b.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// DeleteAll removes every example row. Stores without TRUNCATE ... RESTART
// IDENTITY use it and reset their key sequence separately.
func (b *BaseSQLStore) DeleteAll(ctx context.Context) error {
	if err := b.Exec(ctx, "DELETE FROM "+TableName); err != nil {
		return fmt.Errorf("failed to clear %s: %w", TableName, err)
	}
	return nil
}

// ScanMatches reads rows shaped as
// (id, category, identifier, compliant, explanation, distance).
func ScanMatches(rows *sql.Rows) ([]core.Match, error) {
	defer func() { _ = rows.Close() }()

	var matches []core.Match
	for rows.Next() {
		var m core.Match
		var explanation sql.NullString
		if err := rows.Scan(&m.ID, &m.Category, &m.Identifier, &m.Compliant, &explanation, &m.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		m.Explanation = explanation.String
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating examples: %w", err)
	}
	return matches, nil
}

func (b *BaseSQLStore) log() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
