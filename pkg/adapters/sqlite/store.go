// Package sqlite provides an embedded SQLite example store.
//
// SQLite has no vector type, so embeddings are stored as JSON arrays and
// ranked in Go with the same focus boost and cosine distance the
// PostgreSQL store computes in SQL.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapaudit/pkg/adapter"
	"github.com/leapstack-labs/leapaudit/pkg/core"

	_ "modernc.org/sqlite" // sqlite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements adapter.Store for SQLite.
type Store struct {
	adapter.BaseSQLStore
}

// New creates a new SQLite store instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		BaseSQLStore: adapter.BaseSQLStore{Logger: logger},
	}
}

// DialectName returns the registered store name.
func (s *Store) DialectName() string {
	return "sqlite"
}

// Connect opens the database file at cfg.Path.
// An empty path or ":memory:" opens an in-memory database.
func (s *Store) Connect(ctx context.Context, cfg core.TargetConfig) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	dsn := ":memory:"
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}

	s.Logger.Debug("opening sqlite database", slog.String("path", path))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.DB = db
	s.Cfg = cfg
	return nil
}

// Migrate creates the example table.
func (s *Store) Migrate(ctx context.Context) error {
	return adapter.RunMigrations(ctx, s.DB, migrations, "sqlite3", s.Logger)
}

// Truncate deletes every example and resets the AUTOINCREMENT counter.
func (s *Store) Truncate(ctx context.Context) error {
	if err := s.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.Exec(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", adapter.TableName); err != nil {
		return fmt.Errorf("failed to reset key sequence: %w", err)
	}
	return nil
}

// Insert stores one audited example.
func (s *Store) Insert(ctx context.Context, ex core.Example) (int64, error) {
	if s.DB == nil {
		return 0, adapter.ErrNotConnected
	}

	var embedding any
	if len(ex.Embedding) > 0 {
		raw, err := json.Marshal(ex.Embedding)
		if err != nil {
			return 0, fmt.Errorf("failed to encode embedding: %w", err)
		}
		embedding = string(raw)
	}

	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO ExemploPratico (ObjetoFoco, ExemploTexto, isBomExemplo, Explicacao, Embedding)
		VALUES (?, ?, ?, ?, ?)`,
		ex.Category, ex.Identifier, ex.Verdict.Compliant, ex.Verdict.Explanation, embedding,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert example %q: %w", ex.Identifier, err)
	}
	return res.LastInsertId()
}

// Search loads every embedded example and ranks it in memory.
func (s *Store) Search(ctx context.Context, q core.SearchQuery) ([]core.Match, error) {
	if s.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT pkExemploPratico, ObjetoFoco, ExemploTexto, isBomExemplo, Explicacao, Embedding
		FROM ExemploPratico
		WHERE Embedding IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to search examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []core.Match
	for rows.Next() {
		var (
			m           core.Match
			explanation sql.NullString
			raw         string
			vec         []float32
		)
		if err := rows.Scan(&m.ID, &m.Category, &m.Identifier, &m.Compliant, &explanation, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &vec); err != nil {
			s.Logger.Warn("skipping example with unreadable embedding",
				slog.Int64("id", m.ID), slog.String("error", err.Error()))
			continue
		}
		m.Explanation = explanation.String
		m.Distance = adapter.CosineDistance(q.Embedding, vec)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating examples: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = adapter.DefaultSearchLimit
	}
	return adapter.RankMatches(matches, q.Focus, limit), nil
}

// Ensure Store implements adapter.Store interface
var _ adapter.Store = (*Store)(nil)
