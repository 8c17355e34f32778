// Package postgres provides a PostgreSQL example store backed by pgvector.
//
// Import this package with a blank identifier to register the store:
//
//	import _ "github.com/leapstack-labs/leapaudit/pkg/adapters/postgres"
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/leapstack-labs/leapaudit/pkg/adapter"
	"github.com/leapstack-labs/leapaudit/pkg/core"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	insertSQL = `
		INSERT INTO ExemploPratico (ObjetoFoco, ExemploTexto, isBomExemplo, Explicacao, Embedding)
		VALUES ($1, $2, $3, $4, $5::vector)
		RETURNING pkExemploPratico`

	searchSQL = `
		SELECT pkExemploPratico, ObjetoFoco, ExemploTexto, isBomExemplo, Explicacao,
		       Embedding <=> $1::vector AS distance
		FROM ExemploPratico
		WHERE Embedding IS NOT NULL
		ORDER BY CASE WHEN $2 <> '' AND ObjetoFoco ILIKE $2 ESCAPE '\' THEN 0 ELSE 1 END,
		         distance, pkExemploPratico
		LIMIT $3`

	truncateSQL = `TRUNCATE TABLE ExemploPratico RESTART IDENTITY`
)

// Store implements adapter.Store for PostgreSQL.
type Store struct {
	adapter.BaseSQLStore
}

// New creates a new PostgreSQL store instance.
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
	return "postgres"
}

// Connect establishes a connection to PostgreSQL.
func (s *Store) Connect(ctx context.Context, cfg core.TargetConfig) error {
	dsn := buildPostgresDSN(cfg)

	s.Logger.Debug("connecting to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	s.DB = db
	s.Cfg = cfg
	return nil
}

// buildPostgresDSN returns cfg.URL when set, otherwise a key=value connection string.
func buildPostgresDSN(cfg core.TargetConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.User != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.User)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}

// Migrate enables pgvector and creates the example table.
func (s *Store) Migrate(ctx context.Context) error {
	return adapter.RunMigrations(ctx, s.DB, migrations, "postgres", s.Logger)
}

// Truncate empties the example table and restarts its key sequence.
func (s *Store) Truncate(ctx context.Context) error {
	if err := s.Exec(ctx, truncateSQL); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", adapter.TableName, err)
	}
	return nil
}

// Insert stores one audited example.
func (s *Store) Insert(ctx context.Context, ex core.Example) (int64, error) {
	if s.DB == nil {
		return 0, adapter.ErrNotConnected
	}

	var id int64
	err := s.DB.QueryRowContext(ctx, insertSQL,
		ex.Category,
		ex.Identifier,
		ex.Verdict.Compliant,
		ex.Verdict.Explanation,
		adapter.NullableVector(ex.Embedding),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert example %q: %w", ex.Identifier, err)
	}
	return id, nil
}

// Search ranks stored examples with pgvector's cosine distance operator.
func (s *Store) Search(ctx context.Context, q core.SearchQuery) ([]core.Match, error) {
	if s.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	limit := q.Limit
	if limit <= 0 {
		limit = adapter.DefaultSearchLimit
	}

	//nolint:rowserrcheck // checked by ScanMatches
	rows, err := s.DB.QueryContext(ctx, searchSQL,
		adapter.VectorLiteral(q.Embedding),
		adapter.LikePattern(q.Focus),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search examples: %w", err)
	}
	return adapter.ScanMatches(rows)
}

// Ensure Store implements adapter.Store interface
var _ adapter.Store = (*Store)(nil)
