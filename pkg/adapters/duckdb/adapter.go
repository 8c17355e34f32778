// Package duckdb provides a DuckDB example store.
//
// Embeddings live in a FLOAT[] column and are ranked with
// list_cosine_similarity. Import this package with a blank identifier to
// register the store:
//
//	import _ "github.com/leapstack-labs/leapaudit/pkg/adapters/duckdb"
package duckdb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapaudit/pkg/adapter"
	"github.com/leapstack-labs/leapaudit/pkg/core"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

//go:embed schema.sql
var schemaSQL string

const (
	insertSQL = `
		INSERT INTO ExemploPratico (ObjetoFoco, ExemploTexto, isBomExemplo, Explicacao, Embedding)
		VALUES (?, ?, ?, ?, CAST(? AS FLOAT[]))
		RETURNING pkExemploPratico`

	// Stored vectors of another length or zero magnitude get similarity 0,
	// which is distance 1, the same as adapter.CosineDistance.
	searchSQL = `
		SELECT pkExemploPratico, ObjetoFoco, ExemploTexto, isBomExemplo, Explicacao,
		       CAST(1 - COALESCE(similarity, 0) AS DOUBLE) AS distance
		FROM (
			SELECT *,
			       CASE
			           WHEN len(Embedding) = len(CAST($1 AS FLOAT[]))
			                AND list_dot_product(Embedding, Embedding) > 0
			                AND list_dot_product(CAST($1 AS FLOAT[]), CAST($1 AS FLOAT[])) > 0
			           THEN list_cosine_similarity(Embedding, CAST($1 AS FLOAT[]))
			       END AS similarity
			FROM ExemploPratico
			WHERE Embedding IS NOT NULL
		)
		ORDER BY CASE WHEN $2 <> '' AND ObjetoFoco ILIKE $2 ESCAPE '\' THEN 0 ELSE 1 END,
		         distance, pkExemploPratico
		LIMIT $3`
)

// settingName guards option keys that are spliced into SET statements.
var settingName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Store implements adapter.Store for DuckDB.
type Store struct {
	adapter.BaseSQLStore
}

// New creates a new DuckDB store instance.
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
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" (or an empty path) for an in-memory database.
// Entries in cfg.Options are applied as session settings, e.g. threads or memory_limit.
func (s *Store) Connect(ctx context.Context, cfg core.TargetConfig) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	s.Logger.Debug("opening duckdb database", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	s.DB = db
	s.Cfg = cfg

	if err := s.applySettings(ctx, cfg.Options); err != nil {
		_ = s.Close()
		return err
	}
	return nil
}

func (s *Store) applySettings(ctx context.Context, opts map[string]string) error {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !settingName.MatchString(k) {
			return fmt.Errorf("invalid duckdb setting name %q", k)
		}
		value := strings.ReplaceAll(opts[k], "'", "''")
		if err := s.Exec(ctx, fmt.Sprintf("SET %s = '%s'", k, value)); err != nil {
			return fmt.Errorf("failed to apply setting %s: %w", k, err)
		}
	}
	return nil
}

// Migrate creates the key sequence and the example table.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if err := s.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// Truncate drops and recreates the table and its sequence so keys restart at 1.
func (s *Store) Truncate(ctx context.Context) error {
	if err := s.Exec(ctx, "DROP TABLE IF EXISTS "+adapter.TableName); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", adapter.TableName, err)
	}
	if err := s.Exec(ctx, "DROP SEQUENCE IF EXISTS seqExemploPratico"); err != nil {
		return fmt.Errorf("failed to reset key sequence: %w", err)
	}
	return s.Migrate(ctx)
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

// Search ranks stored examples by focus boost, then cosine distance.
func (s *Store) Search(ctx context.Context, q core.SearchQuery) ([]core.Match, error) {
	if s.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	limit := q.Limit
	if limit <= 0 {
		limit = adapter.DefaultSearchLimit
	}
	pattern := adapter.LikePattern(q.Focus)

	//nolint:rowserrcheck // checked by ScanMatches
	rows, err := s.DB.QueryContext(ctx, searchSQL,
		adapter.VectorLiteral(q.Embedding),
		pattern,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search examples: %w", err)
	}
	return adapter.ScanMatches(rows)
}

// Ensure Store implements adapter.Store interface
var _ adapter.Store = (*Store)(nil)
