// Package adapter defines the contract for stores that persist audited
// examples with their embeddings and answer similarity searches.
//
// Concrete stores live in pkg/adapters/ subdirectories and register
// themselves by name in init(). Import them with a blank identifier:
//
//	import _ "github.com/leapstack-labs/leapaudit/pkg/adapters/postgres"
package adapter

import (
	"context"

	"github.com/leapstack-labs/leapaudit/pkg/core"
)

// TableName is the table that holds audited examples in every store.
const TableName = "ExemploPratico"

// Store persists audited examples and searches them by vector similarity.
type Store interface {
	// Connect opens the underlying database using the provided config.
	Connect(ctx context.Context, cfg core.TargetConfig) error

	// Close releases the connection.
	Close() error

	// Migrate creates the example table and any extension it needs.
	Migrate(ctx context.Context) error

	// Truncate removes every stored example and resets surrogate keys.
	Truncate(ctx context.Context) error

	// Insert stores one example and returns its surrogate key.
	Insert(ctx context.Context, ex core.Example) (int64, error)

	// Search returns up to q.Limit examples, those whose category matches
	// q.Focus first, then by ascending cosine distance to q.Embedding.
	Search(ctx context.Context, q core.SearchQuery) ([]core.Match, error)

	// DialectName returns the registered store name, e.g. "postgres".
	DialectName() string
}
