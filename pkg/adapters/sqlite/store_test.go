package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapaudit/internal/testutil"
	"github.com/leapstack-labs/leapaudit/pkg/adapter"
	"github.com/leapstack-labs/leapaudit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(testutil.NewTestLogger(t))
	require.NoError(t, s.Connect(context.Background(), core.TargetConfig{Path: ":memory:"}))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func example(category, identifier string, compliant bool, vec ...float32) core.Example {
	return core.Example{
		Category:   category,
		Identifier: identifier,
		Verdict:    core.Verdict{Compliant: compliant, Explanation: "because " + identifier},
		Embedding:  vec,
	}
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestStore_InsertAssignsSequentialKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i, id := range []string{"vwA", "vwB", "vwC"} {
		got, err := s.Insert(ctx, example("View", id, true, 1, 0))
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), got)
	}
}

func TestStore_TruncateResetsKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Insert(ctx, example("View", "vwA", true, 1, 0))
	require.NoError(t, err)
	_, err = s.Insert(ctx, example("View", "vwB", true, 1, 0))
	require.NoError(t, err)

	require.NoError(t, s.Truncate(ctx))

	matches, err := s.Search(ctx, core.SearchQuery{Embedding: []float32{1, 0}})
	require.NoError(t, err)
	assert.Empty(t, matches)

	id, err := s.Insert(ctx, example("Tabela", "Veiculo", true, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestStore_Search(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	entries := []core.Example{
		example("View", "vwUsuarioProcesso", true, 1, 0),
		example("View", "vw_errada", false, 0.9, 0.1),
		example("Tabela", "Veiculo", true, 0, 1),
		example("Tabela", "Tabela_Errada", false, 0.7, 0.3),
		example("Procedure", "spGravaLog", false), // no embedding, never returned
	}
	for _, ex := range entries {
		_, err := s.Insert(ctx, ex)
		require.NoError(t, err)
	}

	t.Run("nearest first", func(t *testing.T) {
		matches, err := s.Search(ctx, core.SearchQuery{Embedding: []float32{1, 0}, Limit: 2})
		require.NoError(t, err)
		require.Len(t, matches, 2)

		assert.Equal(t, "vwUsuarioProcesso", matches[0].Identifier)
		assert.InDelta(t, 0, matches[0].Distance, 1e-6)
		assert.True(t, matches[0].Compliant)
		assert.Equal(t, "because vwUsuarioProcesso", matches[0].Explanation)
		assert.Equal(t, "vw_errada", matches[1].Identifier)
		assert.False(t, matches[1].Compliant)
	})

	t.Run("focus boosts category", func(t *testing.T) {
		matches, err := s.Search(ctx, core.SearchQuery{Embedding: []float32{1, 0}, Focus: "tab", Limit: 3})
		require.NoError(t, err)
		require.Len(t, matches, 3)

		assert.Equal(t, "Tabela_Errada", matches[0].Identifier)
		assert.Equal(t, "Veiculo", matches[1].Identifier)
		assert.Equal(t, "vwUsuarioProcesso", matches[2].Identifier)
	})

	t.Run("default limit", func(t *testing.T) {
		matches, err := s.Search(ctx, core.SearchQuery{Embedding: []float32{1, 0}})
		require.NoError(t, err)
		assert.Len(t, matches, adapter.DefaultSearchLimit)
	})
}

func TestStore_FileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "examples.db")

	s := New(nil)
	require.NoError(t, s.Connect(ctx, core.TargetConfig{Path: path}))
	require.NoError(t, s.Migrate(ctx))
	_, err := s.Insert(ctx, example("PK", "pkVeiculo", true, 1))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened := New(nil)
	require.NoError(t, reopened.Connect(ctx, core.TargetConfig{Path: path}))
	defer func() { _ = reopened.Close() }()

	matches, err := reopened.Search(ctx, core.SearchQuery{Embedding: []float32{1}})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "pkVeiculo", matches[0].Identifier)
}

func TestStore_NotConnected(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	assert.ErrorIs(t, s.Migrate(ctx), adapter.ErrNotConnected)
	assert.ErrorIs(t, s.Truncate(ctx), adapter.ErrNotConnected)
	_, err := s.Insert(ctx, example("View", "vwA", true))
	assert.ErrorIs(t, err, adapter.ErrNotConnected)
	_, err = s.Search(ctx, core.SearchQuery{})
	assert.ErrorIs(t, err, adapter.ErrNotConnected)
}

func TestStore_Registry(t *testing.T) {
	st, err := adapter.NewStore(core.TargetConfig{Type: "sqlite"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", st.DialectName())
}
