package embedding

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leapstack-labs/leapaudit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls atomic.Int32
}

func (f *fakeEmbedder) Name() string { return "fake" }

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	f.calls.Add(1)
	return f.vec, f.err
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "Tabela : Veiculo", Compose("Tabela", "Veiculo"))
	assert.Equal(t, "Procedure : ", Compose("Procedure", ""))
}

func TestWithDimension(t *testing.T) {
	t.Run("matching length", func(t *testing.T) {
		e := WithDimension(&fakeEmbedder{vec: []float32{1, 2, 3}}, 3)
		vec, err := e.Embed(context.Background(), "x")
		require.NoError(t, err)
		assert.Len(t, vec, 3)
		assert.Equal(t, "fake", e.Name())
	})

	t.Run("wrong length", func(t *testing.T) {
		e := WithDimension(&fakeEmbedder{vec: []float32{1, 2}}, 768)
		_, err := e.Embed(context.Background(), "x")

		var dimErr *DimensionError
		require.ErrorAs(t, err, &dimErr)
		assert.Equal(t, 768, dimErr.Want)
		assert.Equal(t, 2, dimErr.Got)
	})

	t.Run("provider error passes through", func(t *testing.T) {
		boom := errors.New("boom")
		e := WithDimension(&fakeEmbedder{err: boom}, 3)
		_, err := e.Embed(context.Background(), "x")
		assert.ErrorIs(t, err, boom)
	})
}

func TestWithRateLimit(t *testing.T) {
	fake := &fakeEmbedder{vec: []float32{1}}
	e := WithRateLimit(fake, 0.5, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// The burst allows the first call through immediately.
	_, err := e.Embed(ctx, "first")
	require.NoError(t, err)

	// The next token is two seconds away, beyond the deadline.
	_, err = e.Embed(ctx, "second")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestNew(t *testing.T) {
	t.Run("missing provider", func(t *testing.T) {
		_, err := New(core.EmbeddingConfig{}, nil)
		require.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(core.EmbeddingConfig{Provider: "nope"}, nil)

		var unknown *UnknownProviderError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "nope", unknown.Provider)
		assert.Contains(t, unknown.Available, "ollama")
		assert.Contains(t, unknown.Available, "openai")
	})

	t.Run("factory error is wrapped", func(t *testing.T) {
		_, err := New(core.EmbeddingConfig{Provider: "openai"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create openai embedder")
	})

	t.Run("applies dimension check", func(t *testing.T) {
		fake := &fakeEmbedder{vec: []float32{1, 2}}
		Register("test-fake", func(core.EmbeddingConfig, *slog.Logger) (Embedder, error) {
			return fake, nil
		})
		t.Cleanup(func() {
			registryMu.Lock()
			delete(registry, "test-fake")
			registryMu.Unlock()
		})

		e, err := New(core.EmbeddingConfig{Provider: "test-fake", Dimension: 4, Rate: 100}, nil)
		require.NoError(t, err)

		_, err = e.Embed(context.Background(), "x")
		var dimErr *DimensionError
		assert.ErrorAs(t, err, &dimErr)
	})
}

func TestProviders(t *testing.T) {
	names := Providers()
	assert.Contains(t, names, "ollama")
	assert.Contains(t, names, "openai")
	assert.True(t, IsRegistered("ollama"))
	assert.False(t, IsRegistered("nope"))
}
