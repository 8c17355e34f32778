// Package embedding turns audited identifiers into vectors for similarity search.
//
// Providers register themselves by name in init() and are built from a
// core.EmbeddingConfig with New. The returned Embedder is wrapped with the
// configured dimension check and rate limit.
package embedding

import (
	"context"
	"errors"
	"fmt"
)

// Embedder produces a vector embedding for a piece of text.
type Embedder interface {
	// Embed returns the embedding for text. Implementations must honor ctx.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Name returns the provider name, e.g. "ollama".
	Name() string
}

// ErrEmptyEmbedding is returned when a provider answers without a vector.
var ErrEmptyEmbedding = errors.New("provider returned an empty embedding")

// DimensionError is returned when a vector does not have the configured length.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding has %d dimensions, expected %d", e.Got, e.Want)
}

// Compose builds the text that is embedded for an audited identifier.
func Compose(category, identifier string) string {
	return category + " : " + identifier
}
