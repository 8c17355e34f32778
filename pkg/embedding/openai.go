package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/leapstack-labs/leapaudit/pkg/core"
)

func init() {
	Register("openai", func(cfg core.EmbeddingConfig, logger *slog.Logger) (Embedder, error) {
		return NewOpenAI(cfg, logger)
	})
}

// OpenAI calls an OpenAI-compatible /embeddings endpoint.
// Ollama serves one under /v1, as do vLLM and OpenAI itself.
type OpenAI struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAI creates an OpenAI-compatible embedder. A model is required.
func NewOpenAI(cfg core.EmbeddingConfig, logger *slog.Logger) (*OpenAI, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("embedding model is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.URL != "" {
		oc.BaseURL = cfg.URL
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAI{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Name returns the provider identifier.
func (o *OpenAI) Name() string {
	return "openai"
}

// Embed requests the embedding of text.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	o.logger.Debug("requesting embedding", slog.String("model", o.model), slog.Int("chars", len(text)))

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(o.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings request failed: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return resp.Data[0].Embedding, nil
}
