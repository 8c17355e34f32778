package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/leapstack-labs/leapaudit/pkg/core"
)

// Ollama defaults.
const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "nomic-embed-text:latest"
	defaultTimeout     = 30 * time.Second
)

func init() {
	Register("ollama", func(cfg core.EmbeddingConfig, logger *slog.Logger) (Embedder, error) {
		return NewOllama(cfg, logger), nil
	})
}

// Ollama calls the native Ollama embeddings endpoint (/api/embeddings).
type Ollama struct {
	endpoint string
	model    string
	client   *http.Client
	logger   *slog.Logger
}

// NewOllama creates an Ollama embedder.
// If logger is nil, a discard logger is used.
func NewOllama(cfg core.EmbeddingConfig, logger *slog.Logger) *Ollama {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOllamaModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Ollama{
		endpoint: ollamaEndpoint(cfg.URL),
		model:    model,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// ollamaEndpoint builds the embeddings URL from a base URL.
func ollamaEndpoint(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if strings.HasSuffix(baseURL, "/api/embeddings") {
		return baseURL
	}
	return baseURL + "/api/embeddings"
}

// Name returns the provider identifier.
func (o *Ollama) Name() string {
	return "ollama"
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed requests the embedding of text from Ollama.
func (o *Ollama) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaRequest{Model: o.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	o.logger.Debug("requesting embedding", slog.String("model", o.model), slog.Int("chars", len(text)))

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse ollama response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return out.Embedding, nil
}
