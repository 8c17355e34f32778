package config

import (
	"fmt"

	"github.com/leapstack-labs/leapaudit/pkg/adapter"
	"github.com/leapstack-labs/leapaudit/pkg/embedding"
)

var validOutputs = map[string]bool{"auto": true, "text": true, "markdown": true, "json": true}

// Validate checks if the configuration is valid.
// Store and provider names are checked against the registries, so the
// packages that register them must be imported by the binary.
func (c *Config) Validate() error {
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (want auto, text, markdown or json)", c.OutputFormat)
	}
	if err := ValidateTarget(&c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	if err := ValidateEmbedding(&c.Embedding); err != nil {
		return fmt.Errorf("invalid embedding configuration: %w", err)
	}
	return nil
}

// ValidateTarget checks the store type against registered stores.
func ValidateTarget(t *TargetConfig) error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}
	if !adapter.IsRegistered(t.Type) {
		return &adapter.UnknownAdapterError{Type: t.Type, Available: adapter.ListStores()}
	}
	if t.Port < 0 || t.Port > 65535 {
		return fmt.Errorf("target port %d out of range", t.Port)
	}
	return nil
}

// ValidateEmbedding checks the provider and numeric limits.
func ValidateEmbedding(e *EmbeddingConfig) error {
	if !embedding.IsRegistered(e.Provider) {
		return &embedding.UnknownProviderError{Provider: e.Provider, Available: embedding.Providers()}
	}
	if e.Dimension < 0 {
		return fmt.Errorf("embedding dimension must not be negative, got %d", e.Dimension)
	}
	if e.Concurrency < 0 {
		return fmt.Errorf("embedding concurrency must not be negative, got %d", e.Concurrency)
	}
	if e.Rate < 0 {
		return fmt.Errorf("embedding rate must not be negative, got %g", e.Rate)
	}
	return nil
}
