// Package config provides configuration management for the leapaudit CLI.
//
// Settings are layered with koanf: defaults, leapaudit.yaml, a project .env
// file, the process environment and finally explicitly set flags. Store and
// provider settings reuse the shared types from pkg/core.
package config

import (
	"time"

	"github.com/leapstack-labs/leapaudit/pkg/core"
	"github.com/leapstack-labs/leapaudit/pkg/embedding"
)

// TargetConfig is an alias for the shared store configuration.
type TargetConfig = core.TargetConfig

// EmbeddingConfig is an alias for the shared embedding configuration.
type EmbeddingConfig = core.EmbeddingConfig

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	Dataset      string          `koanf:"dataset"` // YAML/CSV file; empty uses the built-in set
	Target       TargetConfig    `koanf:"target"`
	Embedding    EmbeddingConfig `koanf:"embedding"`

	// ProjectRoot is the directory holding leapaudit.yaml, or the CWD.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultTargetType  = "postgres"
	DefaultHost        = "localhost"
	DefaultPort        = 5432
	DefaultProvider    = "ollama"
	DefaultDimension   = 768
	DefaultConcurrency = 4
	DefaultTimeout     = 30 * time.Second
)

// defaults is the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"output":                DefaultOutput,
		"verbose":               false,
		"dataset":               "",
		"target.type":           DefaultTargetType,
		"target.host":           DefaultHost,
		"target.port":           DefaultPort,
		"embedding.provider":    DefaultProvider,
		"embedding.url":         embedding.DefaultOllamaURL,
		"embedding.model":       embedding.DefaultOllamaModel,
		"embedding.dimension":   DefaultDimension,
		"embedding.concurrency": DefaultConcurrency,
		"embedding.rate":        0.0,
		"embedding.timeout":     DefaultTimeout.String(),
	}
}

// Default returns the configuration used before LoadConfig has run.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		Target: TargetConfig{
			Type: DefaultTargetType,
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Embedding: EmbeddingConfig{
			Provider:    DefaultProvider,
			URL:         embedding.DefaultOllamaURL,
			Model:       embedding.DefaultOllamaModel,
			Dimension:   DefaultDimension,
			Concurrency: DefaultConcurrency,
			Timeout:     DefaultTimeout,
		},
	}
}
