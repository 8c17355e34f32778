package core

import "time"

// TargetConfig holds connection settings for the example store.
type TargetConfig struct {
	Type     string            `koanf:"type"`     // postgres, duckdb, sqlite
	URL      string            `koanf:"url"`      // Full DSN; takes precedence over the discrete fields
	Host     string            `koanf:"host"`     // Postgres host
	Port     int               `koanf:"port"`     // Postgres port
	Database string            `koanf:"database"` // Postgres database name
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Path     string            `koanf:"path"` // File path for embedded stores, ":memory:" allowed
	Options  map[string]string `koanf:"options"`
}

// EmbeddingConfig holds settings for the embedding provider.
type EmbeddingConfig struct {
	Provider    string        `koanf:"provider"` // ollama, openai
	URL         string        `koanf:"url"`
	Model       string        `koanf:"model"`
	APIKey      string        `koanf:"api_key"`
	Dimension   int           `koanf:"dimension"`   // Expected vector length; 0 disables the check
	Concurrency int           `koanf:"concurrency"` // Parallel embedding calls during seeding
	Rate        float64       `koanf:"rate"`        // Requests per second; 0 means unlimited
	Timeout     time.Duration `koanf:"timeout"`
}
