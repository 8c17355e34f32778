package embedding

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/leapstack-labs/leapaudit/pkg/core"
)

// Factory builds an Embedder from configuration.
type Factory func(cfg core.EmbeddingConfig, logger *slog.Logger) (Embedder, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a provider factory to the registry.
// Called by providers in their init() functions.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a provider factory by name.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Providers returns all registered provider names (sorted).
func Providers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a provider is registered.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// New builds the configured provider and applies the dimension check and rate limit.
// The logger parameter is passed to the provider (nil uses a discard logger).
func New(cfg core.EmbeddingConfig, logger *slog.Logger) (Embedder, error) {
	if cfg.Provider == "" {
		return nil, fmt.Errorf("embedding provider not specified")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	factory, ok := Get(cfg.Provider)
	if !ok {
		return nil, &UnknownProviderError{
			Provider:  cfg.Provider,
			Available: Providers(),
		}
	}

	e, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s embedder: %w", cfg.Provider, err)
	}
	if cfg.Dimension > 0 {
		e = WithDimension(e, cfg.Dimension)
	}
	if cfg.Rate > 0 {
		e = WithRateLimit(e, cfg.Rate, 1)
	}
	return e, nil
}

// UnknownProviderError is returned when an unknown provider is requested.
type UnknownProviderError struct {
	Provider  string
	Available []string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown embedding provider %q\nAvailable providers: %v\nHint: Check embedding.provider in leapaudit.yaml", e.Provider, e.Available)
}
