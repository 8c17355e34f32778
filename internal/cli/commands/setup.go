package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapaudit/internal/cli/config"
	"github.com/leapstack-labs/leapaudit/internal/cli/output"
	"github.com/leapstack-labs/leapaudit/internal/dataset"
	"github.com/leapstack-labs/leapaudit/pkg/adapter"
	"github.com/leapstack-labs/leapaudit/pkg/embedding"
	"github.com/spf13/cobra"

	// Register the example stores.
	_ "github.com/leapstack-labs/leapaudit/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/leapaudit/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/leapaudit/pkg/adapters/sqlite"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with config, logger and renderer.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// OpenStore creates and connects the configured store.
// Returns the store and a cleanup function that must be called (typically via defer).
func (c *CommandContext) OpenStore(ctx context.Context) (adapter.Store, func(), error) {
	store, err := adapter.NewStore(c.Cfg.Target, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Connect(ctx, c.Cfg.Target); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s store: %w", c.Cfg.Target.Type, err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			c.Logger.Warn("failed to close store", "error", err)
		}
	}
	return store, cleanup, nil
}

// Embedder builds the configured embedding provider.
func (c *CommandContext) Embedder() (embedding.Embedder, error) {
	return embedding.New(c.Cfg.Embedding, c.Logger)
}

// Entries returns the configured dataset, or the built-in examples when none is set.
func (c *CommandContext) Entries() ([]dataset.Entry, error) {
	if c.Cfg.Dataset == "" {
		return dataset.Default(), nil
	}
	entries, err := dataset.Load(c.Cfg.Dataset)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded dataset", "path", c.Cfg.Dataset, "entries", len(entries))
	return entries, nil
}

// getConfig returns the loaded configuration, or the defaults when the
// command runs outside the root command.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// datasetSource names where entries came from.
func datasetSource(cfg *config.Config) string {
	if cfg.Dataset == "" {
		return "built-in examples"
	}
	return cfg.Dataset
}
