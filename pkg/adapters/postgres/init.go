package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/leapaudit/pkg/adapter"
)

func init() {
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Store { return New(logger) })
}
