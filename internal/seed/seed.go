// Package seed audits a dataset, embeds every identifier and stores the
// results as practical examples.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapaudit/internal/dataset"
	"github.com/leapstack-labs/leapaudit/pkg/adapter"
	"github.com/leapstack-labs/leapaudit/pkg/core"
	"github.com/leapstack-labs/leapaudit/pkg/embedding"
	"github.com/leapstack-labs/leapaudit/pkg/naming"
)

// DefaultConcurrency is used when Options.Concurrency is not positive.
const DefaultConcurrency = 4

// Deps are the collaborators a seed run talks to.
type Deps struct {
	Store    adapter.Store
	Embedder embedding.Embedder
	Logger   *slog.Logger
}

// Options control a seed run.
type Options struct {
	KeepExisting bool // Skip the truncate so the run appends
	Concurrency  int  // Parallel embedding calls
}

// Stage names where an entry failed.
const (
	StageEmbed  = "embed"
	StageInsert = "insert"
)

// Result is the outcome for one dataset entry.
type Result struct {
	Entry   dataset.Entry
	Verdict core.Verdict
	ID      int64  // Surrogate key, zero when not stored
	Stage   string // Failing stage, empty on success
	Err     error
}

// OK reports whether the entry was stored.
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary reports a whole run. Results follow the input order.
type Summary struct {
	RunID    string
	Results  []Result
	Inserted int
	Failed   int
	Duration time.Duration
}

// Run prepares the store, then audits, embeds and inserts every entry.
//
// Failures of a single entry are logged and recorded in the summary and do
// not stop the batch. Run returns an error only when the store cannot be
// prepared or ctx is cancelled.
func Run(ctx context.Context, entries []dataset.Entry, deps Deps, opts Options) (*Summary, error) {
	if deps.Store == nil || deps.Embedder == nil {
		return nil, errors.New("seed requires a store and an embedder")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	start := time.Now()
	sum := &Summary{RunID: uuid.NewString()}
	logger = logger.With(slog.String("run_id", sum.RunID))

	if err := deps.Store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare example table: %w", err)
	}
	if !opts.KeepExisting {
		logger.Info("clearing existing examples")
		if err := deps.Store.Truncate(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear example table: %w", err)
		}
	}

	results := make([]Result, len(entries))
	vectors := make([][]float32, len(entries))
	for i, e := range entries {
		results[i] = Result{Entry: e, Verdict: naming.AuditLabel(e.Category, e.Identifier)}
	}

	if err := embedAll(ctx, entries, deps.Embedder, opts.Concurrency, results, vectors, logger); err != nil {
		return nil, err
	}

	// Inserts run in input order so surrogate keys follow the dataset.
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, err := deps.Store.Insert(ctx, core.Example{
			Category:   res.Entry.Category,
			Identifier: res.Entry.Identifier,
			Verdict:    res.Verdict,
			Embedding:  vectors[i],
		})
		if err != nil {
			res.Stage, res.Err = StageInsert, err
			logger.Warn("failed to insert example",
				slog.String("identifier", res.Entry.Identifier),
				slog.String("error", err.Error()))
			continue
		}
		res.ID = id
		logger.Debug("inserted example",
			slog.Int64("id", id),
			slog.String("identifier", res.Entry.Identifier),
			slog.String("status", res.Verdict.Status()))
	}

	for _, r := range results {
		if r.OK() {
			sum.Inserted++
		} else {
			sum.Failed++
		}
	}
	sum.Results = results
	sum.Duration = time.Since(start)

	logger.Info("seed complete",
		slog.Int("inserted", sum.Inserted),
		slog.Int("failed", sum.Failed),
		slog.Duration("duration", sum.Duration))

	return sum, nil
}

// embedAll fills vectors concurrently. Per-entry failures land in results.
func embedAll(
	ctx context.Context,
	entries []dataset.Entry,
	e embedding.Embedder,
	concurrency int,
	results []Result,
	vectors [][]float32,
	logger *slog.Logger,
) error {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, entry := range entries {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			vec, err := e.Embed(ctx, embedding.Compose(entry.Category, entry.Identifier))
			if err != nil {
				// Each goroutine owns index i.
				results[i].Stage, results[i].Err = StageEmbed, err
				logger.Warn("failed to embed example",
					slog.String("identifier", entry.Identifier),
					slog.String("error", err.Error()))
				return nil
			}
			vectors[i] = vec
			return nil
		})
	}
	_ = g.Wait()

	return ctx.Err()
}
