package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapaudit/internal/cli/output"
	"github.com/leapstack-labs/leapaudit/internal/seed"
	"github.com/spf13/cobra"
)

// SeedOptions holds options for the seed command.
type SeedOptions struct {
	KeepExisting bool
	Concurrency  int
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	opts := &SeedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store audited examples with their embeddings",
		Long: `Audit every dataset entry, embed it and store it in the example table.

The table is created when missing and cleared before loading unless
--keep-existing is set. An entry that cannot be embedded or stored is
reported and skipped; the rest of the batch continues.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Seed the built-in examples into Postgres
  leapaudit seed --database-url postgres://localhost/audit

  # Seed a dataset into a local DuckDB file
  leapaudit seed --target-type duckdb --dataset examples.csv

  # Append instead of replacing
  leapaudit seed --keep-existing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.KeepExisting, "keep-existing", false, "Append to the example table instead of clearing it")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Parallel embedding calls (default: embedding.concurrency)")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	ctx := cmd.Context()

	entries, err := cmdCtx.Entries()
	if err != nil {
		return err
	}

	embedder, err := cmdCtx.Embedder()
	if err != nil {
		return err
	}

	store, cleanup, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = cmdCtx.Cfg.Embedding.Concurrency
	}

	effectiveMode := r.EffectiveMode()

	// Show spinner for TTY mode
	var spinner *output.Spinner
	if effectiveMode == output.ModeText {
		spinner = r.NewSpinner(fmt.Sprintf("Seeding %d examples...", len(entries)))
		spinner.Start()
	}

	sum, err := seed.Run(ctx, entries, seed.Deps{
		Store:    store,
		Embedder: embedder,
		Logger:   cmdCtx.Logger,
	}, seed.Options{
		KeepExisting: opts.KeepExisting,
		Concurrency:  concurrency,
	})
	if err != nil {
		if spinner != nil {
			spinner.Fail("Seeding failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Success("Seeding finished")
	}

	out := seedOutput(sum, store.DialectName(), embedder.Name())

	switch effectiveMode {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		seedMarkdown(r, out, datasetSource(cmdCtx.Cfg))
	default:
		seedText(r, out, datasetSource(cmdCtx.Cfg))
	}

	if out.Summary.Failed > 0 {
		r.Warning(fmt.Sprintf("%d of %d examples were not stored", out.Summary.Failed, out.Summary.Total))
	}
	return nil
}

// seedOutput converts a seed summary to its output form.
func seedOutput(sum *seed.Summary, store, embedder string) output.SeedOutput {
	out := output.SeedOutput{
		RunID:   sum.RunID,
		Results: make([]output.SeedResult, 0, len(sum.Results)),
		Summary: output.SeedSummary{
			Total:      len(sum.Results),
			Inserted:   sum.Inserted,
			Failed:     sum.Failed,
			DurationMs: sum.Duration.Milliseconds(),
			Store:      store,
			Embedder:   embedder,
		},
	}

	for _, res := range sum.Results {
		sr := output.SeedResult{
			Category:   res.Entry.Category,
			Identifier: res.Entry.Identifier,
			Status:     res.Verdict.Status(),
			ID:         res.ID,
		}
		if !res.OK() {
			sr.Status = "failed"
			sr.Stage = res.Stage
			sr.Error = res.Err.Error()
		}
		out.Results = append(out.Results, sr)
	}
	return out
}

// seedText outputs seed results in styled text format.
func seedText(r *output.Renderer, out output.SeedOutput, source string) {
	r.Println("")
	r.Header(2, "Seeded Examples")

	for _, res := range out.Results {
		if res.Error != "" {
			r.StatusLine(displayIdentifier(res.Identifier), "failed", res.Stage+": "+res.Error)
			continue
		}
		r.StatusLine(displayIdentifier(res.Identifier), "success", fmt.Sprintf("#%d %s", res.ID, res.Status))
	}

	r.Println("")
	r.Success(fmt.Sprintf("%d stored in %s (%dms)", out.Summary.Inserted, out.Summary.Store, out.Summary.DurationMs))
	r.Muted("Source: " + source)
	r.Muted("Run: " + out.RunID)
}

// seedMarkdown outputs seed results in markdown format.
func seedMarkdown(r *output.Renderer, out output.SeedOutput, source string) {
	r.Println(output.FormatHeader(1, "Seeded Examples"))
	r.Println("")

	rows := make([][]string, 0, len(out.Results))
	for _, res := range out.Results {
		id := ""
		if res.ID != 0 {
			id = fmt.Sprintf("%d", res.ID)
		}
		note := res.Status
		if res.Error != "" {
			note = res.Stage + ": " + res.Error
		}
		rows = append(rows, []string{id, res.Category, output.FormatCode(displayIdentifier(res.Identifier)), note})
	}
	r.Table([]string{"ID", "Category", "Identifier", "Result"}, rows)
	r.Println("")

	r.Println(output.FormatKeyValue("Run", out.RunID))
	r.Println(output.FormatKeyValue("Store", out.Summary.Store))
	r.Println(output.FormatKeyValue("Embedder", out.Summary.Embedder))
	r.Println(output.FormatKeyValue("Source", source))
	r.Printf("**Inserted:** %d | **Failed:** %d\n", out.Summary.Inserted, out.Summary.Failed)
}
