package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapaudit/internal/cli/output"
	"github.com/leapstack-labs/leapaudit/pkg/adapter"
	"github.com/leapstack-labs/leapaudit/pkg/core"
	"github.com/spf13/cobra"
)

// SearchOptions holds options for the search command.
type SearchOptions struct {
	Focus string
	Limit int
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find stored examples similar to a question",
		Long: `Embed QUERY and return the closest stored examples.

Examples whose category matches --focus (case-insensitive substring) rank
first; the rest of the order is by cosine distance. Run 'leapaudit seed'
first to fill the example table.`,
		Example: `  # Examples about view naming
  leapaudit search "how should I name a view?" --focus view

  # Top 10 matches as JSON
  leapaudit search "foreign key naming" -k 10 -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Focus, "focus", "", "Category label to rank first (e.g. view, Tabela, fk)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "k", adapter.DefaultSearchLimit, "Number of examples to return")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts *SearchOptions) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query must not be empty")
	}
	if opts.Limit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", opts.Limit)
	}

	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	ctx := cmd.Context()

	embedder, err := cmdCtx.Embedder()
	if err != nil {
		return err
	}
	vec, err := embedder.Embed(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to embed query: %w", err)
	}

	store, cleanup, err := cmdCtx.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to prepare example table: %w", err)
	}

	matches, err := store.Search(ctx, core.SearchQuery{
		Embedding: vec,
		Focus:     opts.Focus,
		Limit:     opts.Limit,
	})
	if err != nil {
		return fmt.Errorf("failed to search examples: %w", err)
	}
	if matches == nil {
		matches = []core.Match{}
	}

	out := output.SearchOutput{
		Query:   query,
		Focus:   opts.Focus,
		Limit:   opts.Limit,
		Matches: matches,
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		searchMarkdown(r, out)
	default:
		searchText(r, out)
	}
	return nil
}

// searchText outputs matches in styled text format.
func searchText(r *output.Renderer, out output.SearchOutput) {
	r.Println("")
	r.Header(2, "Similar Examples")

	if len(out.Matches) == 0 {
		r.Muted("No examples stored. Run 'leapaudit seed' first.")
		return
	}

	for _, m := range out.Matches {
		status := "failed"
		if m.Compliant {
			status = "success"
		}
		r.StatusLine(displayIdentifier(m.Identifier), status,
			fmt.Sprintf("%s  %.4f  %s", m.Category, m.Distance, m.Explanation))
	}
	r.Println("")
}

// searchMarkdown outputs matches in markdown format.
func searchMarkdown(r *output.Renderer, out output.SearchOutput) {
	r.Println(output.FormatHeader(1, "Similar Examples"))
	r.Println("")
	r.Println(output.FormatKeyValue("Query", out.Query))
	if out.Focus != "" {
		r.Println(output.FormatKeyValue("Focus", out.Focus))
	}
	r.Println("")

	if len(out.Matches) == 0 {
		r.Println("No examples stored. Run `leapaudit seed` first.")
		return
	}

	rows := make([][]string, 0, len(out.Matches))
	for _, m := range out.Matches {
		verdict := "non_compliant"
		if m.Compliant {
			verdict = "compliant"
		}
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.Category,
			output.FormatCode(displayIdentifier(m.Identifier)),
			verdict,
			strconv.FormatFloat(m.Distance, 'f', 4, 64),
			m.Explanation,
		})
	}
	r.Table([]string{"ID", "Category", "Identifier", "Verdict", "Distance", "Explanation"}, rows)
}
