package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapaudit/internal/cli/output"
	"github.com/leapstack-labs/leapaudit/internal/dataset"
	"github.com/leapstack-labs/leapaudit/pkg/naming"
	"github.com/spf13/cobra"
)

// AuditOptions holds options for the audit command.
type AuditOptions struct {
	FailOnViolation bool
}

// ViolationError is returned with --fail-on-violation when an identifier is non-compliant.
type ViolationError struct {
	Count int
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%d identifier(s) violate the naming standard", e.Count)
}

// NewAuditCommand creates the audit command.
func NewAuditCommand() *cobra.Command {
	opts := &AuditOptions{}
	cmd := &cobra.Command{
		Use:   "audit [CATEGORY IDENTIFIER...]",
		Short: "Check identifiers against the naming standard",
		Long: `Audit database-object identifiers against the naming standard.

With arguments, every IDENTIFIER is audited under CATEGORY (view, table,
procedure, pk, fk). Without arguments the configured dataset is audited,
or the built-in examples when no dataset is set.

No database or embedding provider is contacted.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Audit two view names
  leapaudit audit view vwUsuarioProcesso vw_usuario_log

  # Audit a dataset file and fail on violations
  leapaudit audit --dataset examples.yaml --fail-on-violation

  # Audit the built-in examples as JSON
  leapaudit audit -o json`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				return fmt.Errorf("expected CATEGORY followed by at least one IDENTIFIER")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.FailOnViolation, "fail-on-violation", false, "Exit with an error when any identifier is non-compliant")

	return cmd
}

func runAudit(cmd *cobra.Command, args []string, opts *AuditOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	var entries []dataset.Entry
	source := "arguments"
	if len(args) > 0 {
		for _, id := range args[1:] {
			entries = append(entries, dataset.Entry{Category: args[0], Identifier: id})
		}
	} else {
		var err error
		if entries, err = cmdCtx.Entries(); err != nil {
			return err
		}
		source = datasetSource(cmdCtx.Cfg)
	}

	out := auditEntries(entries)
	cmdCtx.Logger.Debug("audit finished", "total", out.Summary.Total, "non_compliant", out.Summary.NonCompliant)

	var err error
	switch r.EffectiveMode() {
	case output.ModeJSON:
		err = r.JSON(out)
	case output.ModeMarkdown:
		auditMarkdown(r, out, source)
	default:
		auditText(r, out, source)
	}
	if err != nil {
		return err
	}

	if opts.FailOnViolation && out.Summary.NonCompliant > 0 {
		return &ViolationError{Count: out.Summary.NonCompliant}
	}
	return nil
}

// auditEntries audits every entry in order.
func auditEntries(entries []dataset.Entry) output.AuditOutput {
	out := output.AuditOutput{Results: make([]output.AuditResult, 0, len(entries))}
	for _, e := range entries {
		v := naming.AuditLabel(e.Category, e.Identifier)
		out.Results = append(out.Results, output.AuditResult{
			Category:    e.Category,
			Identifier:  e.Identifier,
			Status:      v.Status(),
			Compliant:   v.Compliant,
			RuleID:      v.RuleID,
			Explanation: v.Explanation,
		})
		if v.Compliant {
			out.Summary.Compliant++
		} else {
			out.Summary.NonCompliant++
		}
	}
	out.Summary.Total = len(out.Results)
	return out
}

// auditText outputs audit results in styled text format.
func auditText(r *output.Renderer, out output.AuditOutput, source string) {
	styles := r.Styles()

	r.Println("")
	r.Header(1, "Naming Audit")
	r.Println("")

	current := ""
	for i, res := range out.Results {
		if i == 0 || res.Category != current {
			current = res.Category
			r.Println(styles.Bold.Render(current))
		}
		status := "failed"
		if res.Compliant {
			status = "success"
		}
		r.StatusLine(displayIdentifier(res.Identifier), status, res.RuleID+" "+res.Explanation)
	}

	r.Println("")
	summary := fmt.Sprintf("%d compliant, %d non-compliant", out.Summary.Compliant, out.Summary.NonCompliant)
	if out.Summary.NonCompliant == 0 {
		r.Success(summary)
	} else {
		r.Println(styles.Error.Render("✗ " + summary))
	}
	r.Muted("Source: " + source)
}

// auditMarkdown outputs audit results in markdown format.
func auditMarkdown(r *output.Renderer, out output.AuditOutput, source string) {
	r.Println(output.FormatHeader(1, "Naming Audit"))
	r.Println("")

	rows := make([][]string, 0, len(out.Results))
	for _, res := range out.Results {
		rows = append(rows, []string{
			res.Category,
			output.FormatCode(displayIdentifier(res.Identifier)),
			res.Status,
			res.RuleID,
			res.Explanation,
		})
	}
	r.Table([]string{"Category", "Identifier", "Status", "Rule", "Explanation"}, rows)
	r.Println("")

	r.Println(output.FormatKeyValue("Source", source))
	r.Printf("**Total:** %d | **Compliant:** %d | **Non-compliant:** %d\n",
		out.Summary.Total, out.Summary.Compliant, out.Summary.NonCompliant)
}

// displayIdentifier makes the empty identifier visible.
func displayIdentifier(id string) string {
	if id == "" {
		return `""`
	}
	return id
}
