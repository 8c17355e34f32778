package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapaudit/internal/cli/output"
	"github.com/leapstack-labs/leapaudit/pkg/core"
	"github.com/leapstack-labs/leapaudit/pkg/naming"
	"github.com/spf13/cobra"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [CATEGORY|RULE-ID]",
		Short: "List the naming rules",
		Long: `List the naming rules as ordered decision lists.

Each category is checked top to bottom and the first matching rule decides
the verdict. Pass a category (view, table, procedure, pk, fk, unknown) to
list one decision list, or a rule ID to show a single rule.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  leapaudit rules

  # Show the table rules
  leapaudit rules table

  # Show a single rule
  leapaudit rules TB04

  # Output as JSON
  leapaudit rules -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := selectRules(args)
			if err != nil {
				return err
			}
			return listRules(cmd, rules)
		},
	}

	return cmd
}

// selectRules resolves the optional argument to a rule list.
func selectRules(args []string) ([]naming.RuleInfo, error) {
	if len(args) == 0 {
		return naming.Rules(), nil
	}

	arg := strings.TrimSpace(args[0])
	if rule, ok := naming.GetByID(strings.ToUpper(arg)); ok {
		return []naming.RuleInfo{rule}, nil
	}

	category := core.ParseCategory(arg)
	if category == core.CategoryUnknown && !strings.EqualFold(arg, core.CategoryUnknown.String()) {
		return nil, fmt.Errorf("unknown category or rule %q", arg)
	}
	return naming.RulesFor(category), nil
}

func listRules(cmd *cobra.Command, rules []naming.RuleInfo) error {
	r := NewCommandContext(cmd).Renderer

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		listRulesMarkdown(r, rules)
	default:
		listRulesText(r, rules)
	}
	return nil
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, rules []naming.RuleInfo) {
	styles := r.Styles()

	r.Println("")
	r.Header(1, fmt.Sprintf("Naming Rules (%d)", len(rules)))

	current := ""
	for _, rule := range rules {
		if rule.Category != current {
			current = rule.Category
			r.Println("")
			r.Header(2, current)
		}

		outcome := styles.Success.Render(rule.Outcome)
		if rule.Outcome != "compliant" {
			outcome = styles.Error.Render(rule.Outcome)
		}
		r.Printf("  %d. %s  %s - %s\n", rule.Order, styles.Muted.Render(rule.ID), rule.Description, outcome)
	}

	r.Println("")
	r.Println(styles.Muted.Render("The first matching rule decides; 'leapaudit rules <rule-id>' shows one rule"))
	r.Println("")
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []naming.RuleInfo) {
	r.Println(output.FormatHeader(1, "Naming Rules"))

	current := ""
	var rows [][]string
	flush := func() {
		if len(rows) > 0 {
			r.Table([]string{"Order", "ID", "Condition", "Outcome"}, rows)
			rows = nil
		}
	}

	for _, rule := range rules {
		if rule.Category != current {
			flush()
			current = rule.Category
			r.Println("")
			r.Println(output.FormatHeader(2, current))
			r.Println("")
		}
		rows = append(rows, []string{
			strconv.Itoa(rule.Order),
			rule.ID,
			rule.Description,
			output.FormatCode(rule.Outcome),
		})
	}
	flush()
	r.Println("")
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, rules []naming.RuleInfo) error {
	out := output.RulesOutput{
		Rules: make([]output.RuleInfo, 0, len(rules)),
		Total: len(rules),
	}
	for _, rule := range rules {
		out.Rules = append(out.Rules, output.RuleInfo(rule))
	}
	return r.JSON(out)
}
