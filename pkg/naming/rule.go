package naming

import "github.com/leapstack-labs/leapaudit/pkg/core"

// Rule is one branch of a category's decision list.
// Rules are stateless; everything they need comes from the identifier.
type Rule struct {
	ID          string        // Unique identifier, e.g. "VW01"
	Category    core.Category // Category whose list owns the rule
	Compliant   bool          // Verdict produced when the rule matches
	Description string        // Human-readable condition, e.g. "starts with 'vm'"
	Match       MatchFunc     // Reports whether the rule applies
	Explain     ExplainFunc   // Builds the explanation for a matching identifier
}

// MatchFunc reports whether a rule applies to an identifier.
type MatchFunc func(identifier string) bool

// ExplainFunc builds the explanation attached to a verdict.
type ExplainFunc func(identifier string) string

// verdict applies the rule to an identifier it matched.
func (r Rule) verdict(identifier string) core.Verdict {
	return core.Verdict{
		Compliant:   r.Compliant,
		Explanation: r.Explain(identifier),
		RuleID:      r.ID,
	}
}

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Order       int    `json:"order"` // Position in the decision list, starting at 1
	Outcome     string `json:"outcome"`
	Description string `json:"description"`
}

// info converts a rule to its documentation form.
func (r Rule) info(order int) RuleInfo {
	outcome := "non_compliant"
	if r.Compliant {
		outcome = "compliant"
	}
	return RuleInfo{
		ID:          r.ID,
		Category:    r.Category.String(),
		Order:       order,
		Outcome:     outcome,
		Description: r.Description,
	}
}

func always(string) bool { return true }

func fixed(msg string) ExplainFunc {
	return func(string) string { return msg }
}
