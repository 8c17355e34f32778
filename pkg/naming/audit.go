package naming

import "github.com/leapstack-labs/leapaudit/pkg/core"

// Audit returns the verdict for an identifier under the given category.
// It never fails: unrecognized categories use the permissive default rule.
func Audit(category core.Category, identifier string) core.Verdict {
	for _, r := range decisionList(category) {
		if r.Match(identifier) {
			return r.verdict(identifier)
		}
	}
	// Unreachable while every list ends with a catch-all rule.
	return defaultRules[0].verdict(identifier)
}

// AuditLabel parses a category label (e.g. "Tabela", "pk") and audits the identifier.
func AuditLabel(label, identifier string) core.Verdict {
	return Audit(core.ParseCategory(label), identifier)
}

// Rules returns the full decision table in evaluation order, grouped by category.
func Rules() []RuleInfo {
	var infos []RuleInfo
	for _, c := range core.Categories() {
		infos = append(infos, RulesFor(c)...)
	}
	return infos
}

// RulesFor returns the decision list of a single category in evaluation order.
func RulesFor(category core.Category) []RuleInfo {
	rules := decisionList(category)
	infos := make([]RuleInfo, 0, len(rules))
	for i, r := range rules {
		infos = append(infos, r.info(i+1))
	}
	return infos
}

// GetByID returns a rule's metadata by its ID.
func GetByID(id string) (RuleInfo, bool) {
	for _, c := range core.Categories() {
		for i, r := range decisionList(c) {
			if r.ID == id {
				return r.info(i + 1), true
			}
		}
	}
	return RuleInfo{}, false
}

func decisionList(category core.Category) []Rule {
	if rules, ok := decisionLists[category]; ok {
		return rules
	}
	return defaultRules
}
