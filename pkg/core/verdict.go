package core

// Verdict is the outcome of auditing one identifier.
// Verdicts are plain values; two audits of the same input compare equal.
type Verdict struct {
	Compliant   bool   `json:"compliant"`
	Explanation string `json:"explanation"`
	RuleID      string `json:"rule_id"` // Decision-list branch that matched, e.g. "VW01"
}

// Status returns "compliant" or "non_compliant".
func (v Verdict) Status() string {
	if v.Compliant {
		return "compliant"
	}
	return "non_compliant"
}
