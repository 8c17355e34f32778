package output

import "github.com/leapstack-labs/leapaudit/pkg/core"

// AuditResult is one audited identifier.
type AuditResult struct {
	Category    string `json:"category"`
	Identifier  string `json:"identifier"`
	Status      string `json:"status"`
	Compliant   bool   `json:"compliant"`
	RuleID      string `json:"rule_id"`
	Explanation string `json:"explanation"`
}

// AuditSummary counts audit outcomes.
type AuditSummary struct {
	Total        int `json:"total"`
	Compliant    int `json:"compliant"`
	NonCompliant int `json:"non_compliant"`
}

// AuditOutput is the JSON shape of the audit command.
type AuditOutput struct {
	Results []AuditResult `json:"results"`
	Summary AuditSummary  `json:"summary"`
}

// RuleInfo describes one branch of a category's decision list.
type RuleInfo struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Order       int    `json:"order"`
	Outcome     string `json:"outcome"`
	Description string `json:"description"`
}

// RulesOutput is the JSON shape of the rules command.
type RulesOutput struct {
	Rules []RuleInfo `json:"rules"`
	Total int        `json:"total"`
}

// SeedResult is the outcome of seeding one identifier.
type SeedResult struct {
	Category   string `json:"category"`
	Identifier string `json:"identifier"`
	Status     string `json:"status"`
	ID         int64  `json:"id,omitempty"`
	Stage      string `json:"stage,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SeedSummary counts seed outcomes.
type SeedSummary struct {
	Total      int    `json:"total"`
	Inserted   int    `json:"inserted"`
	Failed     int    `json:"failed"`
	DurationMs int64  `json:"duration_ms"`
	Store      string `json:"store"`
	Embedder   string `json:"embedder"`
}

// SeedOutput is the JSON shape of the seed command.
type SeedOutput struct {
	RunID   string       `json:"run_id"`
	Results []SeedResult `json:"results"`
	Summary SeedSummary  `json:"summary"`
}

// SearchOutput is the JSON shape of the search command.
type SearchOutput struct {
	Query   string       `json:"query"`
	Focus   string       `json:"focus,omitempty"`
	Limit   int          `json:"limit"`
	Matches []core.Match `json:"matches"`
}

// VersionInfo is the JSON shape of the version command.
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}
