package core

// Example is an audited identifier ready to be stored alongside its embedding.
type Example struct {
	Category   string // Category label as supplied by the caller, e.g. "Tabela"
	Identifier string
	Verdict    Verdict
	Embedding  []float32
}

// SearchQuery describes a similarity lookup over stored examples.
type SearchQuery struct {
	Embedding []float32
	Focus     string // Category label to boost; empty disables the boost
	Limit     int
}

// Match is a stored example returned by a similarity search.
type Match struct {
	ID          int64   `json:"id"`
	Category    string  `json:"category"`
	Identifier  string  `json:"identifier"`
	Compliant   bool    `json:"compliant"`
	Explanation string  `json:"explanation"`
	Distance    float64 `json:"distance"`
}
