// Package naming audits database-object identifiers against the house naming standard.
//
// Each category (view, table, procedure, primary key, foreign key) owns an ordered
// decision list. Rules are evaluated top to bottom and the first match produces the
// verdict, so rule order is part of the standard. The last rule of every list matches
// unconditionally, which makes Audit total: every input yields exactly one verdict.
//
// All checks are literal and case-sensitive. Identifiers are never trimmed or
// normalized, and qualifiers such as ".scp" are kept as part of the name.
package naming
