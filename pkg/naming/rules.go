package naming

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leapaudit/pkg/core"
)

// emptyFallback stands in for the last character of an empty identifier.
// It never matches an operation code.
const emptyFallback = ' '

// operationCodes maps procedure suffix letters to the operation they denote.
var operationCodes = map[rune]string{
	'S': "Select",
	'I': "Insert",
	'E': "Erase",
	'A': "Alter",
	'R': "Report",
}

var viewRules = []Rule{
	{
		ID:          "VW01",
		Category:    core.CategoryView,
		Compliant:   true,
		Description: "starts with 'vw' and contains no '_'",
		Match: func(s string) bool {
			return strings.HasPrefix(s, "vw") && !strings.Contains(s, "_")
		},
		Explain: fixed("Compliant: starts with the 'vw' prefix and uses PascalCase."),
	},
	{
		ID:          "VW02",
		Category:    core.CategoryView,
		Description: "starts with 'vw' but contains '_'",
		Match:       func(s string) bool { return strings.HasPrefix(s, "vw") },
		Explain:     fixed("Non-compliant: view starts with 'vw' but contains '_' (use PascalCase)."),
	},
	{
		ID:          "VW03",
		Category:    core.CategoryView,
		Compliant:   true,
		Description: "starts with 'vm' (materialized view)",
		Match:       func(s string) bool { return strings.HasPrefix(s, "vm") },
		Explain:     fixed("Compliant: starts with the 'vm' prefix (materialized view)."),
	},
	{
		ID:          "VW04",
		Category:    core.CategoryView,
		Description: "any other view name",
		Match:       always,
		Explain:     fixed("Non-compliant: views must start with 'vw' or 'vm'."),
	},
}

var tableRules = []Rule{
	{
		ID:          "TB01",
		Category:    core.CategoryTable,
		Description: "starts with 'tb'",
		Match:       func(s string) bool { return strings.HasPrefix(s, "tb") },
		Explain:     fixed("Non-compliant: tables must not use the 'tb' prefix."),
	},
	{
		ID:          "TB02",
		Category:    core.CategoryTable,
		Description: "contains '_'",
		Match:       func(s string) bool { return strings.Contains(s, "_") },
		Explain:     fixed("Non-compliant: tables must use PascalCase (no underscores), not snake_case."),
	},
	{
		ID:          "TB03",
		Category:    core.CategoryTable,
		Compliant:   true,
		Description: "starts with 'Log' or 'tmp'",
		Match: func(s string) bool {
			return strings.HasPrefix(s, "Log") || strings.HasPrefix(s, "tmp")
		},
		Explain: fixed("Compliant: accepted special prefix (Log/tmp)."),
	},
	{
		ID:          "TB04",
		Category:    core.CategoryTable,
		Description: "ends in 's' but not in 'ss' or 'is' (plural heuristic)",
		Match:       looksPlural,
		Explain:     fixed("Non-compliant: table name appears to be plural; it must be singular."),
	},
	{
		ID:          "TB05",
		Category:    core.CategoryTable,
		Compliant:   true,
		Description: "any other table name",
		Match:       always,
		Explain:     fixed("Compliant: descriptive, singular PascalCase name."),
	},
}

var procedureRules = []Rule{
	{
		ID:          "PR01",
		Category:    core.CategoryProcedure,
		Compliant:   true,
		Description: "starts with 'Batch'",
		Match:       func(s string) bool { return strings.HasPrefix(s, "Batch") },
		Explain:     fixed("Compliant: batch-processing procedure starts with 'Batch'."),
	},
	{
		ID:          "PR02",
		Category:    core.CategoryProcedure,
		Compliant:   true,
		Description: "last character is an operation code (S, I, E, A, R)",
		Match: func(s string) bool {
			_, ok := operationCodes[lastChar(s)]
			return ok
		},
		Explain: func(s string) string {
			c := lastChar(s)
			return fmt.Sprintf("Compliant: ends with operation code '%c' (%s).", c, operationCodes[c])
		},
	},
	{
		ID:          "PR03",
		Category:    core.CategoryProcedure,
		Description: "any other procedure name",
		Match:       always,
		Explain:     fixed("Non-compliant: CRUD procedures must end with the operation-code letter (S, I, E, A, R)."),
	},
}

var primaryKeyRules = []Rule{
	{
		ID:          "PK01",
		Category:    core.CategoryPrimaryKey,
		Compliant:   true,
		Description: "starts with 'pk' and contains no '_'",
		Match: func(s string) bool {
			return strings.HasPrefix(s, "pk") && !strings.Contains(s, "_")
		},
		Explain: fixed("Compliant: 'pk' prefix + TableName in PascalCase."),
	},
	{
		ID:          "PK02",
		Category:    core.CategoryPrimaryKey,
		Description: "any other primary key name",
		Match:       always,
		Explain:     fixed("Non-compliant: primary keys must be 'pk' + TableName, with no underscore."),
	},
}

var foreignKeyRules = []Rule{
	{
		ID:          "FK01",
		Category:    core.CategoryForeignKey,
		Compliant:   true,
		Description: "starts with 'fk'",
		Match:       func(s string) bool { return strings.HasPrefix(s, "fk") },
		Explain:     fixed("Compliant: 'fk' prefix + TableName."),
	},
	{
		ID:          "FK02",
		Category:    core.CategoryForeignKey,
		Description: "any other foreign key name",
		Match:       always,
		Explain:     fixed("Non-compliant: foreign keys must start with 'fk'."),
	},
}

var defaultRules = []Rule{
	{
		ID:          "DF01",
		Category:    core.CategoryUnknown,
		Compliant:   true,
		Description: "any identifier of an unrecognized category",
		Match:       always,
		Explain:     fixed("Generic validation: format accepted for example purposes."),
	},
}

// decisionLists holds the ordered rules for each category.
var decisionLists = map[core.Category][]Rule{
	core.CategoryView:       viewRules,
	core.CategoryTable:      tableRules,
	core.CategoryProcedure:  procedureRules,
	core.CategoryPrimaryKey: primaryKeyRules,
	core.CategoryForeignKey: foreignKeyRules,
	core.CategoryUnknown:    defaultRules,
}

// looksPlural is the coarse plural check for table names.
func looksPlural(s string) bool {
	return strings.HasSuffix(s, "s") &&
		!strings.HasSuffix(s, "ss") &&
		!strings.HasSuffix(s, "is")
}

// lastChar returns the final character of s, or emptyFallback when s is empty.
func lastChar(s string) rune {
	if s == "" {
		return emptyFallback
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
