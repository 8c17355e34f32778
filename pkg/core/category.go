package core

import "strings"

// Category selects which naming rule set applies to an identifier.
type Category int

// Known categories. CategoryUnknown falls back to the permissive default rule.
const (
	CategoryUnknown Category = iota
	CategoryView
	CategoryTable
	CategoryProcedure
	CategoryPrimaryKey
	CategoryForeignKey
)

// categoryLabels maps lowercased labels to categories.
// "tabela" is the label used by the example data for tables.
var categoryLabels = map[string]Category{
	"view":       CategoryView,
	"table":      CategoryTable,
	"tabela":     CategoryTable,
	"procedure":  CategoryProcedure,
	"pk":         CategoryPrimaryKey,
	"primarykey": CategoryPrimaryKey,
	"fk":         CategoryForeignKey,
	"foreignkey": CategoryForeignKey,
}

// ParseCategory converts a label to a Category, ignoring case.
// Folding applies to every label, so "VIEW" and "tABELA" select rule sets
// even though the example data only writes "View", "Tabela", "Procedure"
// and "PK"/"pk", "FK"/"fk". Unrecognized labels yield CategoryUnknown; the
// label is not trimmed.
func ParseCategory(label string) Category {
	if c, ok := categoryLabels[strings.ToLower(label)]; ok {
		return c
	}
	return CategoryUnknown
}

// String returns the canonical name of the category.
func (c Category) String() string {
	switch c {
	case CategoryView:
		return "View"
	case CategoryTable:
		return "Table"
	case CategoryProcedure:
		return "Procedure"
	case CategoryPrimaryKey:
		return "PrimaryKey"
	case CategoryForeignKey:
		return "ForeignKey"
	default:
		return "Unknown"
	}
}

// Categories returns every known category in display order, Unknown last.
func Categories() []Category {
	return []Category{
		CategoryView,
		CategoryTable,
		CategoryProcedure,
		CategoryPrimaryKey,
		CategoryForeignKey,
		CategoryUnknown,
	}
}
