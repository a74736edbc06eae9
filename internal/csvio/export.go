// Package csvio maps a ledger document to and from a flat CSV interchange
// format. Export writes canonical comma-separated RFC 4180 output; import is
// tolerant of semicolon delimiters, localized headers, locale-formatted
// amounts and lenient month spellings.
package csvio

import (
	"encoding/csv"
	"sort"
	"strings"

	"despeses/internal/core"
	"despeses/internal/ledger"
)

// Header is the canonical export header row.
var Header = []string{"type", "month", "name", "amount", "category", "note"}

// Rows flattens the document into tabular form, header row first. The last
// opened month (or the current one) is initialized before flattening so
// freshly carried-forward fixed entries are included. Months come out in
// ascending key order so output is deterministic.
func Rows(doc *core.Document) [][]string {
	current := doc.LastOpenedMonth
	if current == "" {
		current = core.CurrentMonthKey()
	}
	ledger.EnsureMonth(doc, current)

	keys := make([]string, 0, len(doc.Months))
	for key := range doc.Months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := [][]string{Header}
	for _, key := range keys {
		month := doc.Months[key]
		for _, e := range month.Fixed {
			rows = append(rows, entryRow("fixed", key, e))
		}
		for _, e := range month.Variable {
			rows = append(rows, entryRow("variable", key, e))
		}
	}
	return rows
}

// Export renders the document as CSV text, one row per concrete entry.
func Export(doc *core.Document) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.WriteAll(Rows(doc))
	return sb.String()
}

func entryRow(kind, monthKey string, e core.ExpenseEntry) []string {
	return []string{kind, monthKey, e.Name, core.FormatAmount(e.Amount), e.Category, e.Note}
}
