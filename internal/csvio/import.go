package csvio

import (
	"errors"
	"strings"

	"despeses/internal/core"
	"despeses/internal/ledger"
)

// ErrEmptyImport signals input with no lines at all. The caller's document
// must be left untouched when Import fails.
var ErrEmptyImport = errors.New("csv import: empty input")

// Header aliases, matched case-insensitively. The Catalan and Spanish forms
// let spreadsheets exported from localized tools round-trip.
var columnAliases = map[string][]string{
	"type":     {"type", "tipus"},
	"month":    {"month", "mes"},
	"name":     {"name", "nom"},
	"amount":   {"amount", "import", "importe"},
	"category": {"category", "categoria"},
	"note":     {"note", "nota"},
}

// Import parses CSV text into a brand-new document. The result replaces any
// existing document wholesale; nothing is merged.
//
// Rows need a non-empty name and, to produce an entry, a type of "fixed" or
// "variable" plus a month that normalizes to YYYY-MM. Other type values are
// accepted (their category is still learned) but yield no entries. Imported
// months are marked as template-applied so carry-forward never overwrites
// authoritative imported data.
func Import(text string) (*core.Document, error) {
	var lines []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyImport
	}

	delim := detectDelimiter(lines[0])
	header := splitLine(lines[0], delim)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	idx := func(field string) int {
		for _, alias := range columnAliases[field] {
			for i, h := range header {
				if h == alias {
					return i
				}
			}
		}
		return -1
	}
	idxType := idx("type")
	idxMonth := idx("month")
	idxName := idx("name")
	idxAmount := idx("amount")
	idxCategory := idx("category")
	idxNote := idx("note")

	doc := core.NewDocument()
	firstMonthSeen := ""
	for _, line := range lines[1:] {
		cols := splitLine(line, delim)
		field := func(i int) string {
			if i < 0 || i >= len(cols) {
				return ""
			}
			return strings.TrimSpace(cols[i])
		}
		name := field(idxName)
		if name == "" {
			continue
		}
		kind := strings.ToLower(field(idxType))
		category := field(idxCategory)
		if category != "" {
			ledger.AddCategory(doc, category)
		}
		if kind != "fixed" && kind != "variable" {
			continue
		}
		monthKey := core.NormalizeMonthKey(field(idxMonth))
		if monthKey == "" {
			continue
		}

		// Imported rows are authoritative for this month: the record is
		// created already marked as applied so carry-forward never copies
		// entries from an earlier imported month on top of them.
		month, ok := doc.Months[monthKey]
		if !ok {
			month = &core.MonthRecord{
				Fixed:                     []core.ExpenseEntry{},
				Variable:                  []core.ExpenseEntry{},
				FixedAppliedFromTemplates: true,
			}
			doc.Months[monthKey] = month
		}
		if firstMonthSeen == "" {
			firstMonthSeen = monthKey
		}
		entry := core.ExpenseEntry{
			ID:       core.NewID(),
			Name:     name,
			Amount:   core.ParseAmount(field(idxAmount)),
			Category: category,
			Note:     field(idxNote),
		}
		if kind == "fixed" {
			month.Fixed = append(month.Fixed, entry)
		} else {
			month.Variable = append(month.Variable, entry)
		}
	}
	if firstMonthSeen != "" {
		doc.LastOpenedMonth = firstMonthSeen
	}
	return doc, nil
}

// detectDelimiter picks comma or semicolon, whichever occurs more often
// outside quoted spans in the header line. Ties go to comma.
func detectDelimiter(line string) rune {
	if countOutsideQuotes(line, ';') > countOutsideQuotes(line, ',') {
		return ';'
	}
	return ','
}

func countOutsideQuotes(line string, delim rune) int {
	count := 0
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			count++
		}
	}
	return count
}

// splitLine is a quote-aware field splitter: a doubled quote inside a quoted
// field escapes a literal quote. Unlike encoding/csv it never fails: stray
// quotes and ragged rows are tolerated, matching the leniency of the rest of
// the importer.
func splitLine(line string, delim rune) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if inQuotes {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					cur.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteRune(r)
			}
			continue
		}
		switch r {
		case delim:
			fields = append(fields, cur.String())
			cur.Reset()
		case '"':
			inQuotes = true
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}
