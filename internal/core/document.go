package core

import "time"

// DefaultCategories seeds a fresh document. Names are in Catalan, matching
// the data files this tool exchanges with.
var DefaultCategories = []string{
	"Habitatge",
	"Menjar",
	"Transport",
	"Oci",
}

// UncategorizedLabel groups entries whose category field is empty.
const UncategorizedLabel = "Altres"

type (
	// ExpenseEntry is a concrete expense booked against one month. Entries in
	// the fixed list may carry a TemplateID back-reference when they were
	// materialized from a template edit.
	ExpenseEntry struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Amount     float64   `json:"amount"`
		Category   string    `json:"category"`
		Note       string    `json:"note,omitempty"`
		CreatedAt  time.Time `json:"createdAt"`
		TemplateID string    `json:"templateId,omitempty"`
	}

	// FixedTemplate is an append-only definition of a recurring expense.
	// Templates are never edited in place: changing one appends a new record
	// with a later StartMonth, leaving the old record valid for earlier months.
	FixedTemplate struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		Amount     float64 `json:"amount"`
		Category   string  `json:"category"`
		Note       string  `json:"note,omitempty"`
		StartMonth string  `json:"startMonth"`
	}

	// MonthRecord holds one calendar month's expenses. FixedAppliedFromTemplates
	// becomes true after the carry-forward initialization has run once.
	MonthRecord struct {
		Fixed                     []ExpenseEntry `json:"fixed"`
		Variable                  []ExpenseEntry `json:"variable"`
		FixedAppliedFromTemplates bool           `json:"fixedAppliedFromTemplates"`
	}

	// Document is the whole persisted ledger state.
	Document struct {
		Categories      []string                `json:"categories"`
		FixedTemplates  []FixedTemplate         `json:"fixedTemplates"`
		Months          map[string]*MonthRecord `json:"months"`
		LastOpenedMonth string                  `json:"lastOpenedMonth"`
	}
)

// NewDocument returns a fresh default document anchored at the current month.
func NewDocument() *Document {
	return &Document{
		Categories:      append([]string(nil), DefaultCategories...),
		FixedTemplates:  []FixedTemplate{},
		Months:          map[string]*MonthRecord{},
		LastOpenedMonth: CurrentMonthKey(),
	}
}

// Normalize fills in any missing top-level field. It is applied to documents
// parsed from storage, where older blobs may lack newer fields.
func (d *Document) Normalize() {
	if d.Categories == nil {
		d.Categories = append([]string(nil), DefaultCategories...)
	}
	if d.FixedTemplates == nil {
		d.FixedTemplates = []FixedTemplate{}
	}
	if d.Months == nil {
		d.Months = map[string]*MonthRecord{}
	}
	if !IsMonthKey(d.LastOpenedMonth) {
		d.LastOpenedMonth = CurrentMonthKey()
	}
}

// EntryCount returns the number of concrete entries across all months.
func (d *Document) EntryCount() int {
	n := 0
	for _, m := range d.Months {
		n += len(m.Fixed) + len(m.Variable)
	}
	return n
}
