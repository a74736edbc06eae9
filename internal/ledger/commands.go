package ledger

import "despeses/internal/core"

type (
	// EntryInput carries the fields for a new expense entry. Amount arrives
	// as text and is parsed leniently.
	EntryInput struct {
		Name     string
		Amount   string
		Category string
		Note     string
	}

	// EntryUpdate is a partial update. A nil field means "leave untouched",
	// which keeps "set amount to 0" distinct from "don't touch amount".
	EntryUpdate struct {
		Name     *string
		Amount   *string
		Category *string
		Note     *string
	}
)

// AddCategory appends name unless it is already present. Duplicate adds are
// silent no-ops rather than errors.
func AddCategory(doc *core.Document, name string) {
	for _, c := range doc.Categories {
		if c == name {
			return
		}
	}
	doc.Categories = append(doc.Categories, name)
}

// DeleteCategory removes name from the category list. Entries referencing
// the deleted name are left untouched; a dangling category name is valid
// data and still shows up in aggregations.
func DeleteCategory(doc *core.Document, name string) {
	kept := doc.Categories[:0]
	for _, c := range doc.Categories {
		if c != name {
			kept = append(kept, c)
		}
	}
	doc.Categories = kept
}

// AddVariable appends a one-off expense to the month's variable list and
// returns the created entry.
func AddVariable(doc *core.Document, monthKey string, in EntryInput) core.ExpenseEntry {
	month := Month(doc, monthKey)
	entry := newEntry(in)
	month.Variable = append(month.Variable, entry)
	return entry
}

// UpdateVariable merges upd onto the variable entry with the given ID.
// Unknown IDs are silent no-ops.
func UpdateVariable(doc *core.Document, monthKey, id string, upd EntryUpdate) {
	month := Month(doc, monthKey)
	applyUpdate(month.Variable, id, upd)
}

// DeleteVariable removes the variable entry with the given ID, if present.
func DeleteVariable(doc *core.Document, monthKey, id string) {
	month := Month(doc, monthKey)
	month.Variable = removeEntry(month.Variable, id)
}

// AddFixed appends a concrete fixed expense to the month's fixed list and
// returns the created entry. The entry belongs to this month only; it is
// not linked to any template.
func AddFixed(doc *core.Document, monthKey string, in EntryInput) core.ExpenseEntry {
	month := Month(doc, monthKey)
	entry := newEntry(in)
	month.Fixed = append(month.Fixed, entry)
	return entry
}

// UpdateFixed merges upd onto the fixed entry with the given ID.
func UpdateFixed(doc *core.Document, monthKey, id string, upd EntryUpdate) {
	month := Month(doc, monthKey)
	applyUpdate(month.Fixed, id, upd)
}

// DeleteFixed removes the fixed entry with the given ID, if present.
func DeleteFixed(doc *core.Document, monthKey, id string) {
	month := Month(doc, monthKey)
	month.Fixed = removeEntry(month.Fixed, id)
}

func newEntry(in EntryInput) core.ExpenseEntry {
	return core.ExpenseEntry{
		ID:        core.NewID(),
		Name:      in.Name,
		Amount:    core.ParseAmount(in.Amount),
		Category:  in.Category,
		Note:      in.Note,
		CreatedAt: timeNow(),
	}
}

func applyUpdate(list []core.ExpenseEntry, id string, upd EntryUpdate) {
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if upd.Name != nil {
			list[i].Name = *upd.Name
		}
		if upd.Amount != nil {
			list[i].Amount = core.ParseAmount(*upd.Amount)
		}
		if upd.Category != nil {
			list[i].Category = *upd.Category
		}
		if upd.Note != nil {
			list[i].Note = *upd.Note
		}
		return
	}
}

func removeEntry(list []core.ExpenseEntry, id string) []core.ExpenseEntry {
	kept := list[:0]
	for _, e := range list {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return kept
}
