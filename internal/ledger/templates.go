package ledger

import "despeses/internal/core"

// TemplateUpdate is a partial update for a fixed template. Nil fields keep
// the old template's values.
type TemplateUpdate struct {
	Name     *string
	Amount   *string
	Category *string
	Note     *string
}

// AddFixedTemplate appends a recurring-expense definition effective from
// effectiveMonth and returns it.
func AddFixedTemplate(doc *core.Document, in EntryInput, effectiveMonth string) core.FixedTemplate {
	tpl := core.FixedTemplate{
		ID:         core.NewID(),
		Name:       in.Name,
		Amount:     core.ParseAmount(in.Amount),
		Category:   in.Category,
		Note:       in.Note,
		StartMonth: effectiveMonth,
	}
	doc.FixedTemplates = append(doc.FixedTemplates, tpl)
	return tpl
}

// UpdateFixedTemplate records a template edit without rewriting history: it
// appends a new template carrying the merged values with StartMonth set to
// effectiveMonth, leaving the old record valid for earlier months. Fixed
// entries materialized from the old template in months at or after
// effectiveMonth are then rewritten to the new template's values; months
// before effectiveMonth keep their historical entries. Unknown template IDs
// are silent no-ops.
func UpdateFixedTemplate(doc *core.Document, templateID string, upd TemplateUpdate, effectiveMonth string) {
	var old *core.FixedTemplate
	for i := range doc.FixedTemplates {
		if doc.FixedTemplates[i].ID == templateID {
			old = &doc.FixedTemplates[i]
			break
		}
	}
	if old == nil {
		return
	}

	next := core.FixedTemplate{
		ID:         core.NewID(),
		Name:       old.Name,
		Amount:     old.Amount,
		Category:   old.Category,
		Note:       old.Note,
		StartMonth: effectiveMonth,
	}
	if upd.Name != nil {
		next.Name = *upd.Name
	}
	if upd.Amount != nil {
		next.Amount = core.ParseAmount(*upd.Amount)
	}
	if upd.Category != nil {
		next.Category = *upd.Category
	}
	if upd.Note != nil {
		next.Note = *upd.Note
	}
	doc.FixedTemplates = append(doc.FixedTemplates, next)

	// Fixed-width month keys compare chronologically as strings.
	for monthKey := range doc.Months {
		if monthKey < effectiveMonth {
			continue
		}
		EnsureMonth(doc, monthKey)
		list := doc.Months[monthKey].Fixed
		for i := range list {
			if list[i].TemplateID != templateID {
				continue
			}
			list[i].TemplateID = next.ID
			list[i].Name = next.Name
			list[i].Amount = next.Amount
			list[i].Category = next.Category
			list[i].Note = next.Note
		}
	}
}

// DeleteFixedTemplate removes the template record. Already-materialized
// month entries stay as historical fact.
func DeleteFixedTemplate(doc *core.Document, templateID string) {
	kept := doc.FixedTemplates[:0]
	for _, t := range doc.FixedTemplates {
		if t.ID != templateID {
			kept = append(kept, t)
		}
	}
	doc.FixedTemplates = kept
}
