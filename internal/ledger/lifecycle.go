// Package ledger implements the month lifecycle, the command set that
// mutates a ledger document and the read-only aggregation queries.
//
// All functions are total: missing entities make commands silent no-ops and
// unparsable amounts coerce to zero. Callers validate required fields before
// invoking a command.
package ledger

import (
	"time"

	"despeses/internal/core"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// EnsureMonth makes sure the month record for key exists and has been
// through carry-forward initialization. On the first initialization of a
// month whose fixed list is empty, the previous month's fixed entries are
// copied in with fresh IDs. The applied flag is set either way, so repeated
// calls never copy twice. Idempotent; mutates doc in place.
func EnsureMonth(doc *core.Document, key string) {
	month, ok := doc.Months[key]
	if !ok {
		month = &core.MonthRecord{
			Fixed:    []core.ExpenseEntry{},
			Variable: []core.ExpenseEntry{},
		}
		doc.Months[key] = month
	}
	if month.FixedAppliedFromTemplates {
		return
	}
	if len(month.Fixed) == 0 {
		if prev, ok := doc.Months[core.PrevMonthKey(key)]; ok && len(prev.Fixed) > 0 {
			copied := make([]core.ExpenseEntry, len(prev.Fixed))
			for i, e := range prev.Fixed {
				e.ID = core.NewID()
				copied[i] = e
			}
			month.Fixed = copied
		}
	}
	month.FixedAppliedFromTemplates = true
}

// Month returns the record for key, initializing it first. Every caller of
// this function is a potential writer: reading a month that has never been
// opened materializes it and runs carry-forward.
func Month(doc *core.Document, key string) *core.MonthRecord {
	EnsureMonth(doc, key)
	return doc.Months[key]
}

// PeekMonth is the strictly read-only counterpart of Month. It returns nil
// when the month has never been initialized and never mutates doc.
func PeekMonth(doc *core.Document, key string) *core.MonthRecord {
	return doc.Months[key]
}
