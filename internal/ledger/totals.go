package ledger

import "despeses/internal/core"

type (
	// CategoryTotal is one row of a per-category breakdown.
	CategoryTotal struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}

	// MonthTotals is one row of a per-year series.
	MonthTotals struct {
		MonthKey string  `json:"monthKey"`
		Fixed    float64 `json:"fixed"`
		Variable float64 `json:"variable"`
		Total    float64 `json:"total"`
	}
)

// The queries below go through Month and therefore share its ensure+read
// contract: summing a month that was never opened initializes it first.

// SumFixedForMonth returns the sum of the month's fixed amounts.
func SumFixedForMonth(doc *core.Document, monthKey string) float64 {
	return sumAmounts(Month(doc, monthKey).Fixed)
}

// SumVariableForMonth returns the sum of the month's variable amounts.
func SumVariableForMonth(doc *core.Document, monthKey string) float64 {
	return sumAmounts(Month(doc, monthKey).Variable)
}

// TotalsByCategoryForMonth merges the month's fixed and variable entries and
// groups their amounts by category name. Entries without a category fall
// under the "Altres" sentinel. Rows come back in first-seen order, fixed
// entries before variable, so the breakdown is deterministic without the
// caller re-sorting.
func TotalsByCategoryForMonth(doc *core.Document, monthKey string) []CategoryTotal {
	month := Month(doc, monthKey)

	index := map[string]int{}
	totals := []CategoryTotal{}
	add := func(e core.ExpenseEntry) {
		cat := e.Category
		if cat == "" {
			cat = core.UncategorizedLabel
		}
		if i, ok := index[cat]; ok {
			totals[i].Amount += e.Amount
			return
		}
		index[cat] = len(totals)
		totals = append(totals, CategoryTotal{Category: cat, Amount: e.Amount})
	}
	for _, e := range month.Fixed {
		add(e)
	}
	for _, e := range month.Variable {
		add(e)
	}
	return totals
}

// TotalsByMonthForYear returns the twelve-month series for year, from
// year-01 through year-12. Each month is initialized as a side effect.
func TotalsByMonthForYear(doc *core.Document, year int) []MonthTotals {
	keys := core.YearMonthKeys(year)
	series := make([]MonthTotals, len(keys))
	for i, key := range keys {
		EnsureMonth(doc, key)
		fixed := SumFixedForMonth(doc, key)
		variable := SumVariableForMonth(doc, key)
		series[i] = MonthTotals{
			MonthKey: key,
			Fixed:    fixed,
			Variable: variable,
			Total:    fixed + variable,
		}
	}
	return series
}

func sumAmounts(entries []core.ExpenseEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}
