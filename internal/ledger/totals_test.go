package ledger

import "testing"

func TestSumsForMonth(t *testing.T) {
	doc := testDoc()
	AddFixed(doc, "2024-05", EntryInput{Name: "Lloguer", Amount: "800", Category: "Habitatge"})
	AddFixed(doc, "2024-05", EntryInput{Name: "Internet", Amount: "30,50", Category: "Habitatge"})
	AddVariable(doc, "2024-05", EntryInput{Name: "Cinema", Amount: "9.50", Category: "Oci"})

	if got := SumFixedForMonth(doc, "2024-05"); got != 830.5 {
		t.Fatalf("fixed sum = %v, want 830.5", got)
	}
	if got := SumVariableForMonth(doc, "2024-05"); got != 9.5 {
		t.Fatalf("variable sum = %v, want 9.5", got)
	}
	if got := SumFixedForMonth(doc, "2019-01"); got != 0 {
		t.Fatalf("empty month sum = %v, want 0", got)
	}
}

func TestTotalsByCategoryForMonth(t *testing.T) {
	doc := testDoc()
	AddFixed(doc, "2024-05", EntryInput{Name: "Super", Amount: "10", Category: "Menjar"})
	AddVariable(doc, "2024-05", EntryInput{Name: "Restaurant", Amount: "5", Category: "Menjar"})
	AddVariable(doc, "2024-05", EntryInput{Name: "Cinema", Amount: "3", Category: "Oci"})

	totals := TotalsByCategoryForMonth(doc, "2024-05")
	if len(totals) != 2 {
		t.Fatalf("expected 2 rows, got %+v", totals)
	}
	if totals[0].Category != "Menjar" || totals[0].Amount != 15 {
		t.Fatalf("row 0 = %+v, want Menjar 15", totals[0])
	}
	if totals[1].Category != "Oci" || totals[1].Amount != 3 {
		t.Fatalf("row 1 = %+v, want Oci 3", totals[1])
	}
}

func TestTotalsByCategoryUncategorized(t *testing.T) {
	doc := testDoc()
	AddVariable(doc, "2024-05", EntryInput{Name: "Misc", Amount: "7"})
	totals := TotalsByCategoryForMonth(doc, "2024-05")
	if len(totals) != 1 || totals[0].Category != "Altres" || totals[0].Amount != 7 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestTotalsByMonthForYear(t *testing.T) {
	doc := testDoc()
	AddFixed(doc, "2024-03", EntryInput{Name: "Lloguer", Amount: "800", Category: "Habitatge"})
	AddVariable(doc, "2024-03", EntryInput{Name: "Cinema", Amount: "10", Category: "Oci"})

	series := TotalsByMonthForYear(doc, 2024)
	if len(series) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(series))
	}
	if series[0].MonthKey != "2024-01" || series[11].MonthKey != "2024-12" {
		t.Fatalf("unexpected bounds: %s .. %s", series[0].MonthKey, series[11].MonthKey)
	}
	mar := series[2]
	if mar.Fixed != 800 || mar.Variable != 10 || mar.Total != 810 {
		t.Fatalf("march totals = %+v", mar)
	}

	// The carry-forward side effect applies: April inherits March's fixed list.
	apr := series[3]
	if apr.Fixed != 800 || apr.Total != 800 {
		t.Fatalf("april totals = %+v", apr)
	}

	// Every month is materialized afterwards.
	for _, key := range []string{"2024-01", "2024-12"} {
		if doc.Months[key] == nil {
			t.Fatalf("month %s not initialized", key)
		}
	}
}
