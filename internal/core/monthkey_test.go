package core

import (
	"testing"
	"time"
)

func TestMonthKey(t *testing.T) {
	got := MonthKey(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	if got != "2024-03" {
		t.Fatalf("expected 2024-03, got %s", got)
	}
}

func TestPrevMonthKey(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"2024-05", "2024-04"},
		{"2024-01", "2023-12"}, // year borrow
		{"2024-12", "2024-11"},
		{"2000-01", "1999-12"},
		{"x", ""}, // non-canonical input has no previous month
		{"", ""},
		{"2024-5", ""},
	}
	for _, tc := range cases {
		if got := PrevMonthKey(tc.in); got != tc.out {
			t.Fatalf("PrevMonthKey(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestNormalizeMonthKey(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"2024-05", "2024-05"},
		{"2024-5", "2024-05"},
		{"2024/5", "2024-05"},
		{"2024/05", "2024-05"},
		{"2024", ""},
		{"24-05", ""},
		{"2024-005", ""},
		{"gener", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeMonthKey(tc.in); got != tc.out {
			t.Fatalf("NormalizeMonthKey(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestYearMonthKeys(t *testing.T) {
	keys := YearMonthKeys(2024)
	if len(keys) != 12 {
		t.Fatalf("expected 12 keys, got %d", len(keys))
	}
	if keys[0] != "2024-01" || keys[11] != "2024-12" {
		t.Fatalf("unexpected bounds: %s .. %s", keys[0], keys[11])
	}
}

func TestIsMonthKey(t *testing.T) {
	if !IsMonthKey("2024-07") {
		t.Fatalf("expected 2024-07 to be valid")
	}
	for _, s := range []string{"2024-7", "2024/07", "202407", ""} {
		if IsMonthKey(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
