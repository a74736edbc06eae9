package core

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Month keys are canonical "YYYY-MM" strings. Their fixed width makes plain
// string comparison equivalent to chronological comparison, which the
// template propagation logic relies on.

var (
	monthKeyRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	// Lenient form accepted on import: 4-digit year, "-" or "/", 1-2 digit month.
	lenientMonthRe = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})$`)
)

// MonthKey returns the canonical key for the month containing t.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// CurrentMonthKey returns the key for the current calendar month.
func CurrentMonthKey() string {
	return MonthKey(time.Now())
}

// IsMonthKey reports whether s is a canonical month key.
func IsMonthKey(s string) bool {
	return monthKeyRe.MatchString(s)
}

// PrevMonthKey returns the key of the calendar month before key. January
// borrows into December of the previous year. Non-canonical input yields ""
// so that callers looking up the result find no month.
func PrevMonthKey(key string) string {
	if !IsMonthKey(key) {
		return ""
	}
	y, _ := strconv.Atoi(key[:4])
	m, _ := strconv.Atoi(key[5:])
	m--
	if m == 0 {
		m = 12
		y--
	}
	return fmt.Sprintf("%04d-%02d", y, m)
}

// NormalizeMonthKey rewrites lenient "YYYY-M" or "YYYY/MM" forms to the
// canonical key. It returns "" when the input matches neither the lenient
// pattern nor the canonical one.
func NormalizeMonthKey(s string) string {
	if m := lenientMonthRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		s = fmt.Sprintf("%s-%02d", m[1], month)
	}
	if IsMonthKey(s) {
		return s
	}
	return ""
}

// YearMonthKeys returns the twelve keys year-01 through year-12.
func YearMonthKeys(year int) []string {
	keys := make([]string, 12)
	for i := range keys {
		keys[i] = fmt.Sprintf("%04d-%02d", year, i+1)
	}
	return keys
}
