package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts user-entered amount text to a numeric value. It
// accepts both dot (12.50) and comma (12,50) decimal separators and ignores
// a euro sign and any whitespace.
//
// Unparsable or empty input yields 0. This leniency is deliberate: amounts
// are coerced rather than rejected, and required-field validation is the
// caller's job before invoking a command.
//
// Examples:
//
//	ParseAmount("12.50")    -> 12.5
//	ParseAmount("12,50 €")  -> 12.5
//	ParseAmount("")         -> 0
//	ParseAmount("abc")      -> 0
func ParseAmount(s string) float64 {
	s = strings.Map(func(r rune) rune {
		if r == '€' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatAmount renders an amount with its full textual representation, the
// shortest form that round-trips through ParseAmount exactly.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
