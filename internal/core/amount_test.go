package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
	}{
		{"12.50", 12.5},
		{"12,50", 12.5},
		{"12,50 €", 12.5},
		{"€ 12.50", 12.5},
		{" 2.5 ", 2.5},
		{"0", 0},
		{"-3.25", -3.25},
		{"", 0},
		{"abc", 0},
		{"1.2.3", 0},
		{"NaN", 0},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.out {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.out)
		}
	}
}

func TestFormatAmountRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 12.5, 0.1, 1234.56, 3} {
		if got := ParseAmount(FormatAmount(v)); got != v {
			t.Fatalf("round trip of %v gave %v", v, got)
		}
	}
}
