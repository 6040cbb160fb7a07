package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"1000.00", "1000", true},
		{"-1", "", false},
		{"0", "", false},
		{"0.00", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
		{"   ", "", false},
		{"1e3", "1000", true},
		{"2.5E-2", "0.025", true},
		{"999999999999999.99999999", "999999999999999.99999999", true},
		{"1000000000000000", "", false},
		{"0.000000001", "", false},
		{"1e50000000", "", false},
		{"1E999999999", "", false},
		{"1e-50000000", "", false},
		{"1e16", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err != ErrInvalidAmount {
			t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestSumIsExact(t *testing.T) {
	a, _ := ParseAmount("0.10")
	b, _ := ParseAmount("0.20")
	if !Sum(a, b).Equal(decimal.RequireFromString("0.3")) {
		t.Fatalf("0.10 + 0.20 = %s", Sum(a, b))
	}
	if !Sum().IsZero() {
		t.Fatalf("empty sum should be zero")
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(decimal.RequireFromString("849.5")); got != "849.50" {
		t.Fatalf("got %q", got)
	}
}
