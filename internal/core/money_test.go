package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"150000", 15000000, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{100, "Rp 1"},
		{123456700, "Rp 1.234.567"},
		{150000050, "Rp 1.500.000,50"},
		{105, "Rp 1,05"},
		{-250000, "-Rp 2.500"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.cents); got != tc.want {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestFormatRupiahExact(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{25000, "Rp 250,00"},
		{123456700, "Rp 1.234.567,00"},
		{105, "Rp 1,05"},
	}
	for _, tc := range cases {
		if got := FormatRupiahExact(tc.cents); got != tc.want {
			t.Fatalf("FormatRupiahExact(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := Money{Cents: 15000000}
	raw, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "15000000" {
		t.Fatalf("expected plain cent count, got %s", raw)
	}
	var back Money
	if err := back.UnmarshalJSON(raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != m {
		t.Fatalf("round trip changed value: %+v", back)
	}
}
