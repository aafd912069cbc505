package utils

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.3", 1230, false},
		{"12", 1200, false},
		{"-5.999", -599, false},
		{"0.00", 0, false},
		{"150.50", 15050, false},
		{".5", 50, false},
		{"7.", 700, false},
		{"+3.01", 301, false},
		{"1.2.3", 0, true},
		{"abc", 0, true},
		{"1.x", 0, true},
		{"", 0, true},
		{"-", 0, true},
		{"1 000", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseToCents(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseToCents(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseToCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatFromCents(t *testing.T) {
	tests := map[int64]string{
		0:     "0.00",
		5:     "0.05",
		1230:  "12.30",
		-599:  "-5.99",
		15050: "150.50",
	}
	for in, want := range tests {
		if got := FormatFromCents(in); got != want {
			t.Errorf("FormatFromCents(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestDecimalToCentsTruncates(t *testing.T) {
	if got := DecimalToCents(decimal.RequireFromString("-5.999")); got != -599 {
		t.Errorf("expected -599, got %d", got)
	}
	if got := DecimalToCents(decimal.RequireFromString("19.999")); got != 1999 {
		t.Errorf("expected 1999, got %d", got)
	}
}

func TestFormatMoney(t *testing.T) {
	got := FormatMoney(decimal.RequireFromString("1234.5"), "usd")
	if !strings.Contains(got, "$") || !strings.Contains(got, "1,234.50") {
		t.Errorf("unexpected USD rendering %q", got)
	}
}
