package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/payops/internal/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatFromCents renders minor units as a plain two-decimal string.
func FormatFromCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/constants.CentsPerUnit, cents%constants.CentsPerUnit)
}

// ParseToCents converts a decimal string to minor units. Digits past the
// second fractional place are dropped, not rounded: "-5.999" is -599.
func ParseToCents(amountStr string) (int64, error) {
	s := strings.TrimSpace(amountStr)

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	// Handle formats: "150", "150.5", "150.50", ".5"
	parts := strings.Split(s, ".")
	if len(parts) > 2 || s == "" || s == "." {
		return 0, fmt.Errorf("invalid amount format: %s", amountStr)
	}

	var units, cents int64

	if parts[0] != "" {
		if !allDigits(parts[0]) {
			return 0, fmt.Errorf("invalid amount: %s", amountStr)
		}
		v, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || v > constants.MaxSafeCents/constants.CentsPerUnit {
			return 0, fmt.Errorf("amount too large: %s", amountStr)
		}
		units = v
	}

	if len(parts) == 2 {
		centStr := parts[1]
		if centStr != "" && !allDigits(centStr) {
			return 0, fmt.Errorf("invalid cents: %s", amountStr)
		}
		// Pad or truncate to 2 digits
		switch {
		case len(centStr) == 0:
			centStr = "00"
		case len(centStr) == 1:
			centStr += "0"
		case len(centStr) > 2:
			centStr = centStr[:2]
		}
		cents, _ = strconv.ParseInt(centStr, 10, 64)
	}

	total := units*constants.CentsPerUnit + cents
	if negative {
		total = -total
	}
	return total, nil
}

// DecimalToCents applies the same truncation to an already parsed amount.
func DecimalToCents(d decimal.Decimal) int64 {
	return d.Truncate(2).Shift(2).IntPart()
}

// FormatMoney renders an amount with the currency's symbol and grouping,
// e.g. "$ 1,234.50". Unknown codes fall back to "1,234.50 XYZ".
func FormatMoney(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	f, _ := amount.Truncate(2).Float64()

	unit, err := currency.ParseISO(code)
	if err != nil {
		return printer.Sprintf("%.2f %s", f, code)
	}
	return printer.Sprint(currency.Symbol(unit.Amount(f)))
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
