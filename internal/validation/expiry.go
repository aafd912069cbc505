package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidExpiry = errors.New("card expiry must be MM/YYYY or YYYY-MM")

var (
	slashExpiry = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	dashExpiry  = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
)

// NormalizeExpiry turns "7/2026", "07/2026" or "2026-07" into "2026-07".
// The dashed form must already carry a two-digit month.
func NormalizeExpiry(input string) (string, error) {
	s := strings.TrimSpace(input)

	var year, month string
	if m := slashExpiry.FindStringSubmatch(s); m != nil {
		month, year = m[1], m[2]
	} else if m := dashExpiry.FindStringSubmatch(s); m != nil {
		year, month = m[1], m[2]
	} else {
		return "", ErrInvalidExpiry
	}

	n, _ := strconv.Atoi(month)
	if n < 1 || n > 12 {
		return "", fmt.Errorf("%w: month %s is out of range", ErrInvalidExpiry, month)
	}

	return fmt.Sprintf("%s-%02d", year, n), nil
}

// ValidateExpiry adapts NormalizeExpiry for form fields.
func ValidateExpiry(input string) error {
	_, err := NormalizeExpiry(input)
	return err
}
