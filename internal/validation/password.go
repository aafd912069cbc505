package validation

import (
	"errors"
	"fmt"
	"strings"
)

const MinPasswordLen = 8

var ErrPasswordMismatch = errors.New("passwords do not match")

// ValidatePassword checks a new password before it is sent anywhere.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	if strings.TrimSpace(password) != password {
		return fmt.Errorf("password can't start or end with spaces")
	}
	return nil
}

func ValidatePasswordMatch(password, confirm string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func ValidateOTP(code string) error {
	code = strings.TrimSpace(code)
	if len(code) < 4 || len(code) > 8 {
		return fmt.Errorf("code must be 4 to 8 digits")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("code must contain only digits")
		}
	}
	return nil
}

func ValidateEmail(email string) error {
	if err := validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return fmt.Errorf("'%s' is not a valid email address", email)
	}
	return nil
}
