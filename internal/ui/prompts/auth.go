package prompts

import (
	"github.com/hance08/payops/internal/validation"
)

func PromptEmail(defaultValue string) (string, error) {
	return PromptInput("Email:", defaultValue, validation.ValidateEmail)
}

func PromptOTP() (string, error) {
	return PromptInput("One-time code (check your inbox):", "", validation.ValidateOTP)
}

// PromptNewPassword asks for a password twice. Mismatches are reported by
// the caller so the same message appears with and without a terminal.
func PromptNewPassword() (password, confirm string, err error) {
	password, err = PromptPassword("New password:", validation.ValidatePassword)
	if err != nil {
		return "", "", err
	}
	confirm, err = PromptPassword("Confirm password:", nil)
	if err != nil {
		return "", "", err
	}
	return password, confirm, nil
}
