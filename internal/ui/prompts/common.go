package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// PromptConfirm asks a yes/no question inside the checkout flow.
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	answer := defaultValue
	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&answer).
		Run()
	return answer, err
}

// PromptInput reads one line. An empty answer keeps current, which is shown
// as the placeholder and is not validated again.
func PromptInput(message string, current string, validate func(string) error) (string, error) {
	var value string

	input := huh.NewInput().
		Title(message).
		Placeholder(current).
		Value(&value)
	if validate != nil {
		input.Validate(func(s string) error {
			if strings.TrimSpace(s) == "" && current != "" {
				return nil
			}
			return validate(strings.TrimSpace(s))
		})
	}

	if err := input.Run(); err != nil {
		return "", err
	}
	if value = strings.TrimSpace(value); value == "" {
		return current, nil
	}
	return value, nil
}

// PromptRequired is PromptInput for a value that may not be blank.
func PromptRequired(message, field string) (string, error) {
	return PromptInput(message, "", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	})
}

// PromptPassword reads a secret without echoing it.
func PromptPassword(message string, validator func(string) error) (string, error) {
	var secret string

	input := huh.NewInput().
		Title(message).
		EchoMode(huh.EchoModePassword).
		Value(&secret)

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	return secret, err
}
