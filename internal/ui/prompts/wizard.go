package prompts

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/payops/internal/validation"
)

// InitDefaults are the answers of the first-run wizard.
type InitDefaults struct {
	BaseURL  string
	Gateway  string
	Currency string
}

func PromptInitDefaults(current InitDefaults) (InitDefaults, error) {
	answers := current
	if answers.Gateway == "" {
		answers.Gateway = "paypal"
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to payops!").
				Description("This is the first run, please confirm where the payment API lives and your defaults."),
			huh.NewInput().
				Title("API base URL:").
				Value(&answers.BaseURL).
				Validate(func(s string) error {
					if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
						return errors.New("base URL must start with http:// or https://")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Default gateway:").
				Description("Used when a command is not told which gateway to act on.").
				Options(
					huh.NewOption("PayPal", "paypal"),
					huh.NewOption("Stripe", "stripe"),
				).
				Value(&answers.Gateway),
			huh.NewInput().
				Title("Default currency:").
				Description("Please use the ISO 4217 standard 3-letter currency code.").
				Value(&answers.Currency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency code is required")
					}
					return validation.ValidateCurrency(s)
				}),
		),
	).Run()
	if err != nil {
		return InitDefaults{}, err
	}

	answers.BaseURL = strings.TrimRight(strings.TrimSpace(answers.BaseURL), "/")
	answers.Currency = strings.ToUpper(strings.TrimSpace(answers.Currency))
	return answers, nil
}
