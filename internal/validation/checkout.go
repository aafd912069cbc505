package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hance08/payops/internal/constants"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return ValidateExpiry(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive()
	})
	return v
}

// CheckoutForm is what the operator confirms before a single charge.
type CheckoutForm struct {
	Amount       string `validate:"required,amount"`
	Currency     string `validate:"required,iso4217"`
	CardNumber   string `validate:"required,numeric,min=12,max=19"`
	Expiry       string `validate:"required,expiry"`
	CVV          string `validate:"required,numeric,min=3,max=4"`
	HolderName   string `validate:"omitempty,max=100"`
	BillingEmail string `validate:"omitempty,email"`
}

// Normalize strips card formatting and upper-cases the currency in place.
func (f *CheckoutForm) Normalize() {
	f.Amount = strings.TrimSpace(f.Amount)
	f.Currency = strings.ToUpper(strings.TrimSpace(f.Currency))
	f.CardNumber = strings.NewReplacer(" ", "", "-", "").Replace(f.CardNumber)
	f.Expiry = strings.TrimSpace(f.Expiry)
	f.CVV = strings.TrimSpace(f.CVV)
	f.HolderName = strings.TrimSpace(f.HolderName)
	f.BillingEmail = strings.TrimSpace(f.BillingEmail)
}

// FieldError is a single failed form field.
type FieldError struct {
	Field   string
	Message string
}

// FormError lists every field that failed, in declaration order.
type FormError struct {
	Fields []FieldError
}

func (e *FormError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// ValidateCheckout normalizes the form and checks every field.
func ValidateCheckout(f *CheckoutForm) error {
	f.Normalize()

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &FormError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label := labels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "amount":
		return label + " must be a positive number"
	case "iso4217":
		return label + " must be a 3-letter ISO currency code"
	case "expiry":
		return ErrInvalidExpiry.Error()
	case "email":
		return label + " is not a valid email address"
	case "numeric":
		return label + " must contain only digits"
	case "min", "max":
		if fe.Field() == "CardNumber" {
			return fmt.Sprintf("%s must be %d to %d digits", label, constants.MinCardDigits, constants.MaxCardDigits)
		}
		if fe.Field() == "CVV" {
			return label + " must be 3 or 4 digits"
		}
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

var labels = map[string]string{
	"Amount":       "Amount",
	"Currency":     "Currency",
	"CardNumber":   "Card number",
	"Expiry":       "Card expiry",
	"CVV":          "CVV",
	"HolderName":   "Cardholder name",
	"BillingEmail": "Billing email",
}

// ValidateAmount is the form-field variant of the amount rule.
func ValidateAmount(input string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("invalid number format")
	}
	if !d.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

// ValidateCurrency accepts an ISO-4217 code; empty means "use the default".
func ValidateCurrency(input string) error {
	code := strings.ToUpper(strings.TrimSpace(input))
	if code == "" {
		return nil
	}
	if err := validate.Var(code, "iso4217"); err != nil {
		return fmt.Errorf("currency code must be a 3-letter ISO code (e.g. USD)")
	}
	return nil
}
