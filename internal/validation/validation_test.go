package validation

import (
	"errors"
	"testing"
)

func TestNormalizeExpiry(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"07/2026", "2026-07", false},
		{"7/2026", "2026-07", false},
		{" 12/2030 ", "2030-12", false},
		{"2026-07", "2026-07", false},
		{"2026-7", "", true},
		{"13/2026", "", true},
		{"00/2026", "", true},
		{"2026-13", "", true},
		{"07/26", "", true},
		{"072026", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeExpiry(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeExpiry(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidExpiry) {
			t.Errorf("NormalizeExpiry(%q) should wrap ErrInvalidExpiry, got %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeExpiry(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePasswordMatch(t *testing.T) {
	if err := ValidatePasswordMatch("correct horse", "correct horse"); err != nil {
		t.Errorf("matching passwords rejected: %v", err)
	}
	if err := ValidatePasswordMatch("correct horse", "correct house"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := ValidatePasswordMatch("short", "short"); err == nil {
		t.Error("short password accepted")
	}
}

func TestValidateCheckout(t *testing.T) {
	valid := func() CheckoutForm {
		return CheckoutForm{
			Amount:     "120.50",
			Currency:   "usd",
			CardNumber: "4111 1111 1111 1111",
			Expiry:     "07/2027",
			CVV:        "123",
		}
	}

	f := valid()
	if err := ValidateCheckout(&f); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if f.CardNumber != "4111111111111111" || f.Currency != "USD" {
		t.Errorf("form not normalized: %+v", f)
	}

	tests := []struct {
		name  string
		edit  func(*CheckoutForm)
		field string
	}{
		{"zero amount", func(f *CheckoutForm) { f.Amount = "0" }, "Amount"},
		{"text amount", func(f *CheckoutForm) { f.Amount = "ten" }, "Amount"},
		{"bad currency", func(f *CheckoutForm) { f.Currency = "XXY" }, "Currency"},
		{"short card", func(f *CheckoutForm) { f.CardNumber = "41111" }, "CardNumber"},
		{"letters in card", func(f *CheckoutForm) { f.CardNumber = "4111abcd11111111" }, "CardNumber"},
		{"bad expiry", func(f *CheckoutForm) { f.Expiry = "2027-7" }, "Expiry"},
		{"long cvv", func(f *CheckoutForm) { f.CVV = "12345" }, "CVV"},
		{"bad email", func(f *CheckoutForm) { f.BillingEmail = "nobody" }, "BillingEmail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.edit(&f)

			err := ValidateCheckout(&f)
			var formErr *FormError
			if !errors.As(err, &formErr) {
				t.Fatalf("expected FormError, got %v", err)
			}
			if len(formErr.Fields) != 1 || formErr.Fields[0].Field != tt.field {
				t.Errorf("expected only %s to fail, got %+v", tt.field, formErr.Fields)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	for _, ok := range []string{"", "usd", "EUR"} {
		if err := ValidateCurrency(ok); err != nil {
			t.Errorf("ValidateCurrency(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"US", "DOLLAR", "ZZZ"} {
		if err := ValidateCurrency(bad); err == nil {
			t.Errorf("ValidateCurrency(%q) should fail", bad)
		}
	}
}
