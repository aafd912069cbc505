package model

// StripeAccount is a read-through snapshot of a Stripe Connect account.
type StripeAccount struct {
	ID               string             `json:"id"`
	Email            string             `json:"email"`
	Country          string             `json:"country"`
	ChargesEnabled   bool               `json:"charges_enabled"`
	PayoutsEnabled   bool               `json:"payouts_enabled"`
	Requirements     StripeRequirements `json:"requirements"`
	ExternalAccounts ExternalAccounts   `json:"external_accounts"`
}

type StripeRequirements struct {
	CurrentlyDue []string `json:"currently_due"`
	PastDue      []string `json:"past_due"`
}

type ExternalAccounts struct {
	Data []ExternalAccount `json:"data"`
}

type ExternalAccount struct {
	ID       string `json:"id"`
	Object   string `json:"object"`
	BankName string `json:"bank_name,omitempty"`
	Last4    string `json:"last4"`
	Currency string `json:"currency"`
}

// Ready reports whether the account can take charges with nothing outstanding.
func (a StripeAccount) Ready() bool {
	return a.ChargesEnabled && len(a.Requirements.PastDue) == 0 && len(a.Requirements.CurrentlyDue) == 0
}

type StripeSettings struct {
	PublishableKey    string `json:"publishableKey"`
	Mode              string `json:"mode"`
	DefaultCurrency   string `json:"defaultCurrency"`
	PlatformFeeBps    int    `json:"platformFeeBps"`
	WebhookConfigured bool   `json:"webhookConfigured"`
}
