package api

import (
	"context"
	"net/url"

	"github.com/hance08/payops/internal/model"
)

type createAccountRequest struct {
	Email   string `json:"email"`
	Country string `json:"country"`
}

type accountLink struct {
	URL string `json:"url"`
}

func (c *Client) StripeCreateAccount(ctx context.Context, email, country string) (*model.StripeAccount, error) {
	var account model.StripeAccount
	if _, err := c.postJSON(ctx, "/stripe/create-account", createAccountRequest{Email: email, Country: country}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) StripeAccounts(ctx context.Context) ([]model.StripeAccount, error) {
	var accounts []model.StripeAccount
	if _, err := c.getJSON(ctx, "/stripe/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []model.StripeAccount{}
	}
	return accounts, nil
}

func (c *Client) StripeSettings(ctx context.Context) (*model.StripeSettings, error) {
	var settings model.StripeSettings
	if _, err := c.getJSON(ctx, "/stripe/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// StripeUpdateLink returns the onboarding link that lets an account holder
// complete outstanding requirements.
func (c *Client) StripeUpdateLink(ctx context.Context, accountID string) (string, error) {
	var link accountLink
	q := url.Values{}
	q.Set("accountId", accountID)
	if _, err := c.getJSON(ctx, "/stripe/update", q, &link); err != nil {
		return "", err
	}
	return link.URL, nil
}
