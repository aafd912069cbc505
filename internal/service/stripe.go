package service

import (
	"context"
	"strings"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/validation"
)

type StripeService struct {
	client *api.Client
	cache  *query.Cache
}

func NewStripeService(client *api.Client, cache *query.Cache) *StripeService {
	return &StripeService{client: client, cache: cache}
}

func (ss *StripeService) Accounts(ctx context.Context) ([]model.StripeAccount, error) {
	key := query.NewKey(query.ResourceStripeAccounts, nil)
	return query.Fetch(ctx, ss.cache, key, ss.client.StripeAccounts)
}

func (ss *StripeService) CreateAccount(ctx context.Context, email, country string) (*model.StripeAccount, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	return query.Mutate(ctx, ss.cache, query.MutationStripeCreateAccount, func(ctx context.Context) (*model.StripeAccount, error) {
		return ss.client.StripeCreateAccount(ctx, email, country)
	})
}

func (ss *StripeService) Settings(ctx context.Context) (*model.StripeSettings, error) {
	key := query.NewKey(query.ResourceStripeSettings, nil)
	return query.Fetch(ctx, ss.cache, key, ss.client.StripeSettings)
}

// UpdateLink returns a hosted onboarding link for the account.
func (ss *StripeService) UpdateLink(ctx context.Context, accountID string) (string, error) {
	return ss.client.StripeUpdateLink(ctx, accountID)
}
