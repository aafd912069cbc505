package service

import (
	"context"
	"strings"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/validation"
)

type InvitationService struct {
	client *api.Client
	cache  *query.Cache
}

func NewInvitationService(client *api.Client, cache *query.Cache) *InvitationService {
	return &InvitationService{client: client, cache: cache}
}

func (is *InvitationService) Send(ctx context.Context, email, name string) (*model.Invitation, error) {
	email = strings.TrimSpace(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	return query.Mutate(ctx, is.cache, query.MutationSendInvitation, func(ctx context.Context) (*model.Invitation, error) {
		return is.client.SendInvitation(ctx, email, strings.TrimSpace(name))
	})
}

func (is *InvitationService) List(ctx context.Context) ([]model.Invitation, error) {
	key := query.NewKey(query.ResourceInvitations, nil)
	return query.Fetch(ctx, is.cache, key, is.client.MyInvitations)
}

// Validate is the first accept step: the emailed temporary password.
func (is *InvitationService) Validate(ctx context.Context, token, tempPassword string) (string, error) {
	return is.client.ValidateInvitation(ctx, token, tempPassword)
}

// Complete is the second accept step: the new password, checked locally first.
func (is *InvitationService) Complete(ctx context.Context, token, password, confirm string) (string, error) {
	if err := validation.ValidatePasswordMatch(password, confirm); err != nil {
		return "", err
	}
	return is.client.CompleteInvitation(ctx, token, password, confirm)
}
