package api

import (
	"context"

	"github.com/hance08/payops/internal/model"
)

type inviteRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type validateInviteRequest struct {
	Token        string `json:"token"`
	TempPassword string `json:"tempPassword"`
}

type completeInviteRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (c *Client) SendInvitation(ctx context.Context, email, name string) (*model.Invitation, error) {
	var inv model.Invitation
	if _, err := c.postJSON(ctx, "/invitations/send", inviteRequest{Email: email, Name: name}, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ValidateInvitation is the first step of accepting: the temporary password
// from the email is checked against the token.
func (c *Client) ValidateInvitation(ctx context.Context, token, tempPassword string) (string, error) {
	return c.postJSON(ctx, "/invitations/validate", validateInviteRequest{Token: token, TempPassword: tempPassword}, nil)
}

func (c *Client) CompleteInvitation(ctx context.Context, token, password, confirm string) (string, error) {
	return c.postJSON(ctx, "/invitations/complete", completeInviteRequest{
		Token:           token,
		Password:        password,
		ConfirmPassword: confirm,
	}, nil)
}

func (c *Client) MyInvitations(ctx context.Context) ([]model.Invitation, error) {
	var invs []model.Invitation
	if _, err := c.getJSON(ctx, "/invitations/my-invitations", nil, &invs); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []model.Invitation{}
	}
	return invs, nil
}
