package sandbox

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hance08/payops/internal/model"
)

type inviteState struct {
	invitation   model.Invitation
	invitedBy    string
	token        string
	tempPassword string
	validated    bool
}

type inviteBody struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type validateBody struct {
	Token        string `json:"token"`
	TempPassword string `json:"tempPassword"`
}

type completeBody struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) sendInvitation(c *gin.Context) {
	var body inviteBody
	if err := c.ShouldBindJSON(&body); err != nil || !strings.Contains(body.Email, "@") {
		fail(c, http.StatusBadRequest, "A valid email is required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		fail(c, http.StatusConflict, "User already exists")
		return
	}
	for _, inv := range s.invites {
		if inv.invitation.Email == email && inv.invitation.Status == model.InvitationPending {
			fail(c, http.StatusConflict, "An invitation is already pending for this email")
			return
		}
	}

	now := s.now().UTC()
	expires := now.Add(s.cfg.TokenTTL)
	state := &inviteState{
		invitation: model.Invitation{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      strings.TrimSpace(body.Name),
			Status:    model.InvitationPending,
			CreatedAt: now,
			ExpiresAt: &expires,
		},
		invitedBy:    c.GetString(ctxEmail),
		token:        uuid.NewString(),
		tempPassword: "tmp-" + uuid.NewString()[:8],
	}
	s.invites = append(s.invites, state)

	ok(c, "Invitation sent to "+email, state.invitation)
}

func (s *Server) myInvitations(c *gin.Context) {
	email := c.GetString(ctxEmail)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Invitation{}
	for i := len(s.invites) - 1; i >= 0; i-- {
		if s.invites[i].invitedBy == email {
			out = append(out, s.invites[i].invitation)
		}
	}
	ok(c, "", out)
}

func (s *Server) validateInvitation(c *gin.Context) {
	var body validateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Token and temporary password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv := s.findInvite(body.Token)
	if inv == nil || inv.invitation.Status != model.InvitationPending {
		fail(c, http.StatusBadRequest, "Invitation is invalid or has already been used")
		return
	}
	if inv.tempPassword != body.TempPassword {
		fail(c, http.StatusBadRequest, "Temporary password is incorrect")
		return
	}
	inv.validated = true

	ok(c, "Temporary password verified", gin.H{"email": inv.invitation.Email})
}

func (s *Server) completeInvitation(c *gin.Context) {
	var body completeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Password is required")
		return
	}
	if body.Password != body.ConfirmPassword {
		fail(c, http.StatusBadRequest, "Passwords do not match")
		return
	}
	if len(body.Password) < 8 {
		fail(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv := s.findInvite(body.Token)
	if inv == nil || !inv.validated || inv.invitation.Status != model.InvitationPending {
		fail(c, http.StatusBadRequest, "Verify the temporary password first")
		return
	}

	now := s.now().UTC()
	inv.invitation.Status = model.InvitationCompleted
	inv.invitation.CompletedAt = &now
	s.users[inv.invitation.Email] = body.Password

	ok(c, "Account set up, you can now log in", nil)
}

func (s *Server) findInvite(token string) *inviteState {
	for _, inv := range s.invites {
		if inv.token == token {
			return inv
		}
	}
	return nil
}

// PendingInvite exposes the credentials an invitee would receive by email.
func (s *Server) PendingInvite(email string) (token, tempPassword string, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invites {
		if inv.invitation.Email == strings.ToLower(email) && inv.invitation.Status == model.InvitationPending {
			return inv.token, inv.tempPassword, true
		}
	}
	return "", "", false
}
