package sandbox

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hance08/payops/internal/model"
)

type createAccountBody struct {
	Email   string `json:"email"`
	Country string `json:"country"`
}

func (s *Server) createStripeAccount(c *gin.Context) {
	var body createAccountBody
	if err := c.ShouldBindJSON(&body); err != nil || !strings.Contains(body.Email, "@") {
		fail(c, http.StatusBadRequest, "A valid email is required")
		return
	}
	country := strings.ToUpper(strings.TrimSpace(body.Country))
	if len(country) != 2 {
		fail(c, http.StatusBadRequest, "Country must be a two-letter code")
		return
	}

	account := model.StripeAccount{
		ID:      "acct_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		Email:   strings.ToLower(body.Email),
		Country: country,
		Requirements: model.StripeRequirements{
			CurrentlyDue: []string{"external_account", "tos_acceptance.date"},
		},
	}

	s.mu.Lock()
	s.accounts = append(s.accounts, account)
	s.mu.Unlock()

	ok(c, "Stripe account created", account)
}

func (s *Server) stripeAccounts(c *gin.Context) {
	s.mu.Lock()
	accounts := append([]model.StripeAccount{}, s.accounts...)
	s.mu.Unlock()

	ok(c, "", accounts)
}

func (s *Server) stripeSettings(c *gin.Context) {
	ok(c, "", model.StripeSettings{
		PublishableKey:  "pk_test_sandbox",
		Mode:            "test",
		DefaultCurrency: "usd",
	})
}

func (s *Server) stripeUpdateLink(c *gin.Context) {
	id := c.Query("accountId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ID == id {
			ok(c, "", gin.H{"url": "https://connect.stripe.com/setup/s/" + id})
			return
		}
	}
	fail(c, http.StatusNotFound, "Stripe account not found")
}
