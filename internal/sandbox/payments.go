package sandbox

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hance08/payops/internal/model"
	"github.com/shopspring/decimal"
)

const declineMessage = "Card declined by issuer"

var expiryPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type cardBody struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	HolderName string `json:"holderName"`
}

type paypalPaymentBody struct {
	RowID    string   `json:"rowId"`
	Amount   string   `json:"amount"`
	Currency string   `json:"currency"`
	Card     cardBody `json:"card"`
}

type stripePaymentBody struct {
	RowID            string   `json:"rowId"`
	Amount           int64    `json:"amount"`
	Currency         string   `json:"currency"`
	ConnectedAccount string   `json:"connectedAccount"`
	Card             cardBody `json:"card"`
}

type rowIDBody struct {
	RowID string `json:"rowId"`
}

type bulkBody struct {
	RowIDs []string `json:"rowIds"`
}

// chargeError is a rejected charge; declined marks an issuer decline as
// opposed to a request the sandbox refused outright.
type chargeError struct {
	code     int
	msg      string
	declined bool
}

func (s *Server) paypalPayment(c *gin.Context) {
	var body paypalPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid payment request")
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(body.Amount))
	if err != nil || !amount.IsPositive() {
		fail(c, http.StatusBadRequest, "Amount must be a positive number")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, cerr := s.chargeableRow(body.RowID, model.GatewayPayPal)
	if cerr == nil {
		cerr = s.checkCard(r, body.Card)
	}
	if cerr != nil {
		respondChargeError(c, cerr)
		return
	}

	s.applyCharge(r, amount)
	r.PayPal.OrderID = "PAYID-" + strings.ToUpper(uuid.NewString()[:12])
	r.PayPal.CaptureID = strings.ToUpper(uuid.NewString()[:17])

	ok(c, "Payment processed successfully", gin.H{
		"paymentDetails": model.PaymentDetails{
			OrderID:   r.PayPal.OrderID,
			CaptureID: r.PayPal.CaptureID,
			Status:    "COMPLETED",
			Amount:    amount.StringFixed(2),
			Currency:  r.Currency,
		},
		"row": *r,
	})
}

func (s *Server) stripePayment(c *gin.Context) {
	var body stripePaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid payment request")
		return
	}
	if body.Amount <= 0 {
		fail(c, http.StatusBadRequest, "Amount must be a positive number of cents")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, cerr := s.chargeableRow(body.RowID, model.GatewayStripe)
	if cerr == nil && r.Stripe.ConnectedAccount != body.ConnectedAccount {
		cerr = &chargeError{code: http.StatusBadRequest, msg: "Connected account does not match row"}
	}
	if cerr == nil {
		cerr = s.checkCard(r, body.Card)
	}
	if cerr != nil {
		respondChargeError(c, cerr)
		return
	}

	amount := decimal.New(body.Amount, -2)
	s.applyCharge(r, amount)
	r.Stripe.PaymentIntentID = "pi_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]

	ok(c, "Payment succeeded", gin.H{
		"paymentDetails": model.PaymentDetails{
			PaymentIntentID: r.Stripe.PaymentIntentID,
			Status:          "succeeded",
			Amount:          amount.StringFixed(2),
			Currency:        r.Currency,
		},
		"row": *r,
	})
}

func (s *Server) refund(gateway model.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body rowIDBody
		if err := c.ShouldBindJSON(&body); err != nil || body.RowID == "" {
			fail(c, http.StatusBadRequest, "rowId is required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		r, cerr := s.refundableRow(body.RowID, gateway)
		if cerr != nil {
			respondChargeError(c, cerr)
			return
		}
		s.applyRefund(r)

		ok(c, "Refund processed successfully", gin.H{"row": *r})
	}
}

func (s *Server) bulkPayments(gateway model.Gateway) gin.HandlerFunc {
	return s.bulk(func(id string) error {
		r, cerr := s.chargeableRow(id, gateway)
		if cerr == nil {
			cerr = s.checkDecline(r, r.Card.Number)
		}
		if cerr != nil {
			return errors.New(cerr.msg)
		}
		s.applyCharge(r, r.Amount)
		return nil
	}, "Bulk payment processed")
}

func (s *Server) bulkRefunds(gateway model.Gateway) gin.HandlerFunc {
	return s.bulk(func(id string) error {
		r, cerr := s.refundableRow(id, gateway)
		if cerr != nil {
			return errors.New(cerr.msg)
		}
		s.applyRefund(r)
		return nil
	}, "Bulk refund processed")
}

// bulk applies op to every id and reports a per-item outcome. In atomic
// mode the outcomes are applied but not reported.
func (s *Server) bulk(op func(id string) error, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body bulkBody
		if err := c.ShouldBindJSON(&body); err != nil || len(body.RowIDs) == 0 {
			fail(c, http.StatusBadRequest, "No rows selected")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		result := model.BulkResult{}
		for _, id := range body.RowIDs {
			item := model.BulkItemResult{ID: id, Outcome: model.OutcomeSucceeded}
			if err := op(id); err != nil {
				item.Outcome = model.OutcomeFailed
				item.Message = err.Error()
			} else {
				result.Processed++
			}
			result.Results = append(result.Results, item)
		}

		if s.cfg.AtomicBulk {
			result.Results = nil
		}
		ok(c, fmt.Sprintf("%s: %d of %d rows", msg, result.Processed, len(body.RowIDs)), result)
	}
}

func (s *Server) chargeableRow(id string, gateway model.Gateway) (*model.Row, *chargeError) {
	r, found := s.rows[id]
	if !found {
		return nil, &chargeError{code: http.StatusNotFound, msg: "Row not found"}
	}
	if r.Gateway != gateway {
		return nil, &chargeError{code: http.StatusBadRequest, msg: "Row is not a " + gateway.Label() + " row"}
	}
	if r.Status == model.StatusCharged {
		return nil, &chargeError{code: http.StatusBadRequest, msg: "Row is already charged"}
	}
	return r, nil
}

func (s *Server) refundableRow(id string, gateway model.Gateway) (*model.Row, *chargeError) {
	r, found := s.rows[id]
	if !found {
		return nil, &chargeError{code: http.StatusNotFound, msg: "Row not found"}
	}
	if r.Gateway != gateway {
		return nil, &chargeError{code: http.StatusBadRequest, msg: "Row is not a " + gateway.Label() + " row"}
	}
	if r.Status != model.StatusCharged {
		return nil, &chargeError{code: http.StatusBadRequest, msg: "Only charged rows can be refunded"}
	}
	return r, nil
}

func (s *Server) checkCard(r *model.Row, card cardBody) *chargeError {
	if !expiryPattern.MatchString(card.Expiry) {
		return &chargeError{code: http.StatusBadRequest, msg: "Card expiry must be YYYY-MM"}
	}
	return s.checkDecline(r, card.Number)
}

// checkDecline declines configured card numbers and records the decline on the row.
func (s *Server) checkDecline(r *model.Row, cardNumber string) *chargeError {
	number := strings.ReplaceAll(cardNumber, " ", "")
	if slices.Contains(s.cfg.DeclineCards, number) {
		r.Status = model.StatusDeclined
		r.DeclineReason = declineMessage
		r.UpdatedAt = s.now().UTC()
		return &chargeError{code: http.StatusPaymentRequired, msg: declineMessage, declined: true}
	}
	return nil
}

func (s *Server) applyCharge(r *model.Row, amount decimal.Decimal) {
	if amount.LessThan(r.Amount) {
		r.Status = model.StatusPartiallyCharged
	} else {
		r.Status = model.StatusCharged
	}
	r.DeclineReason = ""
	r.UpdatedAt = s.now().UTC()
	s.recountCharged(r.UploadID)
}

func (s *Server) applyRefund(r *model.Row) {
	r.Status = model.StatusRefunded
	switch r.Gateway {
	case model.GatewayStripe:
		r.Stripe.RefundID = "re_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
	case model.GatewayPayPal:
		r.PayPal.RefundID = strings.ToUpper(uuid.NewString()[:17])
	}
	r.UpdatedAt = s.now().UTC()
	s.recountCharged(r.UploadID)
}

// recountCharged recounts the charged rows of one upload session.
func (s *Server) recountCharged(uploadID string) {
	st, found := s.uploads[uploadID]
	if !found {
		return
	}
	count := 0
	for _, r := range s.rows {
		if r.UploadID == uploadID && r.Status == model.StatusCharged {
			count++
		}
	}
	st.session.ChargedCount = count
}

func respondChargeError(c *gin.Context, cerr *chargeError) {
	if cerr.declined {
		c.AbortWithStatusJSON(cerr.code, gin.H{
			"status":  "error",
			"message": cerr.msg,
			"data":    gin.H{"declineReason": cerr.msg},
		})
		return
	}
	fail(c, cerr.code, cerr.msg)
}
