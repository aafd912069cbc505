package sandbox

import (
	"github.com/google/uuid"
	"github.com/hance08/payops/internal/model"
	"github.com/shopspring/decimal"
)

// SeedRows inserts rows as if an upload had produced them. Missing ids are
// generated; the stored rows are returned.
func (s *Server) SeedRows(rows ...model.Row) []model.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.Status == "" {
			r.Status = model.StatusReadyToCharge
		}
		if r.Currency == "" {
			r.Currency = "USD"
		}
		if r.Stripe == nil && r.PayPal == nil {
			setGateway(&r, "")
		}
		r.UpdatedAt = s.now().UTC()

		stored := r
		s.rows[r.ID] = &stored
		s.rowOrder = append(s.rowOrder, r.ID)
		out = append(out, r)
	}
	return out
}

// Row returns a copy of the stored row.
func (s *Server) Row(id string) (model.Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, found := s.rows[id]
	if !found {
		return model.Row{}, false
	}
	return *r, true
}

// DemoRows is a small mixed batch for local exploration.
func DemoRows() []model.Row {
	card := model.Card{Number: "4111111111111111", Expire: "12/2027", CVV: "123"}
	declined := model.Card{Number: "4000000000000002", Expire: "01/2028", CVV: "999"}

	rows := []model.Row{
		{ExpediaID: "EXP-1001", Batch: "B-01", ReservationID: "R-5501", HotelConfirmationCode: "HC-88", GuestName: "Ada Lovelace", CheckIn: "2026-03-01", CheckOut: "2026-03-04", Amount: decimal.RequireFromString("420.00"), Card: card},
		{ExpediaID: "EXP-1002", Batch: "B-01", ReservationID: "R-5502", HotelConfirmationCode: "HC-89", GuestName: "Alan Turing", CheckIn: "2026-03-02", CheckOut: "2026-03-03", Amount: decimal.RequireFromString("129.99"), Card: card, Status: model.StatusCharged},
		{ExpediaID: "EXP-1003", Batch: "B-01", ReservationID: "R-5503", HotelConfirmationCode: "HC-90", GuestName: "Grace Hopper", CheckIn: "2026-03-05", CheckOut: "2026-03-09", Amount: decimal.RequireFromString("880.50"), Card: declined, Status: model.StatusFailed},
		{ExpediaID: "EXP-2001", Batch: "B-02", ReservationID: "R-6601", HotelConfirmationCode: "HC-91", GuestName: "Edsger Dijkstra", CheckIn: "2026-04-10", CheckOut: "2026-04-12", Amount: decimal.RequireFromString("310.00"), Currency: "EUR", Card: card},
	}

	stripeRow := model.Row{ExpediaID: "EXP-3001", Batch: "B-03", ReservationID: "R-7701", HotelConfirmationCode: "HC-92", GuestName: "Barbara Liskov", CheckIn: "2026-05-01", CheckOut: "2026-05-06", Amount: decimal.RequireFromString("1005.25"), Card: card}
	setGateway(&stripeRow, "acct_sandbox")

	return append(rows, stripeRow)
}
