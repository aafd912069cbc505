package sandbox

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hance08/payops/internal/model"
	"github.com/shopspring/decimal"
)

// Columns is the header a batch file must carry, in any order.
var Columns = []string{
	"Expedia ID", "Batch", "Reservation ID", "Hotel Confirmation Code", "Name",
	"Check In", "Check Out", "Amount to charge", "Currency",
	"Card Number", "Card Expire", "Card CVV", "Soft Descriptor", "Connected Account",
}

type uploadState struct {
	session model.UploadSession
	file    []byte
	pending []pendingRow
}

// pendingRow is a parsed line not yet released into the row table. A
// non-empty problem fails the session when processing reaches it.
type pendingRow struct {
	row     model.Row
	problem string
}

func (s *Server) upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		fail(c, http.StatusBadRequest, "Could not read file")
		return
	}

	gateway := model.GatewayPayPal
	if raw := c.PostForm("paymentGateway"); raw != "" {
		gateway, err = model.ParseGateway(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	uploadID := uuid.NewString()
	pending, err := parseBatch(content, uploadID)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now().UTC()
	state := &uploadState{
		session: model.UploadSession{
			UploadID:       uploadID,
			FileName:       header.Filename,
			Status:         model.UploadProcessing,
			TotalRows:      len(pending),
			PaymentGateway: gateway,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		file:    content,
		pending: pending,
	}

	s.mu.Lock()
	s.uploads[uploadID] = state
	s.uploadOrder = append(s.uploadOrder, uploadID)
	session := state.session
	s.mu.Unlock()

	ok(c, "File uploaded, processing started", session)
}

// listUploads advances every processing session before answering, so a
// client that polls sees progress without any background worker.
func (s *Server) listUploads(c *gin.Context) {
	page, limit := pageParams(c)
	search := strings.ToLower(c.Query("search"))
	status := c.Query("status")
	uploadID := c.Query("uploadId")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.advanceUploads()

	var matched []model.UploadSession
	for i := len(s.uploadOrder) - 1; i >= 0; i-- {
		st := s.uploads[s.uploadOrder[i]]
		if uploadID != "" && st.session.UploadID != uploadID {
			continue
		}
		if status != "" && string(st.session.Status) != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(st.session.FileName), search) {
			continue
		}
		matched = append(matched, st.session)
	}

	start, end, p := paginate(len(matched), page, limit)
	sessions := append([]model.UploadSession{}, matched[start:end]...)
	ok(c, "", model.UploadPage{Sessions: sessions, Pagination: p})
}

func (s *Server) advanceUploads() {
	for _, id := range s.uploadOrder {
		st := s.uploads[id]
		if st.session.Status != model.UploadProcessing {
			continue
		}

		for step := 0; step < s.cfg.RowsPerPoll && len(st.pending) > 0; step++ {
			next := st.pending[0]
			if next.problem != "" {
				st.session.Status = model.UploadFailed
				st.session.Error = next.problem
				break
			}
			row := next.row
			row.UpdatedAt = s.now().UTC()
			s.rows[row.ID] = &row
			s.rowOrder = append(s.rowOrder, row.ID)
			st.pending = st.pending[1:]
			st.session.ProcessedRows++
		}

		if st.session.TotalRows > 0 {
			st.session.Progress = float64(st.session.ProcessedRows*100) / float64(st.session.TotalRows)
		}
		if len(st.pending) == 0 {
			st.session.Status = model.UploadCompleted
			st.session.Progress = 100
		}
		st.session.UpdatedAt = s.now().UTC()
	}
}

// resumeUpload re-opens a failed session, skipping the line that failed it.
func (s *Server) resumeUpload(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, found := s.uploads[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "Upload session not found")
		return
	}
	if st.session.Status != model.UploadFailed {
		fail(c, http.StatusBadRequest, "Only failed uploads can be retried")
		return
	}

	if len(st.pending) > 0 && st.pending[0].problem != "" {
		st.pending = st.pending[1:]
		st.session.ProcessedRows++
	}
	st.session.Status = model.UploadProcessing
	st.session.Error = ""
	st.session.UpdatedAt = s.now().UTC()

	ok(c, "Upload processing resumed", st.session)
}

func (s *Server) deleteUpload(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.uploads[id]; !found {
		fail(c, http.StatusNotFound, "Upload session not found")
		return
	}
	delete(s.uploads, id)
	s.uploadOrder = without(s.uploadOrder, id)

	kept := s.rowOrder[:0]
	for _, rowID := range s.rowOrder {
		if s.rows[rowID].UploadID == id {
			delete(s.rows, rowID)
			continue
		}
		kept = append(kept, rowID)
	}
	s.rowOrder = kept

	ok(c, "Upload deleted", nil)
}

func (s *Server) download(c *gin.Context) {
	s.mu.Lock()
	st, found := s.uploads[c.Param("id")]
	var content []byte
	var name string
	if found {
		content = st.file
		name = st.session.FileName
	}
	s.mu.Unlock()

	if !found {
		fail(c, http.StatusNotFound, "File not found")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "text/csv", content)
}

// parseBatch reads a CSV batch file keyed by its header row.
func parseBatch(content []byte, uploadID string) ([]pendingRow, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("File is empty or not a CSV")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, required := range []string{"Name", "Amount to charge", "Card Number"} {
		if _, found := index[required]; !found {
			return nil, fmt.Errorf("Missing required column '%s'", required)
		}
	}

	var rows []pendingRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rows = append(rows, pendingRow{problem: fmt.Sprintf("line %d: %v", line, err)})
			continue
		}

		get := func(col string) string {
			if i, found := index[col]; found && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		amount, err := decimal.NewFromString(get("Amount to charge"))
		if err != nil {
			rows = append(rows, pendingRow{problem: fmt.Sprintf("line %d: invalid amount '%s'", line, get("Amount to charge"))})
			continue
		}

		row := model.Row{
			ID:                    uuid.NewString(),
			UploadID:              uploadID,
			ExpediaID:             get("Expedia ID"),
			Batch:                 get("Batch"),
			ReservationID:         get("Reservation ID"),
			HotelConfirmationCode: get("Hotel Confirmation Code"),
			GuestName:             get("Name"),
			CheckIn:               get("Check In"),
			CheckOut:              get("Check Out"),
			Amount:                amount,
			Currency:              strings.ToUpper(get("Currency")),
			Card:                  model.Card{Number: get("Card Number"), Expire: get("Card Expire"), CVV: get("Card CVV")},
			SoftDescriptor:        get("Soft Descriptor"),
			Status:                model.StatusReadyToCharge,
		}
		if row.Currency == "" {
			row.Currency = "USD"
		}
		setGateway(&row, get("Connected Account"))
		rows = append(rows, pendingRow{row: row})
	}

	return rows, nil
}

func setGateway(row *model.Row, connectedAccount string) {
	if connectedAccount != "" {
		row.Gateway = model.GatewayStripe
		row.Stripe = &model.StripeFields{ConnectedAccount: connectedAccount}
		row.PayPal = nil
		return
	}
	row.Gateway = model.GatewayPayPal
	row.PayPal = &model.PayPalFields{}
	row.Stripe = nil
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
