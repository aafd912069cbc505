package sandbox

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hance08/payops/internal/model"
	"github.com/shopspring/decimal"
)

type rowFilter struct {
	gateway  string
	status   string
	search   string
	uploadID string
}

func filterFromQuery(c *gin.Context) rowFilter {
	return rowFilter{
		gateway:  strings.ToLower(c.Query("gateway")),
		status:   c.Query("status"),
		search:   strings.ToLower(strings.TrimSpace(c.Query("search"))),
		uploadID: c.Query("uploadId"),
	}
}

func (f rowFilter) match(r *model.Row) bool {
	if f.gateway != "" && string(r.Gateway) != f.gateway {
		return false
	}
	if f.status != "" && r.Status != model.ParseChargeStatus(f.status) {
		return false
	}
	if f.uploadID != "" && r.UploadID != f.uploadID {
		return false
	}
	if f.search != "" {
		haystack := strings.ToLower(strings.Join([]string{
			r.GuestName, r.ExpediaID, r.ReservationID, r.HotelConfirmationCode, r.Batch,
		}, " "))
		if !strings.Contains(haystack, f.search) {
			return false
		}
	}
	return true
}

// selectRows returns copies of the matching rows in upload order, sorted when asked.
func (s *Server) selectRows(f rowFilter, sortBy string, desc bool) []model.Row {
	var out []model.Row
	for _, id := range s.rowOrder {
		if r := s.rows[id]; f.match(r) {
			out = append(out, *r)
		}
	}

	less := rowLess(sortBy)
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return less(out[j], out[i])
			}
			return less(out[i], out[j])
		})
	}
	return out
}

func rowLess(field string) func(a, b model.Row) bool {
	switch field {
	case "name":
		return func(a, b model.Row) bool { return strings.ToLower(a.GuestName) < strings.ToLower(b.GuestName) }
	case "amount":
		return func(a, b model.Row) bool { return a.Amount.LessThan(b.Amount) }
	case "status":
		return func(a, b model.Row) bool { return a.Status < b.Status }
	case "checkIn":
		return func(a, b model.Row) bool { return a.CheckIn < b.CheckIn }
	case "checkOut":
		return func(a, b model.Row) bool { return a.CheckOut < b.CheckOut }
	case "expediaId":
		return func(a, b model.Row) bool { return a.ExpediaID < b.ExpediaID }
	case "updatedAt":
		return func(a, b model.Row) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return nil
	}
}

func (s *Server) listRows(c *gin.Context) {
	page, limit := pageParams(c)

	s.mu.Lock()
	rows := s.selectRows(filterFromQuery(c), c.Query("sortBy"), c.Query("sortOrder") == "desc")
	s.mu.Unlock()

	start, end, p := paginate(len(rows), page, limit)
	ok(c, "", model.RowPage{Rows: append([]model.Row{}, rows[start:end]...), Pagination: p})
}

func (s *Server) getRow(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, found := s.rows[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "Row not found")
		return
	}
	ok(c, "", *r)
}

// editable maps accepted column names onto row setters.
var editable = map[string]func(r *model.Row, v string) error{
	"Name":             func(r *model.Row, v string) error { r.GuestName = v; return nil },
	"Check In":         func(r *model.Row, v string) error { r.CheckIn = v; return nil },
	"Check Out":        func(r *model.Row, v string) error { r.CheckOut = v; return nil },
	"Currency":         func(r *model.Row, v string) error { r.Currency = strings.ToUpper(v); return nil },
	"Card Number":      func(r *model.Row, v string) error { r.Card.Number = v; return nil },
	"Card Expire":      func(r *model.Row, v string) error { r.Card.Expire = v; return nil },
	"Card CVV":         func(r *model.Row, v string) error { r.Card.CVV = v; return nil },
	"Soft Descriptor":  func(r *model.Row, v string) error { r.SoftDescriptor = v; return nil },
	"Amount to charge": setAmount,
}

func setAmount(r *model.Row, v string) error {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return err
	}
	r.Amount = d
	return nil
}

func (s *Server) updateRow(gateway model.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			fail(c, http.StatusBadRequest, "Invalid row update")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		r, found := s.rows[c.Param("id")]
		if !found {
			fail(c, http.StatusNotFound, "Row not found")
			return
		}
		if r.Gateway != gateway {
			fail(c, http.StatusBadRequest, "Row belongs to "+r.Gateway.Label())
			return
		}

		updated := *r
		for col, v := range body {
			set, allowed := editable[col]
			if !allowed {
				fail(c, http.StatusBadRequest, "Column '"+col+"' cannot be edited")
				return
			}
			if err := set(&updated, strings.TrimSpace(v)); err != nil {
				fail(c, http.StatusBadRequest, "Invalid value for '"+col+"'")
				return
			}
		}
		updated.UpdatedAt = s.now().UTC()
		*r = updated

		ok(c, "Row updated", updated)
	}
}

func (s *Server) adminTransactions(c *gin.Context) {
	page, limit := pageParams(c)

	s.mu.Lock()
	rows := s.selectRows(filterFromQuery(c), "updatedAt", true)
	all := s.selectRows(rowFilter{}, "", false)
	uploads := append([]string{}, s.uploadOrder...)
	s.mu.Unlock()

	start, end, p := paginate(len(rows), page, limit)
	result := model.AdminTransactionPage{
		Items:      append([]model.Row{}, rows[start:end]...),
		Pagination: p,
		Summary:    make(map[string]int),
	}

	seenStatus := make(map[string]bool)
	seenGateway := make(map[string]bool)
	for _, r := range all {
		result.Summary[string(r.Status)]++
		if !seenStatus[string(r.Status)] {
			seenStatus[string(r.Status)] = true
			result.Filters.Statuses = append(result.Filters.Statuses, string(r.Status))
		}
		if !seenGateway[string(r.Gateway)] {
			seenGateway[string(r.Gateway)] = true
			result.Filters.Gateways = append(result.Filters.Gateways, string(r.Gateway))
		}
	}
	sort.Strings(result.Filters.Statuses)
	sort.Strings(result.Filters.Gateways)
	result.Filters.Uploads = uploads

	ok(c, "", result)
}
