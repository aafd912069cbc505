package sandbox

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

type replay struct {
	status int
	body   []byte
}

type recorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *recorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// idempotent replays the stored response when a mutation arrives again with
// an Idempotency-Key it has already completed. Only 2xx answers are kept, so
// a rejected request can be corrected and resent under the same key.
func (s *Server) idempotent() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		scope := c.Request.Method + " " + c.Request.URL.Path + " " + key

		s.replayMu.Lock()
		saved, seen := s.replays[scope]
		s.replayMu.Unlock()

		if seen {
			c.Header("Idempotent-Replayed", "true")
			c.Data(saved.status, "application/json; charset=utf-8", saved.body)
			c.Abort()
			return
		}

		rec := &recorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		if status := rec.Status(); status >= 200 && status < 300 {
			s.replayMu.Lock()
			s.replays[scope] = replay{status: status, body: rec.body.Bytes()}
			s.replayMu.Unlock()
		}
	}
}
