// Package sandbox is an in-memory stand-in for the payment-operations API.
// It speaks the same envelope and routes as the real service so the client
// can be exercised end to end without a backend.
package sandbox

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hance08/payops/internal/model"
)

type Server struct {
	cfg    Config
	engine *gin.Engine
	now    func() time.Time

	mu          sync.Mutex
	users       map[string]string
	otps        map[string]string
	rows        map[string]*model.Row
	rowOrder    []string
	uploads     map[string]*uploadState
	uploadOrder []string
	invites     []*inviteState
	accounts    []model.StripeAccount

	replayMu sync.Mutex
	replays  map[string]replay
	hits     map[string]int

	tokenMu    sync.Mutex
	liveTokens map[string]bool
}

func New(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:     cfg,
		now:     time.Now,
		users:   map[string]string{strings.ToLower(cfg.Email): cfg.Password},
		otps:    make(map[string]string),
		rows:    make(map[string]*model.Row),
		uploads: make(map[string]*uploadState),
		replays: make(map[string]replay),
		hits:    make(map[string]int),

		liveTokens: make(map[string]bool),
		accounts: []model.StripeAccount{{
			ID:             "acct_sandbox",
			Email:          cfg.Email,
			Country:        "US",
			ChargesEnabled: true,
			PayoutsEnabled: true,
		}},
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.countHits())
	s.registerRoutes(s.engine.Group("/api"))

	if cfg.Seed {
		s.SeedRows(DemoRows()...)
	}

	return s
}

func (s *Server) registerRoutes(api *gin.RouterGroup) {
	api.GET("/health", func(c *gin.Context) {
		ok(c, "ok", nil)
	})

	auth := api.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/verify-otp", s.verifyOTP)
	auth.POST("/resend-otp", s.resendOTP)
	auth.POST("/forgot-password", s.forgotPassword)
	auth.POST("/reset-password/:token", s.resetPassword)
	auth.GET("/profile", s.requireAuth(), s.profile)

	inv := api.Group("/invitations")
	inv.POST("/validate", s.validateInvitation)
	inv.POST("/complete", s.completeInvitation)
	inv.POST("/send", s.requireAuth(), s.sendInvitation)
	inv.GET("/my-invitations", s.requireAuth(), s.myInvitations)

	protected := api.Group("", s.requireAuth())
	protected.POST("/upload", s.upload)
	protected.GET("/upload/sessions", s.listUploads)
	protected.POST("/upload/resume/:id", s.resumeUpload)
	protected.DELETE("/upload/delete/:id", s.deleteUpload)
	protected.GET("/files/:id/download", s.download)

	protected.GET("/get-row-data", s.listRows)
	protected.GET("/get-single-row-data/:id", s.getRow)
	protected.GET("/admin/excel-data", s.adminTransactions)

	paypal := protected.Group("/paypal", s.idempotent())
	paypal.POST("/process-payment", s.paypalPayment)
	paypal.POST("/process-refund", s.refund(model.GatewayPayPal))
	paypal.POST("/process-bulk-payments", s.bulkPayments(model.GatewayPayPal))
	paypal.POST("/process-bulk-refunds", s.bulkRefunds(model.GatewayPayPal))
	paypal.PUT("/update-row/:id", s.updateRow(model.GatewayPayPal))

	stripe := protected.Group("/stripe", s.idempotent())
	stripe.POST("/create-account", s.createStripeAccount)
	stripe.GET("/accounts", s.stripeAccounts)
	stripe.GET("/settings", s.stripeSettings)
	stripe.GET("/update", s.stripeUpdateLink)
	stripe.POST("/create-payment", s.stripePayment)
	stripe.POST("/create-refund", s.refund(model.GatewayStripe))
	stripe.POST("/process-bulk-payments", s.bulkPayments(model.GatewayStripe))
	stripe.POST("/process-bulk-refunds", s.bulkRefunds(model.GatewayStripe))
	stripe.PUT("/update-row/:id", s.updateRow(model.GatewayStripe))
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on cfg.Addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Hits reports how many requests reached route, e.g. Hits("POST", "/paypal/process-bulk-payments").
func (s *Server) Hits(method, route string) int {
	s.replayMu.Lock()
	defer s.replayMu.Unlock()
	return s.hits[method+" "+route]
}

func (s *Server) countHits() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := strings.TrimPrefix(c.FullPath(), "/api")
		s.replayMu.Lock()
		s.hits[c.Request.Method+" "+route]++
		s.replayMu.Unlock()
		c.Next()
	}
}

func ok(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": msg, "data": data})
}

func fail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"status": "error", "message": msg})
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func paginate(total, page, limit int) (start, end int, p model.Pagination) {
	p = model.Pagination{Page: page, Limit: limit, Total: total}
	p.TotalPages = (total + limit - 1) / limit
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end, p
}
