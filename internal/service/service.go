package service

import (
	"context"
	"time"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/ledger"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/store"
	"github.com/pterm/pterm"
)

type Config struct {
	DefaultGateway  model.Gateway
	DefaultCurrency string
	PageSize        int
	PollInterval    time.Duration
}

type Service struct {
	Auth        *AuthService
	Rows        *RowService
	Bulk        *BulkService
	Checkout    *Submitter
	Uploads     *UploadService
	Stripe      *StripeService
	Invitations *InvitationService
	Admin       *AdminService
}

func NewService(client *api.Client, cache *query.Cache, repo store.Repository, l *ledger.Ledger, logger *pterm.Logger, cfg Config) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.DefaultGateway == "" {
		cfg.DefaultGateway = model.GatewayPayPal
	}

	keys := &idempotency{ledger: l, logger: logger}
	return &Service{
		Auth:        NewAuthService(client, cache, repo),
		Rows:        NewRowService(client, cache, repo, keys, cfg),
		Bulk:        NewBulkService(client, cache, repo, keys),
		Checkout:    NewSubmitter(client, cache, keys),
		Uploads:     NewUploadService(client, cache, cfg),
		Stripe:      NewStripeService(client, cache),
		Invitations: NewInvitationService(client, cache),
		Admin:       NewAdminService(client, cache, cfg),
	}
}

// idempotency hands out ledger keys for payment mutations.
type idempotency struct {
	ledger *ledger.Ledger
	logger *pterm.Logger
}

// run sends fn with the key of operation attached. The key is kept for a
// retry unless the server gave a settled answer.
func (i *idempotency) run(ctx context.Context, operation string, fn func(context.Context) error) error {
	entry, err := i.ledger.Acquire(operation)
	if err != nil {
		return err
	}
	if entry.Attempts > 1 {
		i.logger.Info("retrying with previous idempotency key", i.logger.Args("operation", operation, "attempt", entry.Attempts))
	}

	err = fn(api.WithIdempotencyKey(ctx, entry.Key))
	if api.Settled(err) {
		if cerr := i.ledger.Confirm(operation); cerr != nil {
			i.logger.Warn("failed to release idempotency key", i.logger.Args("operation", operation, "error", cerr))
		}
	}
	return err
}
