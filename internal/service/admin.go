package service

import (
	"context"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
)

type AdminService struct {
	client *api.Client
	cache  *query.Cache
	config Config
}

func NewAdminService(client *api.Client, cache *query.Cache, cfg Config) *AdminService {
	return &AdminService{client: client, cache: cache, config: cfg}
}

// Transactions lists rows across both gateways with filter metadata.
func (as *AdminService) Transactions(ctx context.Context, q api.TransactionQuery) (*model.AdminTransactionPage, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = as.config.PageSize
	}
	key := query.NewKey(query.ResourceAdminTransactions, q.Params())
	return query.Fetch(ctx, as.cache, key, func(ctx context.Context) (*model.AdminTransactionPage, error) {
		return as.client.AdminTransactions(ctx, q)
	})
}
