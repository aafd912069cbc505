package service

import (
	"context"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/ledger"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/store"
)

type RowService struct {
	client    *api.Client
	cache     *query.Cache
	selection store.SelectionRepository
	keys      *idempotency
	config    Config
}

func NewRowService(client *api.Client, cache *query.Cache, selection store.SelectionRepository, keys *idempotency, cfg Config) *RowService {
	return &RowService{client: client, cache: cache, selection: selection, keys: keys, config: cfg}
}

// NewTable starts a table view sharing this service's cache and selection.
func (rs *RowService) NewTable() *TableView {
	return newTableView(rs.client, rs.cache, rs.selection)
}

// DefaultQuery is page one at the configured page size.
func (rs *RowService) DefaultQuery() api.RowQuery {
	return api.RowQuery{Page: 1, Limit: rs.config.PageSize}
}

// SelectedQuery returns the query of the page the stored selection was made
// on. ok is false when nothing is selected.
func (rs *RowService) SelectedQuery() (q api.RowQuery, ok bool, err error) {
	sel, err := rs.selection.GetSelection()
	if err != nil || sel.Empty() {
		return api.RowQuery{}, false, err
	}
	key, err := query.ParseKey(sel.PageKey)
	if err != nil {
		return api.RowQuery{}, false, err
	}
	return api.RowQueryFromParams(key.Params), true, nil
}

func (rs *RowService) GetRow(ctx context.Context, id string) (*model.Row, error) {
	key := query.NewKey(query.ResourceRow, map[string]string{"id": id})
	return query.Fetch(ctx, rs.cache, key, func(ctx context.Context) (*model.Row, error) {
		return rs.client.GetRow(ctx, id)
	})
}

// EditRow sends a gateway-qualified update for the row's editable fields.
func (rs *RowService) EditRow(ctx context.Context, row model.Row, update api.RowUpdate) (*model.Row, error) {
	return query.Mutate(ctx, rs.cache, query.MutationEditRow, func(ctx context.Context) (*model.Row, error) {
		return rs.client.UpdateRow(ctx, row.Gateway, row.ID, update)
	})
}

// Refund sends a single refund for a charged row.
func (rs *RowService) Refund(ctx context.Context, row model.Row) (*model.ChargeResult, string, error) {
	if !ResolveActions(row.Status).CanRefund {
		return nil, "", ErrNotRefundable
	}

	type refundReply struct {
		result *model.ChargeResult
		msg    string
	}

	op := ledger.OperationKey(string(query.MutationRefund), string(row.Gateway), row.ID)
	reply, err := query.Mutate(ctx, rs.cache, query.MutationRefund, func(ctx context.Context) (refundReply, error) {
		var out refundReply
		err := rs.keys.run(ctx, op, func(ctx context.Context) error {
			var err error
			switch row.Gateway {
			case model.GatewayStripe:
				out.result, out.msg, err = rs.client.StripeCreateRefund(ctx, row.ID)
			default:
				out.result, out.msg, err = rs.client.PayPalProcessRefund(ctx, row.ID)
			}
			return err
		})
		return out, err
	})
	if err != nil {
		return nil, "", err
	}
	return reply.result, reply.msg, nil
}
