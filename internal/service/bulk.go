package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/ledger"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/store"
)

type BulkKind string

const (
	BulkCharge BulkKind = "charge"
	BulkRefund BulkKind = "refund"
)

func (k BulkKind) mutation() query.Mutation {
	if k == BulkRefund {
		return query.MutationBulkRefund
	}
	return query.MutationBulkCharge
}

// Eligible reports whether a row in status may take part in a bulk action.
func (k BulkKind) Eligible(status model.ChargeStatus) bool {
	if k == BulkRefund {
		return status == model.StatusCharged
	}
	return status != model.StatusCharged
}

// EligibleIDs intersects the selection with the page rows and keeps the
// ones kind applies to, in page order.
func EligibleIDs(rows []model.Row, selected []string, kind BulkKind) []string {
	picked := make(map[string]bool, len(selected))
	for _, id := range selected {
		picked[id] = true
	}

	var ids []string
	for _, r := range rows {
		if picked[r.ID] && kind.Eligible(r.Status) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// BulkOutcome reports what a bulk run did. Skipped is set when nothing was
// selected and no request was made.
type BulkOutcome struct {
	Kind      BulkKind
	Gateway   model.Gateway
	Requested []string
	Message   string
	Result    *model.BulkResult
	Succeeded []string
	Failed    []model.BulkItemResult
	Remaining store.Selection
	Skipped   bool

	// Page is the table page refetched after the batch, set by RunTable.
	Page *Page
}

// Atomic reports whether the server answered for the batch as a whole.
func (o *BulkOutcome) Atomic() bool {
	return o.Result != nil && len(o.Result.Results) == 0
}

type BulkService struct {
	client    *api.Client
	cache     *query.Cache
	selection store.SelectionRepository
	keys      *idempotency
}

func NewBulkService(client *api.Client, cache *query.Cache, selection store.SelectionRepository, keys *idempotency) *BulkService {
	return &BulkService{client: client, cache: cache, selection: selection, keys: keys}
}

// Plan returns the ids a bulk run on page would send. It makes no request.
func (bs *BulkService) Plan(page *Page, kind BulkKind) ([]string, error) {
	if page.Selection.Empty() {
		return nil, nil
	}
	ids := EligibleIDs(page.Rows, page.Selection.RowIDs, kind)
	if len(ids) == 0 {
		return nil, &noEligibleRowsError{kind: kind}
	}
	return ids, nil
}

// RunTable runs kind on the current page of table, then refetches that page
// so the new statuses can be shown. A failed refetch still returns the
// outcome of the batch that was sent.
func (bs *BulkService) RunTable(ctx context.Context, table *TableView, kind BulkKind) (*BulkOutcome, error) {
	page := table.Current()
	if page == nil {
		return nil, errors.New("no page loaded")
	}

	outcome, err := bs.Run(ctx, page, kind)
	if err != nil || outcome.Skipped {
		return outcome, err
	}

	refreshed, err := table.Reload(ctx)
	if err != nil {
		return outcome, fmt.Errorf("bulk %s sent, but reloading the page failed: %w", kind, err)
	}
	outcome.Page = refreshed
	return outcome, nil
}

// Run sends one batched request for the eligible selected rows of page.
// On failure the selection is left as it was.
func (bs *BulkService) Run(ctx context.Context, page *Page, kind BulkKind) (*BulkOutcome, error) {
	outcome := &BulkOutcome{Kind: kind, Remaining: page.Selection}
	if page.Selection.Empty() {
		outcome.Skipped = true
		return outcome, nil
	}

	ids, err := bs.Plan(page, kind)
	if err != nil {
		return nil, err
	}

	gateway, err := page.Gateway()
	if err != nil {
		return nil, err
	}
	outcome.Gateway = gateway
	outcome.Requested = ids

	op := ledger.OperationKey("bulk-"+string(kind), string(gateway), ids...)
	type bulkReply struct {
		result *model.BulkResult
		msg    string
	}

	reply, err := query.Mutate(ctx, bs.cache, kind.mutation(), func(ctx context.Context) (bulkReply, error) {
		var out bulkReply
		err := bs.keys.run(ctx, op, func(ctx context.Context) error {
			var err error
			if kind == BulkRefund {
				out.result, out.msg, err = bs.client.BulkRefunds(ctx, gateway, ids)
			} else {
				out.result, out.msg, err = bs.client.BulkPayments(ctx, gateway, ids)
			}
			return err
		})
		return out, err
	})
	if err != nil {
		return nil, err
	}

	if reply.result == nil {
		reply.result = &model.BulkResult{Processed: len(ids)}
	}
	outcome.Result = reply.result
	outcome.Message = reply.msg

	if outcome.Atomic() {
		outcome.Succeeded = ids
		if err := bs.selection.ClearSelection(); err != nil {
			return nil, err
		}
		outcome.Remaining = store.Selection{}
		return outcome, nil
	}

	for _, item := range reply.result.Results {
		if item.Outcome == model.OutcomeSucceeded {
			outcome.Succeeded = append(outcome.Succeeded, item.ID)
		} else {
			outcome.Failed = append(outcome.Failed, item)
		}
	}

	remaining, err := bs.selection.RemoveFromSelection(outcome.Succeeded)
	if err != nil {
		return nil, err
	}
	outcome.Remaining = remaining
	return outcome, nil
}
