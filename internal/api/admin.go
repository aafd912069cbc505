package api

import (
	"context"
	"net/url"

	"github.com/hance08/payops/internal/model"
)

type TransactionQuery struct {
	Page     int
	Limit    int
	Status   string
	Gateway  string
	UploadID string
	Search   string
}

func (q TransactionQuery) values() url.Values {
	v := pageQuery(q.Page, q.Limit)
	setIf(v, "status", q.Status)
	setIf(v, "gateway", q.Gateway)
	setIf(v, "uploadId", q.UploadID)
	setIf(v, "search", q.Search)
	return v
}

func (q TransactionQuery) Params() map[string]string {
	return flatten(q.values())
}

// AdminTransactions lists rows across both gateways.
func (c *Client) AdminTransactions(ctx context.Context, q TransactionQuery) (*model.AdminTransactionPage, error) {
	var page model.AdminTransactionPage
	if _, err := c.getJSON(ctx, "/admin/excel-data", q.values(), &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []model.Row{}
	}
	return &page, nil
}
