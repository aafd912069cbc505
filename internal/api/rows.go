package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hance08/payops/internal/model"
)

// RowQuery selects one page of the row-data table.
type RowQuery struct {
	Page     int
	Limit    int
	Status   string
	Search   string
	UploadID string
	Gateway  model.Gateway
	Sort     string
	Desc     bool
}

func (q RowQuery) values() url.Values {
	v := pageQuery(q.Page, q.Limit)
	setIf(v, "status", q.Status)
	setIf(v, "search", q.Search)
	setIf(v, "uploadId", q.UploadID)
	setIf(v, "gateway", string(q.Gateway))
	if q.Sort != "" {
		v.Set("sortBy", q.Sort)
		if q.Desc {
			v.Set("sortOrder", "desc")
		} else {
			v.Set("sortOrder", "asc")
		}
	}
	return v
}

// Params flattens the query for cache keys.
func (q RowQuery) Params() map[string]string {
	return flatten(q.values())
}

// RowQueryFromParams rebuilds a query from the output of Params.
func RowQueryFromParams(params map[string]string) RowQuery {
	q := RowQuery{
		Status:   params["status"],
		Search:   params["search"],
		UploadID: params["uploadId"],
		Gateway:  model.Gateway(params["gateway"]),
		Sort:     params["sortBy"],
		Desc:     params["sortOrder"] == "desc",
	}
	q.Page, _ = strconv.Atoi(params["page"])
	q.Limit, _ = strconv.Atoi(params["limit"])
	return q
}

func (c *Client) ListRows(ctx context.Context, q RowQuery) (*model.RowPage, error) {
	var page model.RowPage
	if _, err := c.getJSON(ctx, "/get-row-data", q.values(), &page); err != nil {
		return nil, err
	}
	if page.Rows == nil {
		page.Rows = []model.Row{}
	}
	return &page, nil
}

func (c *Client) GetRow(ctx context.Context, id string) (*model.Row, error) {
	var row model.Row
	if _, err := c.getJSON(ctx, "/get-single-row-data/"+url.PathEscape(id), nil, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// RowUpdate carries only the editable columns, keyed the way the API names them.
type RowUpdate map[string]string

// UpdateRow edits a row through its gateway's endpoint.
func (c *Client) UpdateRow(ctx context.Context, gateway model.Gateway, id string, update RowUpdate) (*model.Row, error) {
	var row model.Row
	path := "/" + string(gateway) + "/update-row/" + url.PathEscape(id)
	if _, err := c.putJSON(ctx, path, update, &row); err != nil {
		return nil, err
	}
	return &row, nil
}
