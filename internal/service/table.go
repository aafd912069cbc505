package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/filter"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
	"github.com/hance08/payops/internal/store"
)

// Page is one loaded table page after the local filter expression.
type Page struct {
	Key        query.Key
	Query      api.RowQuery
	Filter     string
	Rows       []model.Row
	Pagination model.Pagination
	Selection  store.Selection
}

// PageKey identifies the page a selection belongs to.
func (p *Page) PageKey() string {
	return p.Key.String()
}

// Gateway is the gateway bulk actions on this page go through: the query's
// gateway when set, otherwise the one gateway every row shares.
func (p *Page) Gateway() (model.Gateway, error) {
	if p.Query.Gateway != "" {
		return p.Query.Gateway, nil
	}
	var gw model.Gateway
	for _, r := range p.Rows {
		if gw == "" {
			gw = r.Gateway
			continue
		}
		if r.Gateway != gw {
			return "", ErrUnknownGateway
		}
	}
	if gw == "" {
		return "", ErrUnknownGateway
	}
	return gw, nil
}

// TableView keeps the current page of the row table. Only the latest
// dispatched load may replace it.
type TableView struct {
	client    *api.Client
	cache     *query.Cache
	selection store.SelectionRepository
	gen       query.Generation

	mu      sync.Mutex
	current *Page
}

func newTableView(client *api.Client, cache *query.Cache, selection store.SelectionRepository) *TableView {
	return &TableView{client: client, cache: cache, selection: selection}
}

// Load fetches the page for q, applies filterExpr to it and makes it current.
// A selection made on a different page is cleared.
func (v *TableView) Load(ctx context.Context, q api.RowQuery, filterExpr string) (*Page, error) {
	return v.load(ctx, q, filterExpr, false)
}

// Reload bypasses the cache for the current page.
func (v *TableView) Reload(ctx context.Context) (*Page, error) {
	v.mu.Lock()
	cur := v.current
	v.mu.Unlock()
	if cur == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	return v.load(ctx, cur.Query, cur.Filter, true)
}

func (v *TableView) load(ctx context.Context, q api.RowQuery, filterExpr string, fresh bool) (*Page, error) {
	token := v.gen.Next()
	key := query.NewKey(query.ResourceRows, q.Params())

	loader := func(ctx context.Context) (*model.RowPage, error) {
		return v.client.ListRows(ctx, q)
	}

	var (
		raw *model.RowPage
		err error
	)
	if fresh {
		raw, err = query.Refetch(ctx, v.cache, key, loader)
	} else {
		raw, err = query.Fetch(ctx, v.cache, key, loader)
	}
	if err != nil {
		return nil, err
	}

	rows, err := filter.MatchRows(raw.Rows, filterExpr)
	if err != nil {
		return nil, err
	}

	return v.apply(token, &Page{
		Key:        key,
		Query:      q,
		Filter:     filterExpr,
		Rows:       rows,
		Pagination: raw.Pagination,
	})
}

// apply makes page current if token is still the latest dispatch.
func (v *TableView) apply(token uint64, page *Page) (*Page, error) {
	if !v.gen.Current(token) {
		return nil, ErrStaleResult
	}

	sel, err := v.selection.GetSelection()
	if err != nil {
		return nil, err
	}
	if !sel.Empty() && sel.PageKey != page.PageKey() {
		if err := v.selection.ClearSelection(); err != nil {
			return nil, err
		}
		sel = store.Selection{}
	}
	page.Selection = sel

	v.mu.Lock()
	v.current = page
	v.mu.Unlock()

	return page, nil
}

// Current returns the last applied page, or nil.
func (v *TableView) Current() *Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Select adds ids from the current page to the selection. Ids not on the
// page are returned as rejected.
func (v *TableView) Select(ids []string) (store.Selection, []string, error) {
	page := v.Current()
	if page == nil {
		return store.Selection{}, nil, fmt.Errorf("no page loaded")
	}

	onPage := make(map[string]bool, len(page.Rows))
	for _, r := range page.Rows {
		onPage[r.ID] = true
	}

	var accepted, rejected []string
	for _, id := range ids {
		if onPage[id] {
			accepted = append(accepted, id)
		} else {
			rejected = append(rejected, id)
		}
	}

	sel, err := v.selection.AddToSelection(page.PageKey(), accepted)
	if err != nil {
		return store.Selection{}, nil, err
	}
	page.Selection = sel
	return sel, rejected, nil
}

// SelectAll selects every row of the current page.
func (v *TableView) SelectAll() (store.Selection, error) {
	page := v.Current()
	if page == nil {
		return store.Selection{}, fmt.Errorf("no page loaded")
	}
	ids := make([]string, len(page.Rows))
	for i, r := range page.Rows {
		ids[i] = r.ID
	}
	sel, _, err := v.Select(ids)
	return sel, err
}

func (v *TableView) Unselect(ids []string) (store.Selection, error) {
	sel, err := v.selection.RemoveFromSelection(ids)
	if err != nil {
		return store.Selection{}, err
	}
	if page := v.Current(); page != nil {
		page.Selection = sel
	}
	return sel, nil
}

func (v *TableView) ClearSelection() error {
	if err := v.selection.ClearSelection(); err != nil {
		return err
	}
	if page := v.Current(); page != nil {
		page.Selection = store.Selection{}
	}
	return nil
}
