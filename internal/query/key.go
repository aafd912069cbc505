// Package query caches API reads and invalidates them after mutations.
package query

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Resources a cache entry can belong to. Mutations invalidate by resource.
const (
	ResourceUploads           = "uploads"
	ResourceRows              = "rows"
	ResourceRow               = "row"
	ResourceAdminTransactions = "admin-transactions"
	ResourceStripeAccounts    = "stripe-accounts"
	ResourceStripeSettings    = "stripe-settings"
	ResourceInvitations       = "invitations"
	ResourceProfile           = "profile"
)

// Key identifies one cached read: the resource plus the parameters it was
// fetched with. Parameter order never matters.
type Key struct {
	Resource string
	Params   map[string]string
}

func NewKey(resource string, params map[string]string) Key {
	return Key{Resource: resource, Params: params}
}

// String renders the canonical form, e.g. "rows?gateway=paypal&page=1".
// Empty parameter values are dropped.
func (k Key) String() string {
	names := make([]string, 0, len(k.Params))
	for name, v := range k.Params {
		if v != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return k.Resource
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(k.Resource)
	for i, name := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(k.Params[name]))
	}
	return b.String()
}

// ParseKey reverses Key.String.
func ParseKey(s string) (Key, error) {
	resource, raw, _ := strings.Cut(s, "?")
	if resource == "" {
		return Key{}, fmt.Errorf("invalid cache key %q", s)
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Key{}, fmt.Errorf("invalid cache key %q: %w", s, err)
	}
	params := make(map[string]string, len(values))
	for name, vs := range values {
		if len(vs) > 0 {
			params[name] = vs[0]
		}
	}
	return Key{Resource: resource, Params: params}, nil
}
