package query

import "sync/atomic"

// Generation guards against stale responses. Each dispatch takes a token;
// a result may be applied only while its token is still the latest.
type Generation struct {
	n atomic.Uint64
}

func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

func (g *Generation) Current(token uint64) bool {
	return g.n.Load() == token
}
