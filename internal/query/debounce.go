package query

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the delay applied to search-as-you-type lookups.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer collapses bursts of calls. Every call to Wait sleeps for the
// delay; only the most recent caller is told to proceed.
type Debouncer struct {
	delay time.Duration

	mu  sync.Mutex
	seq uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Wait reports whether no newer call arrived during the delay. It returns
// false early if ctx is cancelled.
func (d *Debouncer) Wait(ctx context.Context) bool {
	d.mu.Lock()
	d.seq++
	mine := d.seq
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return mine == d.seq
}
