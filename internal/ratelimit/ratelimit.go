package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrBudgetExhausted is returned by Budget.Use once the request cap is reached.
var ErrBudgetExhausted = errors.New("summary request budget exhausted")

// Budget caps the number of language-model requests made in one run.
// A max of 0 means unlimited.
type Budget struct {
	mu    sync.Mutex
	max   int
	used  int
	calls map[string]int
}

// NewBudget creates a budget allowing max requests.
func NewBudget(max int) *Budget {
	return &Budget{max: max, calls: make(map[string]int)}
}

// Use reserves one request of the given kind.
func (b *Budget) Use(kind string) error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max > 0 && b.used >= b.max {
		return fmt.Errorf("%w (%d/%d)", ErrBudgetExhausted, b.used, b.max)
	}
	b.used++
	b.calls[kind]++
	return nil
}

// Remaining returns how many requests are left, or -1 when unlimited.
func (b *Budget) Remaining() int {
	if b == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max <= 0 {
		return -1
	}
	return b.max - b.used
}

// Reset clears the counters; called at the start of every run.
func (b *Budget) Reset() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used = 0
	b.calls = make(map[string]int)
}

// Stats returns a snapshot of usage per request kind.
func (b *Budget) Stats() map[string]interface{} {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	calls := make(map[string]int, len(b.calls))
	for k, v := range b.calls {
		calls[k] = v
	}
	return map[string]interface{}{
		"used":  b.used,
		"limit": b.max,
		"calls": calls,
	}
}

// HostLimiter spaces requests to the same host by at least interval.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewHostLimiter creates a limiter; a zero interval disables waiting.
func NewHostLimiter(interval time.Duration) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until a request to rawURL's host may proceed or ctx is done.
func (h *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	if h == nil || h.interval <= 0 {
		return ctx.Err()
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return &url.Error{Op: "parse", URL: rawURL, Err: errors.New("missing host in URL")}
	}
	return h.limiterFor(u.Host).Wait(ctx)
}

func (h *HostLimiter) limiterFor(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Every(h.interval), 1)
		h.limiters[host] = l
	}
	return l
}

// Sleep pauses for d unless ctx is cancelled first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
