package ratecache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Pattarapon0/dcommerce-sub002/errs"
)

// FetchFunc retrieves a fresh base->quote rate. Rate sourcing is external;
// the cache only owns freshness and thread safety.
type FetchFunc func(ctx context.Context, base, quote string) (decimal.Decimal, error)

type entry struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

// Cache is an injected, mutex-guarded exchange-rate cache with an explicit
// TTL. It replaces a process-wide rate map shared through a global lock.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	fetch   FetchFunc
	entries map[string]entry
	now     func() time.Time
}

func New(ttl time.Duration, fetch FetchFunc) *Cache {
	return &Cache{
		ttl:     ttl,
		fetch:   fetch,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Rate returns the cached base->quote rate, fetching a fresh one when the
// entry is missing or expired. The fetch runs outside the lock so a slow
// source never blocks unrelated lookups; two concurrent misses for the same
// pair may both fetch, last write wins.
func (c *Cache) Rate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	if base == quote {
		return decimal.NewFromInt(1), nil
	}
	key := base + "/" + quote

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.rate, nil
	}
	c.mu.Unlock()

	rate, err := c.fetch(ctx, base, quote)
	if err != nil {
		return decimal.Zero, errs.Wrap(errs.KindInternal, "failed to fetch exchange rate", err)
	}

	c.mu.Lock()
	c.entries[key] = entry{rate: rate, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return rate, nil
}

// Purge drops every cached rate.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
