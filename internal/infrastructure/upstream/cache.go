package upstream

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/api/metrics"
)

// entry is the last-known result for one cache key. pending is non-nil while
// a request for the key is in flight; it is closed once the result lands.
// gen counts invalidations: a completing fetch only marks the entry fresh if
// no invalidation arrived while its request was in flight.
type entry struct {
	env     *Envelope
	err     error
	stale   bool
	gen     uint64
	pending chan struct{}
}

// Cache serves read endpoints through a per-key cache with in-flight
// de-duplication: for any key, at most one upstream request runs at a time,
// and concurrent readers of that key await the same result. Entries live
// until a mutation invalidates them; there is no TTL because every write
// path declares the keys it touches.
type Cache struct {
	client *Client
	log    zerolog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

func NewCache(client *Client, log zerolog.Logger) *Cache {
	return &Cache{
		client:  client,
		log:     log,
		entries: make(map[string]*entry),
	}
}

// Fetch returns the envelope for key. Fresh cached results are returned
// immediately; an in-flight request for the same key is joined rather than
// duplicated; otherwise a new request is issued. A cached error is not
// reused; the next Fetch after a failure retries.
func (c *Cache) Fetch(ctx context.Context, key, endpoint string) (*Envelope, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{stale: true}
		c.entries[key] = e
	}

	if e.pending != nil {
		done := e.pending
		c.mu.Unlock()
		metrics.CacheLookupsTotal.WithLabelValues("join").Inc()
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		return e.env, e.err
	}

	if !e.stale && e.err == nil {
		defer c.mu.Unlock()
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return e.env, nil
	}

	done := make(chan struct{})
	e.pending = done
	gen := e.gen
	c.mu.Unlock()

	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	env, err := c.client.Do(ctx, http.MethodGet, endpoint, endpoint, nil)

	c.mu.Lock()
	e.env, e.err = env, err
	// A write may have invalidated the key while this request was in flight;
	// its result could predate the mutation, so it stays stale.
	e.stale = e.gen != gen
	e.pending = nil
	c.mu.Unlock()
	close(done)

	return env, err
}

// Invalidate marks the entry for key stale so the next Fetch refreshes it.
// The generation bump also reaches a request currently in flight, whose
// result must not be marked fresh. Unknown keys are a no-op.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.gen++
	if e.stale && e.pending == nil {
		return
	}
	e.stale = true
	metrics.CacheInvalidationsTotal.Inc()
	c.log.Debug().Str("key", key).Msg("cache entry invalidated")
}

// Refetch invalidates the entry for key and fetches it again. When a
// request for the key is already in flight its result is awaited and
// returned, but the entry stays stale and the next Fetch refreshes it.
func (c *Cache) Refetch(ctx context.Context, key, endpoint string) (*Envelope, error) {
	c.Invalidate(key)
	return c.Fetch(ctx, key, endpoint)
}
