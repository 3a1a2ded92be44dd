package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

// countingUpstream serves a fixed envelope and counts calls. The optional
// gate blocks responses until released, to hold requests in flight.
type countingUpstream struct {
	calls atomic.Int64
	gate  chan struct{}
	srv   *httptest.Server
}

func newCountingUpstream(gated bool) *countingUpstream {
	u := &countingUpstream{}
	if gated {
		u.gate = make(chan struct{})
	}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		if u.gate != nil {
			<-u.gate
		}
		w.Write([]byte(`{"success":true,"message":"ok","data":[{"_id":"1","name":"Beverages"}]}`))
	}))
	return u
}

func (u *countingUpstream) cache() *Cache {
	return NewCache(NewClient(u.srv.URL, 0, zerolog.Nop()), zerolog.Nop())
}

func TestCacheFetchReusesFreshEntry(t *testing.T) {
	u := newCountingUpstream(false)
	defer u.srv.Close()
	c := u.cache()

	for i := 0; i < 3; i++ {
		env, err := c.Fetch(context.Background(), "getCategories", "/api/category/getCategories")
		if err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
		if !env.Success {
			t.Fatalf("Fetch %d: envelope not successful", i)
		}
	}
	if got := u.calls.Load(); got != 1 {
		t.Fatalf("upstream calls = %d, want 1", got)
	}
}

// Concurrent fetches for the same key share one upstream request. The gate
// keeps the first request in flight until both fetchers have started, so the
// second must either join it or hit the fresh entry it produced.
func TestCacheFetchDeduplicatesInFlight(t *testing.T) {
	u := newCountingUpstream(true)
	defer u.srv.Close()
	c := u.cache()

	var wg sync.WaitGroup
	started := make(chan struct{}, 2)
	results := make([]*Envelope, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started <- struct{}{}
			results[i], errs[i] = c.Fetch(context.Background(), "getProducts", "/api/product/getProducts")
		}(i)
	}
	<-started
	<-started
	close(u.gate)
	wg.Wait()

	for i := 0; i < 2; i++ {
		if errs[i] != nil {
			t.Fatalf("Fetch %d: %v", i, errs[i])
		}
		if results[i] == nil || !results[i].Success {
			t.Fatalf("Fetch %d: bad envelope %+v", i, results[i])
		}
	}
	if got := u.calls.Load(); got != 1 {
		t.Fatalf("upstream calls = %d, want 1", got)
	}
}

func TestCacheInvalidateForcesRefresh(t *testing.T) {
	u := newCountingUpstream(false)
	defer u.srv.Close()
	c := u.cache()

	ctx := context.Background()
	if _, err := c.Fetch(ctx, "getSuppliers", "/api/supplier/getSuppliers"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	c.Invalidate("getSuppliers")
	if _, err := c.Fetch(ctx, "getSuppliers", "/api/supplier/getSuppliers"); err != nil {
		t.Fatalf("Fetch after invalidate: %v", err)
	}
	if got := u.calls.Load(); got != 2 {
		t.Fatalf("upstream calls = %d, want 2", got)
	}

	// Unknown and already-stale keys are no-ops.
	c.Invalidate("never-fetched")
	c.Invalidate("getSuppliers")
	c.Invalidate("getSuppliers")
}

// An invalidation arriving while a request for the key is in flight must
// survive it: the in-flight result may predate the write, so the next Fetch
// has to refresh instead of serving it as fresh.
func TestCacheInvalidateDuringInFlightFetch(t *testing.T) {
	u := newCountingUpstream(true)
	defer u.srv.Close()
	c := u.cache()

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		c.Fetch(context.Background(), "getProducts", "/api/product/getProducts")
	}()
	for u.calls.Load() == 0 {
	}
	c.Invalidate("getProducts")
	close(u.gate)
	<-firstDone

	if _, err := c.Fetch(context.Background(), "getProducts", "/api/product/getProducts"); err != nil {
		t.Fatalf("Fetch after mid-flight invalidate: %v", err)
	}
	if got := u.calls.Load(); got != 2 {
		t.Fatalf("upstream calls = %d, want 2 (mid-flight invalidation was lost)", got)
	}
}

func TestCacheRefetch(t *testing.T) {
	u := newCountingUpstream(false)
	defer u.srv.Close()
	c := u.cache()

	ctx := context.Background()
	if _, err := c.Fetch(ctx, "getTransactions", "/api/transaction/getTransactions"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := c.Refetch(ctx, "getTransactions", "/api/transaction/getTransactions"); err != nil {
		t.Fatalf("Refetch: %v", err)
	}
	if got := u.calls.Load(); got != 2 {
		t.Fatalf("upstream calls = %d, want 2", got)
	}
}

// A failed fetch is not served from cache; the next fetch retries.
func TestCacheErrorNotCached(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()
	c := NewCache(NewClient(srv.URL, 0, zerolog.Nop()), zerolog.Nop())

	ctx := context.Background()
	if _, err := c.Fetch(ctx, "getAuditLogs", "/api/auditlog/getAuditLogs"); err == nil {
		t.Fatalf("first Fetch must surface the upstream failure")
	}
	if _, err := c.Fetch(ctx, "getAuditLogs", "/api/auditlog/getAuditLogs"); err != nil {
		t.Fatalf("retry Fetch: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("upstream calls = %d, want 2", got)
	}
}

func TestCacheFetchContextCancelledWhileJoining(t *testing.T) {
	u := newCountingUpstream(true)
	defer u.srv.Close()
	defer close(u.gate)
	c := u.cache()

	firstStarted := make(chan struct{})
	go func() {
		close(firstStarted)
		c.Fetch(context.Background(), "getCategories", "/api/category/getCategories")
	}()
	<-firstStarted

	// Wait for the first fetch to register as in flight, then join with an
	// already-cancelled context.
	for u.calls.Load() == 0 {
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Fetch(ctx, "getCategories", "/api/category/getCategories"); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
