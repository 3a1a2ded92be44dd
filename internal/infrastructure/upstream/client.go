package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/api/metrics"
)

const defaultTimeout = 10 * time.Second

// ErrRejected marks a 2xx envelope carrying success:false. The API accepted
// the request at the transport level but refused it at the application level.
var ErrRejected = errors.New("request rejected by inventory api")

// Error describes a failed inventory API call.
type Error struct {
	Endpoint string
	Status   int // HTTP status; 0 on transport failure
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("upstream %s: %v", e.Endpoint, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type tokenKey struct{}

// WithToken stores the session's bearer token on the context. The route
// guard sets it per request; the client attaches it to every call.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token set by WithToken, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client issues JSON requests against the inventory API and decodes the
// uniform envelope. A 401 from the API is reported like any other failure;
// the client never touches the session; session lifecycle belongs to the
// guard and the login flow.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Get performs a read call. metricPath is the endpoint without IDs, used as
// the metric label to keep cardinality bounded.
func (c *Client) Get(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, endpoint, endpoint, nil)
}

// Do performs a single call and decodes the envelope. Envelopes carrying
// success:false are rejected uniformly with ErrRejected; no caller gets to
// treat a refused mutation as a success.
func (c *Client) Do(ctx context.Context, method, endpoint, metricPath string, payload any) (*Envelope, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Endpoint: endpoint, Err: err}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, &Error{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(metricPath).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metricPath, method, "error").Inc()
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("upstream request failed")
		return nil, &Error{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metricPath, method, "error").Inc()
		return nil, &Error{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}

	var env Envelope
	// A non-JSON body on an error status is acceptable; the envelope stays zero.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(metricPath, method, "error").Inc()
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Endpoint: endpoint, Status: resp.StatusCode, Message: msg, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	if !env.Success {
		metrics.UpstreamRequestsTotal.WithLabelValues(metricPath, method, "rejected").Inc()
		c.log.Warn().Str("endpoint", endpoint).Str("message", env.Message).Msg("upstream rejected request")
		return nil, &Error{Endpoint: endpoint, Status: resp.StatusCode, Message: env.Message, Err: ErrRejected}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(metricPath, method, "ok").Inc()
	return &env, nil
}

// Ping reports whether the inventory API answers HTTP at all. Any status
// counts: readiness is about reachability, not authorization.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream ping: %w", err)
	}
	resp.Body.Close()
	return nil
}
