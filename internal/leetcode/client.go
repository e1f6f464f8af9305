// Package leetcode implements the authenticated GraphQL client for the
// remote problem service: rate limiting, retry with exponential backoff,
// anti-forgery token handling, pagination, and error classification.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Defaults for the remote client. Every one of them can be overridden
// through Config.
const (
	DefaultEndpoint           = "https://leetcode.com/graphql/"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultMinRequestInterval = 500 * time.Millisecond
	DefaultMaxRetries         = 3
	DefaultRetryBaseDelay     = 1 * time.Second
	DefaultPageSize           = 50
	DefaultMaxSyncLimit       = 2000
	DefaultPageDelay          = 300 * time.Millisecond
)

const (
	userAgent = "Mozilla/5.0 (compatible; leetvault/1.0; +https://github.com/asteroid-belt/leetvault)"

	// csrfTTL bounds how long a scraped anti-forgery token is reused before
	// a fresh one is negotiated.
	csrfTTL = 30 * time.Minute

	// maxPageFailures aborts a full history walk after this many consecutive
	// failed pages.
	maxPageFailures = 3

	// maxResponseBytes caps how much of a response body is read. Problem
	// descriptions are large but nowhere near this.
	maxResponseBytes = 4 << 20

	// seenCapacity bounds the per-session dedup set.
	seenCapacity = 10000
)

// Config holds the remote client settings. The zero value is usable: every
// unset field falls back to its default, and an empty Session simply means
// unauthenticated access (public data only).
type Config struct {
	// Username is the account whose accepted submissions are fetched.
	Username string

	// Session is the session cookie value. Required for private data such
	// as the full submission history and submitted code.
	Session string

	// CSRFToken, when set, is sent as-is and never refreshed. When empty
	// the client negotiates and caches a token on demand.
	CSRFToken string

	// Endpoint is the GraphQL URL.
	Endpoint string

	RequestTimeout     time.Duration
	MinRequestInterval time.Duration
	MaxRetries         int
	RetryBaseDelay     time.Duration

	// PageSize is the page length for full history walks, clamped to the
	// remote's accepted range.
	PageSize int

	// MaxSyncLimit caps how many submissions a full history walk visits.
	MaxSyncLimit int

	// PageDelay is the pause between consecutive history pages, on top of
	// the rate limiter.
	PageDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MinRequestInterval <= 0 {
		c.MinRequestInterval = DefaultMinRequestInterval
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PageSize > 100 {
		c.PageSize = 100
	}
	if c.MaxSyncLimit <= 0 {
		c.MaxSyncLimit = DefaultMaxSyncLimit
	}
	if c.PageDelay <= 0 {
		c.PageDelay = DefaultPageDelay
	}
	return c
}

// Client talks to the remote GraphQL service. All exported methods are safe
// for concurrent use; a single rate limiter spaces every outgoing request,
// including token negotiation.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	seen    *seenSet

	csrfMu     chan struct{} // 1-token semaphore; held across token refresh
	cachedCSRF string
	csrfExpiry time.Time
}

// NewClient builds a client from cfg, filling unset fields with defaults.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(cfg.MinRequestInterval), 1),
		seen:    newSeenSet(seenCapacity),
		csrfMu:  make(chan struct{}, 1),
	}
	return c
}

// Reconfigure returns a fresh client for the new settings. The per-session
// dedup set carries over so changing settings does not re-fetch details that
// were already resolved.
func (c *Client) Reconfigure(cfg Config) *Client {
	nc := NewClient(cfg)
	nc.seen = c.seen
	return nc
}

// SeenCount reports how many distinct problems this session has resolved.
func (c *Client) SeenCount() int {
	return c.seen.size()
}

// ResetSeen clears the per-session dedup set so the next fetch resolves
// every problem from the remote again.
func (c *Client) ResetSeen() {
	c.seen.reset()
}

// backoffDelay computes the wait before retry attempt+1. Jitter stays below
// half the base delay so successive delays are strictly increasing.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.cfg.RetryBaseDelay * time.Duration(1<<uint(attempt))
	if half := int64(c.cfg.RetryBaseDelay / 2); half > 0 {
		delay += time.Duration(rand.Int63n(half))
	}
	return delay
}

// doWithRetry runs fn up to MaxRetries+1 times with exponential backoff.
// Non-retryable failures return immediately; a CSRF rejection invalidates
// the cached token so the next attempt negotiates a fresh one. When the
// budget is exhausted the last error is wrapped in a non-retryable summary.
func (c *Client) doWithRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoffDelay(attempt - 1)):
			case <-ctx.Done():
				return classifyTransport(ctx, ctx.Err())
			}
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
		if KindOf(err) == KindCSRF {
			c.invalidateCSRF()
		}
		if attempt < c.cfg.MaxRetries {
			log.Printf("leetcode: %s attempt %d/%d failed, retrying: %v", op, attempt+1, c.cfg.MaxRetries+1, err)
		}
	}
	return &APIError{
		Kind:      KindOf(lastErr),
		Message:   fmt.Sprintf("%s failed after %d attempts", op, c.cfg.MaxRetries+1),
		Retryable: false,
		Err:       lastErr,
	}
}

// call is the retried form of post. Every fetch operation goes through it.
func (c *Client) call(ctx context.Context, op, query string, vars map[string]any, out any) error {
	return c.doWithRetry(ctx, op, func(ctx context.Context) error {
		return c.post(ctx, query, vars, out)
	})
}

// post issues a single GraphQL request: waits for the rate limiter, attaches
// auth cookies and the anti-forgery header, and classifies any failure into
// the error taxonomy. It makes exactly one attempt.
func (c *Client) post(ctx context.Context, query string, vars map[string]any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return classifyTransport(ctx, err)
	}

	token, err := c.csrfToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return &APIError{Kind: KindUnknown, Message: "encode query", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &APIError{Kind: KindUnknown, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.baseURL())
	if c.cfg.Session != "" {
		req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: c.cfg.Session})
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: token})
		req.Header.Set("X-CSRFToken", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return classifyTransport(ctx, err)
	}
	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp.StatusCode, payload)
	}

	// A body that does not parse is treated like a flaky connection: the
	// remote serves HTML error pages under load.
	var envelope graphqlResponse
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return &APIError{Kind: KindNetwork, Message: "malformed response body", Retryable: true, Err: err}
	}
	if len(envelope.Errors) > 0 {
		return classifyGraphQL(envelope.Errors)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &APIError{Kind: KindNetwork, Message: "malformed response data", Retryable: true, Err: err}
		}
	}
	return nil
}

// csrfToken returns the anti-forgery token for the next request: the
// configured one when set, otherwise the cached scraped token, otherwise a
// freshly negotiated one. An empty return with nil error means the remote
// issued no token and the request proceeds without the header.
func (c *Client) csrfToken(ctx context.Context) (string, error) {
	if c.cfg.CSRFToken != "" {
		return c.cfg.CSRFToken, nil
	}

	select {
	case c.csrfMu <- struct{}{}:
	case <-ctx.Done():
		return "", classifyTransport(ctx, ctx.Err())
	}
	defer func() { <-c.csrfMu }()

	if time.Now().Before(c.csrfExpiry) {
		return c.cachedCSRF, nil
	}

	token, err := c.negotiateCSRF(ctx)
	if err != nil {
		return "", err
	}
	c.cachedCSRF = token
	c.csrfExpiry = time.Now().Add(csrfTTL)
	return token, nil
}

// negotiateCSRF requests the site root and reads the csrftoken cookie the
// remote sets on anonymous page loads. Not every deployment issues one, so
// an empty token is a valid outcome.
func (c *Client) negotiateCSRF(ctx context.Context) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", classifyTransport(ctx, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL(), nil)
	if err != nil {
		return "", &APIError{Kind: KindUnknown, Message: "build token request", Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", classifyTransport(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	for _, ck := range resp.Cookies() {
		if ck.Name == "csrftoken" && ck.Value != "" {
			return ck.Value, nil
		}
	}
	return "", nil
}

// invalidateCSRF drops the cached scraped token. A configured token is never
// invalidated.
func (c *Client) invalidateCSRF() {
	c.csrfMu <- struct{}{}
	c.cachedCSRF = ""
	c.csrfExpiry = time.Time{}
	<-c.csrfMu
}

// baseURL derives the site origin from the configured endpoint, for the
// Referer header and token negotiation.
func (c *Client) baseURL() string {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "https://leetcode.com/"
	}
	return u.Scheme + "://" + u.Host + "/"
}
