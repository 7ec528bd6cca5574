// Package catalog implements the HTTP client for the remote Shelfmark
// catalog API. It is a thin authenticated request layer: durable state lives
// on the server, and every mutation here returns the server's canonical view
// for the toggle engine to reconcile against.
package catalog

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperr "github.com/shelfmarkapp/shelfmark-client/internal/errors"
	"github.com/shelfmarkapp/shelfmark-client/internal/id"
	"github.com/shelfmarkapp/shelfmark-client/internal/ratelimit"
)

const (
	// Client-side throttle per endpoint group. Generous for a UI client;
	// exists so event-handler storms cannot flood the API.
	defaultRPS   = 10.0
	defaultBurst = 20

	defaultTimeout = 30 * time.Second
)

// TokenSource supplies the bearer credential for authenticated requests.
// The session store implements this.
type TokenSource interface {
	Token() (string, bool)
}

// Client is a rate-limited catalog API client.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  TokenSource
	limiter *ratelimit.KeyedLimiter
	logger  *slog.Logger
}

// Options configures a catalog client.
type Options struct {
	BaseURL string
	Tokens  TokenSource
	Timeout time.Duration
	RPS     float64
	Burst   int
	Logger  *slog.Logger
}

// New creates a catalog client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RPS <= 0 {
		opts.RPS = defaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}

	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		tokens:  opts.Tokens,
		limiter: ratelimit.New(opts.RPS, opts.Burst),
		logger:  opts.Logger,
	}
}

// errorEnvelope is the catalog's error response body.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// rateGroup buckets a request path for client-side throttling.
// Books, reviews and user endpoints each get an independent budget.
func rateGroup(path string) string {
	for _, group := range []string{"/books", "/reviews", "/users"} {
		if strings.HasPrefix(path, group) {
			return group[1:]
		}
	}
	return "other"
}

// do executes a request against the catalog and returns the response body.
// Status codes are mapped to typed errors; callers never see raw statuses.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, authed bool) ([]byte, error) {
	if err := c.limiter.Wait(ctx, rateGroup(path)); err != nil {
		return nil, apperr.Network("rate limit wait").WithCause(err)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id.MustGenerate("req"))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, ok := c.tokens.Token()
		if !ok {
			return nil, apperr.Unauthenticated("no session for authenticated request")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("catalog request",
		slog.String("method", method),
		slog.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		// Context cancellation is the caller's doing, surface it as-is
		// so stale-response discards stay silent.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apperr.Network("catalog request failed").WithCause(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Network("read response").WithCause(err)
	}

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		// Body may not be JSON on proxy errors; the status alone is enough.
		_ = json.Unmarshal(data, &envelope)
		msg := envelope.Message
		if msg == "" {
			msg = envelope.Error
		}
		return nil, apperr.FromStatus(resp.StatusCode, msg)
	}

	return data, nil
}

// get issues an authenticated-optional GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, authed bool, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil, authed)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}
