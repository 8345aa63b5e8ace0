// Package sink mirrors submitted series to the spreadsheet webhook.
//
// The webhook is fire-and-forget: the response is opaque by design, so only
// transport-level failures count as errors. Non-2xx statuses are ignored.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/swish/pkg/logger"
	"github.com/okian/swish/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout    = 5 * time.Second
	defaultRatePerSec = 5
	defaultSendBurst  = 1
	drainLimit        = 4 << 10 // webhook responses carry nothing useful; drain a little and move on
	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"
)

// payload mirrors the webhook's expected JSON body.
type payload struct {
	MadeShots    int    `json:"madeShots"`
	Observations string `json:"observations"`
}

// Client posts series records to the configured webhook.
type Client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Client) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithTimeout bounds a single webhook POST.
func WithTimeout(d time.Duration) Option {
	return func(s *Client) {
		if d > 0 {
			s.httpClient.Timeout = d
		}
	}
}

// WithRate throttles webhook sends per second.
func WithRate(perSec float64) Option {
	return func(s *Client) {
		if perSec > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSec), defaultSendBurst)
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(s *Client) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a webhook client. An empty url yields a disabled client whose
// Send is a no-op; submissions then succeed on the store write alone.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultSendBurst),
		logger:     logger.Get().Named("sink"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether a webhook endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// Send posts one series to the webhook. The response status and body are
// never inspected; only transport failures are reported, wrapped in
// ErrTransport.
func (c *Client) Send(ctx context.Context, madeShots int, observations string) error {
	if !c.Enabled() {
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	body, err := json.Marshal(payload{MadeShots: madeShots, Observations: observations})
	if err != nil {
		return fmt.Errorf("failed to encode sink payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create sink request: %w", err)
	}
	req.Header.Set(contentTypeHeader, contentTypeJSON)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordSinkTransportError()
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))

	metrics.RecordSinkSend()
	metrics.RecordSinkSendLatency(float64(time.Since(start).Milliseconds()))

	c.logger.Debug(ctx, "mirrored series to sink",
		logger.Int("madeShots", madeShots),
		logger.Int("status", resp.StatusCode),
	)
	return nil
}
