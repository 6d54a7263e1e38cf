// Package indexnow notifies search engines about updated site URLs via
// the IndexNow protocol. It is fire-and-forget: errors should be logged
// as warnings, never treated as fatal. When no key is configured, all
// methods are no-ops.
package indexnow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the circuit breaker is blocking requests.
var ErrCircuitOpen = errors.New("indexnow circuit breaker open")

const (
	defaultTimeout       = 5 * time.Second
	breakerThreshold     = 5
	breakerHalfOpenAge   = 30 * time.Second
	breakerCloseAfter    = 2
	maxURLsPerSubmission = 10000
)

type submission struct {
	Host    string   `json:"host"`
	Key     string   `json:"key"`
	URLList []string `json:"urlList"`
}

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
	circuitHalfOpen
)

type circuitBreaker struct {
	mu                  sync.Mutex
	state               circuitState
	consecutiveFailures int
	lastFailure         time.Time
	successesSinceOpen  int
}

// Config configures the IndexNow client.
type Config struct {
	// Endpoint is the IndexNow API URL.
	Endpoint string
	// Key is the site verification key. Empty disables the client.
	Key string
	// SiteURL is the public base URL of the site; its host is sent with
	// every submission.
	SiteURL string
}

// Client submits URL batches to the IndexNow API.
type Client struct {
	endpoint   string
	key        string
	host       string
	httpClient *http.Client
	breaker    *circuitBreaker
}

// NewClient creates an IndexNow client. If cfg.Key is empty, all methods
// are no-ops.
func NewClient(cfg Config) *Client {
	host := ""
	if parsed, err := url.Parse(cfg.SiteURL); err == nil {
		host = parsed.Host
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		key:        cfg.Key,
		host:       host,
		httpClient: &http.Client{Timeout: defaultTimeout},
		breaker:    &circuitBreaker{},
	}
}

// IsEnabled returns true if the client is configured with a key.
func (c *Client) IsEnabled() bool {
	return c.key != ""
}

// CircuitOpen returns true if the circuit breaker is open.
func (c *Client) CircuitOpen() bool {
	c.breaker.mu.Lock()
	defer c.breaker.mu.Unlock()

	return c.breaker.state == circuitOpen
}

// Submit sends a batch of URLs in a single request. Oversized batches
// are truncated to the protocol limit.
func (c *Client) Submit(ctx context.Context, urls []string) error {
	if !c.IsEnabled() || len(urls) == 0 {
		return nil
	}

	if !c.breakerAllow() {
		return ErrCircuitOpen
	}

	if len(urls) > maxURLsPerSubmission {
		urls = urls[:maxURLsPerSubmission]
	}

	body, marshalErr := json.Marshal(submission{
		Host:    c.host,
		Key:     c.key,
		URLList: urls,
	})
	if marshalErr != nil {
		return fmt.Errorf("marshal submission: %w", marshalErr)
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if reqErr != nil {
		c.breakerRecordFailure()

		return fmt.Errorf("create request: %w", reqErr)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		c.breakerRecordFailure()

		return fmt.Errorf("send request: %w", doErr)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		c.breakerRecordFailure()

		return fmt.Errorf("indexnow error: status %d", resp.StatusCode)
	}

	c.breakerRecordSuccess()

	return nil
}

func (c *Client) breakerAllow() bool {
	c.breaker.mu.Lock()
	defer c.breaker.mu.Unlock()

	switch c.breaker.state {
	case circuitClosed:
		return true
	case circuitOpen:
		if time.Since(c.breaker.lastFailure) > breakerHalfOpenAge {
			c.breaker.state = circuitHalfOpen
			c.breaker.successesSinceOpen = 0

			return true
		}

		return false
	case circuitHalfOpen:
		return true
	}

	return true
}

func (c *Client) breakerRecordFailure() {
	c.breaker.mu.Lock()
	defer c.breaker.mu.Unlock()

	c.breaker.consecutiveFailures++
	c.breaker.lastFailure = time.Now()
	c.breaker.successesSinceOpen = 0

	if c.breaker.consecutiveFailures >= breakerThreshold {
		c.breaker.state = circuitOpen
	}
}

func (c *Client) breakerRecordSuccess() {
	c.breaker.mu.Lock()
	defer c.breaker.mu.Unlock()

	if c.breaker.state == circuitHalfOpen {
		c.breaker.successesSinceOpen++

		if c.breaker.successesSinceOpen >= breakerCloseAfter {
			c.breaker.state = circuitClosed
			c.breaker.consecutiveFailures = 0
		}
	} else {
		c.breaker.consecutiveFailures = 0
	}
}
