// Package gateway fetches posts from the remote content API, scoped to
// one tenant. It owns input validation, the request timeout, and the
// shaping of raw CMS records into the canonical Post type.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/metadata"
	"github.com/pukadigital/content-hub/internal/models"
)

const (
	defaultTimeout        = 8 * time.Second
	maxIdleConns          = 100
	maxIdleConnsPerHost   = 10
	idleConnTimeout       = 90 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 8 * time.Second
)

// StatusError reports a non-2xx response from the content API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("content api returned status %d", e.StatusCode)
}

// Config configures the gateway client.
type Config struct {
	// BaseURL is the content API endpoint; selection (tenant, limit,
	// slug) is passed as query parameters.
	BaseURL string
	// Timeout bounds each request. A timeout is treated the same as a
	// network error by callers deciding whether to fall back.
	Timeout time.Duration
}

// Client is the HTTP client for the remote content API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient creates a gateway client with a tuned transport.
func NewClient(cfg Config, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:          maxIdleConns,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ResponseHeaderTimeout: responseHeaderTimeout,
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}
}

// postRecord is the raw shape the content API returns. Optional fields
// vary by provenance; shaping into models.Post happens here, not in
// downstream consumers.
type postRecord struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	CoverImage string `json:"coverImage"`
	Category   string `json:"category"`
	CreatedAt  string `json:"createdAt"`
}

func (r postRecord) toPost() models.Post {
	post := models.Post{
		ID:         r.ID,
		Slug:       r.Slug,
		Title:      r.Title,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Category:   r.Category,
		Date:       r.CreatedAt,
	}
	// Remote content is often HTML; derive a plain-text excerpt before
	// Normalize falls back to raw truncation.
	if post.Excerpt == "" && post.Content != "" {
		post.Excerpt = metadata.Excerpt(post.Content, metadata.DefaultExcerptLength)
	}
	post.Normalize()
	return post
}

// FetchPosts retrieves up to limit posts for the tenant. Empty tenant or
// negative limit short-circuits with ErrInvalidArgument before any
// network call.
func (c *Client) FetchPosts(ctx context.Context, tenant string, limit int) ([]models.Post, error) {
	if tenant == "" {
		return nil, fmt.Errorf("%w: tenant is required", models.ErrInvalidArgument)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", models.ErrInvalidArgument)
	}

	query := url.Values{}
	query.Set("tenant", tenant)
	query.Set("limit", fmt.Sprintf("%d", limit))

	body, err := c.doGet(ctx, query)
	if err != nil {
		return nil, err
	}

	var records []postRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("malformed content api response: %w", err)
	}

	posts := make([]models.Post, 0, len(records))
	for _, record := range records {
		if record.Slug == "" {
			c.log.Warn("Skipping remote post without slug",
				logger.String("tenant", tenant),
				logger.String("post_id", record.ID),
			)
			continue
		}
		posts = append(posts, record.toPost())
	}

	return posts, nil
}

// FetchPostBySlug retrieves a single post. A remote not-found status maps
// to models.ErrNotFound so callers can distinguish absence from outage.
func (c *Client) FetchPostBySlug(ctx context.Context, tenant, slug string) (models.Post, error) {
	if tenant == "" {
		return models.Post{}, fmt.Errorf("%w: tenant is required", models.ErrInvalidArgument)
	}
	if slug == "" {
		return models.Post{}, fmt.Errorf("%w: slug is required", models.ErrInvalidArgument)
	}

	query := url.Values{}
	query.Set("tenant", tenant)
	query.Set("slug", slug)

	body, err := c.doGet(ctx, query)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return models.Post{}, fmt.Errorf("%w: %s", models.ErrNotFound, slug)
		}
		return models.Post{}, err
	}

	var record postRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return models.Post{}, fmt.Errorf("malformed content api response: %w", err)
	}
	if record.Slug == "" {
		return models.Post{}, fmt.Errorf("remote post %q has no slug", record.ID)
	}

	return record.toPost(), nil
}

func (c *Client) doGet(ctx context.Context, query url.Values) ([]byte, error) {
	requestURL := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content api request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read content api response: %w", err)
	}
	return body, nil
}

// maxResponseBytes caps response reads; the content API serves bounded
// post lists, anything larger is misbehavior.
const maxResponseBytes = 4 << 20

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
}

// FailureReason classifies a gateway error for metrics labels.
func FailureReason(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return "timeout"
	case errors.Is(err, models.ErrInvalidArgument):
		return "invalid_argument"
	default:
		var jsonErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &jsonErr) || errors.As(err, &typeErr) {
			return "decode"
		}
		return "network"
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
