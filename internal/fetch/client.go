package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mediacat/internal/logging"
)

const (
	DefaultFloorID = 43
	DefaultHits    = 500
)

// StatusError reports a non-200 response.
type StatusError struct {
	Page       int
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch page %d: unexpected status %d", e.Page, e.StatusCode)
}

type seriesResponse struct {
	Result struct {
		Status        any               `json:"status"`
		ResultCount   int               `json:"result_count"`
		TotalCount    any               `json:"total_count"`
		FirstPosition int               `json:"first_position"`
		Series        []json.RawMessage `json:"series"`
	} `json:"result"`
}

// Client pages through the SeriesSearch endpoint.
type Client struct {
	appID       string
	affiliateID string
	baseURL     string
	floorID     int
	hits        int
	httpClient  *http.Client
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger used for page progress and stop reasons.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFloorID overrides the catalog floor.
func WithFloorID(id int) Option {
	return func(c *Client) {
		if id > 0 {
			c.floorID = id
		}
	}
}

// WithHits overrides the page size.
func WithHits(hits int) Option {
	return func(c *Client) {
		if hits > 0 {
			c.hits = hits
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// New creates a series catalog client.
func New(appID, affiliateID, baseURL string, opts ...Option) (*Client, error) {
	appID = strings.TrimSpace(appID)
	affiliateID = strings.TrimSpace(affiliateID)
	if appID == "" || affiliateID == "" {
		return nil, errors.New("app id and affiliate id required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("base url required")
	}
	client := &Client{
		appID:       appID,
		affiliateID: affiliateID,
		baseURL:     baseURL,
		floorID:     DefaultFloorID,
		hits:        DefaultHits,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "fetch")
	return client, nil
}

// Offset returns the 1-based offset for page at the configured page size.
func (c *Client) Offset(page int) int {
	return (page-1)*c.hits + 1
}

func (c *Client) pageURL(page int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("api_id", c.appID)
	q.Set("affiliate_id", c.affiliateID)
	q.Set("floor_id", strconv.Itoa(c.floorID))
	q.Set("output", "json")
	q.Set("hits", strconv.Itoa(c.hits))
	q.Set("offset", strconv.Itoa(c.Offset(page)))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchPage retrieves a single 1-based page.
func (c *Client) FetchPage(ctx context.Context, page int) ([]json.RawMessage, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}
	endpoint, err := c.pageURL(page)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Page: page, StatusCode: resp.StatusCode}
	}

	var payload seriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}
	return payload.Result.Series, nil
}

// FetchAll walks pages from 1 until a stop condition and returns every item
// gathered. Only context cancellation is reported as an error; other stop
// conditions are logged.
func (c *Client) FetchAll(ctx context.Context) ([]json.RawMessage, error) {
	var all []json.RawMessage
	for page := 1; ; page++ {
		c.logger.Info("fetching page", "page", page, "offset", c.Offset(page))
		items, err := c.FetchPage(ctx, page)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return all, ctxErr
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				c.logger.Warn("stopping on error status", "page", page, "status", statusErr.StatusCode)
			} else {
				c.logger.Warn("stopping on request failure", "page", page, logging.Error(err))
			}
			break
		}
		if len(items) == 0 {
			c.logger.Info("no more series found", "page", page)
			break
		}
		all = append(all, items...)
	}
	c.logger.Info("fetch complete", "series", len(all))
	return all, nil
}
