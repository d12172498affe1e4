package gutendex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	BaseURL   = "https://gutendex.com"
	UserAgent = "BookExplorer/1.0"

	booksPath = "/books/"
)

// ErrFetchFailed covers every way a catalog request can fail: transport
// errors, non-2xx statuses and bodies that cannot be used.
var ErrFetchFailed = errors.New("remote fetch failed")

// Client is a Gutendex catalog API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different catalog host
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the overall HTTP timeout per request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Gutendex client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   BaseURL,
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an HTTP request with proper headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

// BooksURL returns the full request URL for the given query parameters
func (c *Client) BooksURL(params url.Values) string {
	reqURL := c.baseURL + booksPath
	if encoded := params.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}
	return reqURL
}

// ListBooks fetches one page of books. Empty params return the default
// catalog ordering.
func (c *Client) ListBooks(ctx context.Context, params url.Values) (*BooksResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BooksURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrFetchFailed, err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%w: performing request: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrFetchFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result BooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrFetchFailed, err)
	}

	// An empty array decodes to a non-nil slice; absent or null does not.
	if result.Results == nil {
		return nil, fmt.Errorf("%w: response has no results field", ErrFetchFailed)
	}

	return &result, nil
}

// Test checks that the catalog is reachable
func (c *Client) Test(ctx context.Context) error {
	_, err := c.ListBooks(ctx, url.Values{"ids": {"1"}})
	return err
}
