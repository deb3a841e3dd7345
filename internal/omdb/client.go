// Package omdb is a small client for the OMDb search and title endpoints.
package omdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"moviescroll/internal/domain"
)

const (
	// DefaultBaseURL is the public OMDb endpoint
	DefaultBaseURL = "https://www.omdbapi.com/"

	defaultTimeout = 10 * time.Second

	// Transport configuration constants
	maxIdleConns        = 10
	maxIdleConnsPerHost = 10
	idleConnTimeout     = 30 * time.Second

	// cap on error bodies read for diagnostics
	maxErrorBody = 512
)

// StatusError is returned when the API answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("omdb: unexpected status %d", e.StatusCode)
}

// APIError is a negative result reported by the API in a 200 response
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "omdb: " + e.Message
}

// Client talks to the OMDb HTTP API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another endpoint (tests, mirrors)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed to WithHTTPClient
// is copied first and left untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout <= 0 {
			return
		}
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// NewClient creates a client authenticating with apiKey
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        maxIdleConns,
				MaxIdleConnsPerHost: maxIdleConnsPerHost,
				IdleConnTimeout:     idleConnTimeout,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a free-text title search and returns one page of summaries.
// A negative result is not an error: it comes back with Found == false.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.SearchPage, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, errors.Wrapf(err, "search %q page %d", query, page)
	}
	return resp.toDomain(), nil
}

// Detail fetches the full record for one title id
func (c *Client) Detail(ctx context.Context, id string) (*domain.ResultDetail, error) {
	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "full")

	var resp detailResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, errors.Wrapf(err, "detail %s", id)
	}
	if !isTrue(resp.Response) {
		msg := resp.Error
		if msg == "" {
			msg = "title not found"
		}
		return nil, errors.Wrapf(&APIError{Message: msg}, "detail %s", id)
	}
	return resp.toDomain(), nil
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return errors.Wrap(err, "invalid base url")
	}
	params.Set("apikey", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.WithStack(&StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
