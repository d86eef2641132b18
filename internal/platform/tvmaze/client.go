// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tvmaze is the [show.Source] adapter for the public TVMaze REST API.

It owns everything about the wire: URLs, headers, JSON field mapping and the
translation of HTTP status codes into the show package's error taxonomy.

Status Mapping:

  - 200: decoded into domain values.
  - 404: [show.ErrPageNotFound] for pages, [show.ErrNotFound] otherwise.
  - 429: [show.ErrOverloaded].
  - Anything else: [*APIError].

An outbound token bucket keeps the client polite. It only delays requests and
never turns them into overloads; TVMaze itself stays the authority on that.
*/
package tvmaze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/showcast/internal/show"
)

// Defaults matching the TVMaze public allowance of 20 calls per 10 seconds.
const (
	DefaultBaseURL   = "https://api.tvmaze.com"
	DefaultUserAgent = "Showcast/1.0"
	DefaultTimeout   = 15 * time.Second
	DefaultRPS       = 2.0
	DefaultBurst     = 20

	// maxErrorBody caps how much of an unexpected response is kept for logs.
	maxErrorBody = 512
)

// Client reads shows and cast members from TVMaze.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at another host (tests, mirrors).
func WithBaseURL(baseURL string) Option {
	return func(client *Client) {
		if baseURL != "" {
			client.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(client *Client) {
		if userAgent != "" {
			client.userAgent = userAgent
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit throttles outbound requests. A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(client *Client) {
		if rps <= 0 {
			client.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		client.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		if httpClient != nil {
			client.httpClient = httpClient
		}
	}
}

// NewClient creates a TVMaze client with the default host, agent and allowance.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRPS), DefaultBurst),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// # show.Source Implementation

// Shows fetches one page of shows (GET /shows?page=N).
func (c *Client) Shows(ctx context.Context, page int) ([]show.Show, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var payload []showResponse
	if err := c.get(ctx, "/shows", params, show.ErrPageNotFound, &payload); err != nil {
		return nil, err
	}

	shows := make([]show.Show, 0, len(payload))
	for _, item := range payload {
		shows = append(shows, item.toShow())
	}
	return shows, nil
}

// Show fetches the details of a single show (GET /shows/{id}).
func (c *Client) Show(ctx context.Context, id int) (*show.Show, error) {
	var payload showResponse
	if err := c.get(ctx, "/shows/"+strconv.Itoa(id), nil, show.ErrNotFound, &payload); err != nil {
		return nil, err
	}

	result := payload.toShow()
	return &result, nil
}

// CastMembers fetches the cast of a show (GET /shows/{id}/cast).
func (c *Client) CastMembers(ctx context.Context, id int) ([]show.CastMember, error) {
	var payload []castResponse
	if err := c.get(ctx, "/shows/"+strconv.Itoa(id)+"/cast", nil, show.ErrNotFound, &payload); err != nil {
		return nil, err
	}

	members := make([]show.CastMember, 0, len(payload))
	for _, item := range payload {
		members = append(members, item.Person.toCastMember())
	}
	return members, nil
}

// # Transport

// get performs one GET and decodes a 200 body into target.
func (c *Client) get(ctx context.Context, path string, params url.Values, notFound error, target any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("tvmaze: rate limiter: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("tvmaze: failed to create request: %w", err)
	}

	request.Header.Set("User-Agent", c.userAgent)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Cache-Control", "no-cache")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("tvmaze: request %s failed: %w", path, err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(response.Body).Decode(target); err != nil {
			return fmt.Errorf("tvmaze: failed to decode %s: %w", path, err)
		}
		return nil
	case http.StatusNotFound:
		return notFound
	case http.StatusTooManyRequests:
		c.logger.Debug("tvmaze_rate_limited", slog.String("path", path))
		return show.ErrOverloaded
	default:
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return &APIError{
			StatusCode: response.StatusCode,
			Path:       path,
			Body:       string(body),
		}
	}
}
