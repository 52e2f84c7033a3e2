// Package github is a small read-only client for the GitHub REST API covering
// the lookups a health check needs: users, repository listings, trees and
// file contents.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

const (
	acceptHeader  = "application/vnd.github+json"
	apiVersion    = "2022-11-28"
	perPage       = 100
	maxErrorBody  = 512
	defaultAPIURL = "https://api.github.com"
)

// Options configures a Client. Token takes precedence over User/Password.
type Options struct {
	BaseURL  string
	Token    string
	User     string
	Password string
	Timeout  time.Duration

	// HTTPClient replaces the transport, mainly for tests. Token auth is
	// layered on top of it.
	HTTPClient *http.Client
}

// Client performs authenticated GET requests against the GitHub API.
type Client struct {
	baseURL  string
	http     *http.Client
	user     string
	password string
}

// NewClient returns a Client configured from opts.
func NewClient(opts Options) *Client {
	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{}
	}

	hc := base
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
	}
	if opts.Timeout > 0 {
		withTimeout := *hc
		withTimeout.Timeout = opts.Timeout
		hc = &withTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
	}
	if c.baseURL == "" {
		c.baseURL = defaultAPIURL
	}
	if opts.Token == "" {
		c.user = opts.User
		c.password = opts.Password
	}
	return c
}

// get fetches endpoint (absolute, or relative to the base URL) and decodes
// the JSON body into v. It returns the response headers for pagination.
func (c *Client) get(ctx context.Context, endpoint string, v any) (http.Header, error) {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = c.baseURL + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", project.ErrUpstreamUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.Header, statusError(endpoint, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return resp.Header, nil
}

// StatusError is a non-200 answer from the API.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Unwrap maps 404 to project.ErrNotFound and every other status to
// project.ErrUpstreamUnavailable.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return project.ErrNotFound
	}
	return project.ErrUpstreamUnavailable
}

func statusError(endpoint string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}
	return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: msg}
}
