// Package ci probes the Travis CI API and reduces its answer to a CiInfo.
package ci

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

// maxBody caps how much of an error response is quoted back.
const maxBody = 512

// RepoStatus is the subset of the Travis repository resource we read. Build
// fields are pointers because Travis reports null for never-built repos.
type RepoStatus struct {
	ID                int64   `json:"id"`
	Slug              string  `json:"slug"`
	LastBuildID       *int64  `json:"last_build_id"`
	LastBuildNumber   *string `json:"last_build_number"`
	LastBuildStatus   *int    `json:"last_build_status"`
	LastBuildDuration *int    `json:"last_build_duration"`
}

// HasBuilds reports whether Travis has any build recorded.
func (s RepoStatus) HasBuilds() bool {
	return s.LastBuildID != nil && *s.LastBuildID != 0
}

// TravisClient talks to the Travis CI REST API.
type TravisClient struct {
	baseURL string
	http    *http.Client
}

// NewTravisClient returns a client rooted at baseURL. The http client owns the
// request timeout.
func NewTravisClient(baseURL string, httpClient *http.Client) *TravisClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TravisClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Repo fetches the status of owner/name. A 404 yields project.ErrNotFound,
// other non-200 answers and undecodable bodies yield project.ErrCIProbeFailed,
// and transport failures yield project.ErrUpstreamUnavailable.
func (c *TravisClient) Repo(ctx context.Context, owner, name string) (*RepoStatus, error) {
	endpoint := c.baseURL + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: travis %s/%s: %v", project.ErrUpstreamUnavailable, owner, name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("travis %s/%s: %w", owner, name, project.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		return nil, fmt.Errorf("%w: travis %s/%s returned status %d: %s",
			project.ErrCIProbeFailed, owner, name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var status RepoStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: decoding travis %s/%s: %v", project.ErrCIProbeFailed, owner, name, err)
	}
	return &status, nil
}

// BuildPageURL returns the Travis web page for owner/name.
func BuildPageURL(owner, name string) string {
	return "https://travis-ci.org/" + owner + "/" + name
}

// BadgeURL returns the Travis build status image for owner/name.
func BadgeURL(owner, name string) string {
	return BuildPageURL(owner, name) + ".png"
}
