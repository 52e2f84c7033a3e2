package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

// User fetches the account identified by login.
func (c *Client) User(ctx context.Context, login string) (User, error) {
	var u User
	if _, err := c.get(ctx, "/users/"+url.PathEscape(login), &u); err != nil {
		return User{}, fmt.Errorf("fetching user %s: %w", login, err)
	}
	return u, nil
}

// Repositories lists every repository of login in API order, following
// pagination. login is tried as an organisation first and as a user when the
// organisation does not exist.
func (c *Client) Repositories(ctx context.Context, login string) ([]Repository, error) {
	escaped := url.PathEscape(login)
	query := fmt.Sprintf("?per_page=%d", perPage)

	repos, err := c.listRepositories(ctx, "/orgs/"+escaped+"/repos"+query)
	if errors.Is(err, project.ErrNotFound) {
		repos, err = c.listRepositories(ctx, "/users/"+escaped+"/repos"+query+"&type=owner")
	}
	if err != nil {
		return nil, fmt.Errorf("listing repositories of %s: %w", login, err)
	}
	return repos, nil
}

func (c *Client) listRepositories(ctx context.Context, endpoint string) ([]Repository, error) {
	var all []Repository
	for endpoint != "" {
		var page []Repository
		header, err := c.get(ctx, endpoint, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		endpoint = nextLink(header.Get("Link"))
	}
	return all, nil
}

// nextLink extracts the rel="next" target from an RFC 8288 Link header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range segments[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}

// Tree lists the top-level entries of owner/repo at ref. An empty repository
// has no tree and yields an empty listing.
func (c *Client) Tree(ctx context.Context, owner, repo, ref string) ([]TreeEntry, error) {
	if ref == "" {
		ref = "HEAD"
	}
	endpoint := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/git/trees/" + url.PathEscape(ref)

	var tree treeResponse
	if _, err := c.get(ctx, endpoint, &tree); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusConflict {
			return nil, nil
		}
		return nil, fmt.Errorf("listing tree of %s/%s: %w", owner, repo, err)
	}
	return tree.Tree, nil
}

// Contents returns the decoded content of path in owner/repo on the default
// branch, or an error wrapping project.ErrNotFound when there is no such file.
func (c *Client) Contents(ctx context.Context, owner, repo, path string) ([]byte, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	endpoint := "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/contents/" + strings.Join(segments, "/")

	var content contentResponse
	if _, err := c.get(ctx, endpoint, &content); err != nil {
		return nil, fmt.Errorf("fetching %s from %s/%s: %w", path, owner, repo, err)
	}
	if content.Type != "" && content.Type != "file" {
		return nil, fmt.Errorf("%s in %s/%s is a %s: %w", path, owner, repo, content.Type, project.ErrNotFound)
	}
	if content.Encoding != "base64" {
		return nil, fmt.Errorf("%s in %s/%s: unsupported content encoding %q", path, owner, repo, content.Encoding)
	}

	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(content.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decoding %s from %s/%s: %w", path, owner, repo, err)
	}
	return data, nil
}
