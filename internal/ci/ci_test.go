package ci

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

// travisServer answers /repos/openplanets/<name> with the given status and
// body for each name.
func travisServer(t *testing.T, routes map[string]struct {
	status int
	body   string
}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want application/json", got)
		}
		route, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(route.status)
		_, _ = w.Write([]byte(route.body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newResolver(t *testing.T) *Resolver {
	srv := travisServer(t, map[string]struct {
		status int
		body   string
	}{
		"/repos/openplanets/built":     {http.StatusOK, `{"id": 1, "slug": "openplanets/built", "last_build_id": 1234}`},
		"/repos/openplanets/neverrun":  {http.StatusOK, `{"id": 2, "slug": "openplanets/neverrun", "last_build_id": null}`},
		"/repos/openplanets/zero":      {http.StatusOK, `{"id": 3, "last_build_id": 0}`},
		"/repos/openplanets/nofield":   {http.StatusOK, `{"id": 4}`},
		"/repos/openplanets/garbage":   {http.StatusOK, `<html>oops</html>`},
		"/repos/openplanets/wrongtype": {http.StatusOK, `{"last_build_id": "abc"}`},
		"/repos/openplanets/broken":    {http.StatusInternalServerError, `upstream exploded`},
	})
	return NewResolver(NewTravisClient(srv.URL+"/", srv.Client()))
}

func TestResolve(t *testing.T) {
	r := newResolver(t)

	tests := []struct {
		repo    string
		want    bool
		wantErr error
	}{
		{"missing", false, nil},
		{"built", true, nil},
		{"neverrun", false, nil},
		{"zero", false, nil},
		{"nofield", false, nil},
		{"garbage", false, project.ErrCIProbeFailed},
		{"wrongtype", false, project.ErrCIProbeFailed},
		{"broken", false, project.ErrCIProbeFailed},
	}

	for _, tc := range tests {
		t.Run(tc.repo, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), "openplanets", tc.repo)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.HasTravis)
		})
	}
}

func TestResolve_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	r := NewResolver(NewTravisClient(url, nil))
	_, err := r.Resolve(context.Background(), "openplanets", "jhove")
	assert.ErrorIs(t, err, project.ErrUpstreamUnavailable)
	assert.NotErrorIs(t, err, project.ErrCIProbeFailed)
}

type stubProber struct {
	status *RepoStatus
	err    error
}

func (s stubProber) Repo(context.Context, string, string) (*RepoStatus, error) {
	return s.status, s.err
}

func TestResolve_UnexpectedProberErrors(t *testing.T) {
	_, err := NewResolver(stubProber{err: errors.New("boom")}).Resolve(context.Background(), "o", "r")
	assert.ErrorIs(t, err, project.ErrCIProbeFailed)

	_, err = NewResolver(stubProber{}).Resolve(context.Background(), "o", "r")
	assert.ErrorIs(t, err, project.ErrCIProbeFailed, "nil status without error")
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://travis-ci.org/openplanets/jhove", BuildPageURL("openplanets", "jhove"))
	assert.Equal(t, "https://travis-ci.org/openplanets/jhove.png", BadgeURL("openplanets", "jhove"))
}
