package ci

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

// Prober fetches the CI status of a repository.
type Prober interface {
	Repo(ctx context.Context, owner, name string) (*RepoStatus, error)
}

// Resolver turns prober answers into CiInfo values.
type Resolver struct {
	prober Prober
}

// NewResolver returns a Resolver backed by p.
func NewResolver(p Prober) *Resolver {
	return &Resolver{prober: p}
}

// Resolve reports whether owner/name has CI build history. Not found is a
// normal answer and resolves to false. Transport failures keep their
// ErrUpstreamUnavailable kind; every other failure is an ErrCIProbeFailed.
func (r *Resolver) Resolve(ctx context.Context, owner, name string) (project.CiInfo, error) {
	status, err := r.prober.Repo(ctx, owner, name)
	switch {
	case errors.Is(err, project.ErrNotFound):
		return project.CiInfo{HasTravis: false}, nil
	case errors.Is(err, project.ErrUpstreamUnavailable), errors.Is(err, project.ErrCIProbeFailed):
		return project.CiInfo{}, err
	case err != nil:
		return project.CiInfo{}, fmt.Errorf("%w: %v", project.ErrCIProbeFailed, err)
	case status == nil:
		return project.CiInfo{}, fmt.Errorf("%w: empty status for %s/%s", project.ErrCIProbeFailed, owner, name)
	}
	return project.CiInfo{HasTravis: status.HasBuilds()}, nil
}
