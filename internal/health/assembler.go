// Package health assembles the health snapshot of an organisation: one
// validated project record per public repository, in the order the hosting
// API lists them.
package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/healthcheck/internal/github"
	"github.com/blackwell-systems/healthcheck/internal/project"
	"github.com/blackwell-systems/healthcheck/internal/scanner"
)

// RepositoryLister enumerates the repositories of an organisation or user.
type RepositoryLister interface {
	Repositories(ctx context.Context, login string) ([]github.Repository, error)
}

// TreeLister lists the files at the tip of a repository branch.
type TreeLister interface {
	Tree(ctx context.Context, owner, repo, ref string) ([]github.TreeEntry, error)
}

// ContentFetcher returns the bytes of one file, or an error wrapping
// project.ErrNotFound.
type ContentFetcher interface {
	Contents(ctx context.Context, owner, repo, path string) ([]byte, error)
}

// Source bundles the hosting API lookups.
type Source interface {
	RepositoryLister
	TreeLister
	ContentFetcher
}

// CIResolver reports the CI status of a repository.
type CIResolver interface {
	Resolve(ctx context.Context, owner, repo string) (project.CiInfo, error)
}

// Snapshot is the result of one assembly run.
type Snapshot struct {
	RunID     string
	Org       string
	Generated time.Time
	Projects  []project.Project
}

// Assembler drives the per-repository lookups and builds the records.
type Assembler struct {
	source     Source
	ci         CIResolver
	concurrent bool
	log        zerolog.Logger
	now        func() time.Time
}

// Option customises an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Assembler) { a.log = l }
}

// WithConcurrency runs the CI probe of each repository alongside its tree and
// metadata lookups. Repositories are still processed one at a time.
func WithConcurrency(enabled bool) Option {
	return func(a *Assembler) { a.concurrent = enabled }
}

// WithClock sets the clock used for the snapshot time and record validation.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// New returns an Assembler reading from source and ci.
func New(source Source, ci CIResolver, opts ...Option) *Assembler {
	a := &Assembler{
		source: source,
		ci:     ci,
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run assembles a fresh snapshot for org.
func (a *Assembler) Run(ctx context.Context, org string) (*Snapshot, error) {
	runID := uuid.NewString()
	log := a.log.With().Str("run_id", runID).Str("org", org).Logger()

	start := a.now()
	projects, err := a.assemble(ctx, org, log)
	if err != nil {
		return nil, err
	}
	log.Info().Int("projects", len(projects)).Dur("elapsed", a.now().Sub(start)).Msg("health check complete")

	return &Snapshot{
		RunID:     runID,
		Org:       org,
		Generated: start,
		Projects:  projects,
	}, nil
}

// Assemble returns one project per public repository of org, in listing
// order. Metadata that is missing, unreadable or malformed falls back to the
// default; a failure of any other lookup aborts the run.
func (a *Assembler) Assemble(ctx context.Context, org string) ([]project.Project, error) {
	return a.assemble(ctx, org, a.log)
}

func (a *Assembler) assemble(ctx context.Context, org string, log zerolog.Logger) ([]project.Project, error) {
	repos, err := a.source.Repositories(ctx, org)
	if err != nil {
		return nil, err
	}

	projects := make([]project.Project, 0, len(repos))
	for _, repo := range repos {
		if repo.Private {
			log.Debug().Str("repo", repo.Name).Msg("skipping private repository")
			continue
		}
		log.Debug().Str("repo", repo.Name).Msg("checking repository")

		p, err := a.check(ctx, repo, log)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", repo.FullNameOrName(), err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// check runs the lookups for one repository and builds its record.
func (a *Assembler) check(ctx context.Context, repo github.Repository, log zerolog.Logger) (project.Project, error) {
	b, err := project.NewBuilder(identity(repo), project.WithClock(a.now))
	if err != nil {
		return project.Project{}, err
	}

	var (
		indicators project.Indicators
		metadata   project.Metadata
		ciInfo     project.CiInfo
	)

	// The metadata fetch needs the path as the tree spells it, so it follows
	// the tree lookup; CI runs alongside both.
	lookups := []func(context.Context) error{
		func(ctx context.Context) error {
			entries, err := a.source.Tree(ctx, repo.Owner.Login, repo.Name, repo.DefaultBranch)
			if err != nil {
				return err
			}
			paths := github.BlobPaths(entries)
			indicators = scanner.Scan(paths, repo.HTMLURL)
			metadata, err = a.metadata(ctx, repo, scanner.MetadataPath(paths), log)
			return err
		},
		func(ctx context.Context) (err error) {
			ciInfo, err = a.ci.Resolve(ctx, repo.Owner.Login, repo.Name)
			return err
		},
	}

	if a.concurrent {
		g, gctx := errgroup.WithContext(ctx)
		for _, lookup := range lookups {
			lookup := lookup
			g.Go(func() error { return lookup(gctx) })
		}
		if err := g.Wait(); err != nil {
			return project.Project{}, err
		}
	} else {
		for _, lookup := range lookups {
			if err := lookup(ctx); err != nil {
				return project.Project{}, err
			}
		}
	}

	if err := b.SetMetadata(metadata); err != nil {
		return project.Project{}, err
	}
	b.SetIndicators(indicators)
	b.SetCI(ciInfo)
	return b.Build()
}

// metadata fetches and parses the declaration at path. Every failure to
// fetch or parse it resolves to the default; only cancellation of ctx is
// returned.
func (a *Assembler) metadata(ctx context.Context, repo github.Repository, path string, log zerolog.Logger) (project.Metadata, error) {
	if path == "" {
		return project.DefaultMetadata(), nil
	}

	raw, err := a.source.Contents(ctx, repo.Owner.Login, repo.Name, path)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return project.Metadata{}, ctx.Err()
	case errors.Is(err, project.ErrNotFound):
		return project.DefaultMetadata(), nil
	default:
		log.Warn().Err(err).Str("repo", repo.Name).Str("path", path).Msg("unreadable metadata, using default")
		return project.DefaultMetadata(), nil
	}

	m, err := project.ParseMetadata(string(raw))
	if err != nil {
		log.Warn().Err(err).Str("repo", repo.Name).Str("path", path).Msg("invalid metadata, using default")
		return project.DefaultMetadata(), nil
	}
	return m, nil
}

func identity(repo github.Repository) project.Identity {
	return project.Identity{
		Name:        repo.Name,
		Description: repo.Description,
		OwnerLogin:  repo.Owner.Login,
		URL:         repo.HTMLURL,
		Language:    repo.Language,
		Updated:     repo.UpdatedAt,
		OpenIssues:  repo.OpenIssues,
	}
}
