package project

import (
	"time"
)

// Identity is the snapshot of repository facts a Builder starts from.
type Identity struct {
	Name        string
	Description string
	OwnerLogin  string
	URL         string
	Language    string
	Updated     time.Time
	OpenIssues  int
}

// Builder accumulates the fields of a Project. Every setter validates its
// argument and rejects it with an ErrInvalidArgument FieldError, leaving the
// builder unchanged. Build never re-validates.
type Builder struct {
	name        string
	description string
	ownerLogin  string
	url         string
	language    string
	updated     time.Time
	openIssues  int
	metadata    Metadata
	indicators  Indicators
	ci          CiInfo

	hasIndicators bool
	hasCI         bool

	now func() time.Time
}

// BuilderOption customises a Builder.
type BuilderOption func(*Builder)

// WithClock sets the clock used to reject future update times.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

func newBuilder(opts []BuilderOption) *Builder {
	b := &Builder{
		language: Unknown,
		metadata: DefaultMetadata(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBuilder returns a Builder seeded from id. The first identity field that
// fails validation is returned as the error.
func NewBuilder(id Identity, opts ...BuilderOption) (*Builder, error) {
	b := newBuilder(opts)
	if err := b.SetName(id.Name); err != nil {
		return nil, err
	}
	b.SetDescription(id.Description)
	if err := b.SetOwnerLogin(id.OwnerLogin); err != nil {
		return nil, err
	}
	if err := b.SetURL(id.URL); err != nil {
		return nil, err
	}
	b.SetLanguage(id.Language)
	if err := b.SetUpdated(id.Updated); err != nil {
		return nil, err
	}
	if err := b.SetOpenIssues(id.OpenIssues); err != nil {
		return nil, err
	}
	return b, nil
}

// BuilderFrom returns a Builder carrying the identity fields and metadata of
// p. Indicators and CI are point-in-time measurements and must be supplied
// again before Build.
func BuilderFrom(p Project, opts ...BuilderOption) *Builder {
	b := newBuilder(opts)
	b.name = p.name
	b.description = p.description
	b.ownerLogin = p.ownerLogin
	b.url = p.url
	b.language = p.language
	b.updated = p.updated
	b.openIssues = p.openIssues
	b.metadata = p.metadata
	return b
}

func (b *Builder) SetName(name string) error {
	if name == "" {
		return invalid("name", "empty")
	}
	b.name = name
	return nil
}

// SetDescription accepts any string, including empty.
func (b *Builder) SetDescription(description string) {
	b.description = description
}

func (b *Builder) SetOwnerLogin(login string) error {
	if login == "" {
		return invalid("ownerLogin", "empty")
	}
	b.ownerLogin = login
	return nil
}

func (b *Builder) SetURL(url string) error {
	if url == "" {
		return invalid("url", "empty")
	}
	b.url = url
	return nil
}

// SetLanguage stores language, normalising empty to Unknown.
func (b *Builder) SetLanguage(language string) {
	if language == "" {
		language = Unknown
	}
	b.language = language
}

// SetUpdated rejects the zero time and any time after the builder's clock.
func (b *Builder) SetUpdated(updated time.Time) error {
	if updated.IsZero() {
		return invalid("updated", "not set")
	}
	if updated.After(b.now()) {
		return invalid("updated", "in the future: "+updated.Format(time.RFC3339))
	}
	b.updated = updated
	return nil
}

func (b *Builder) SetOpenIssues(n int) error {
	if n < 0 {
		return invalid("openIssues", "negative")
	}
	b.openIssues = n
	return nil
}

// SetMetadata rejects a zero Metadata; use DefaultMetadata for "none".
func (b *Builder) SetMetadata(m Metadata) error {
	if m.isZero() {
		return invalid("metadata", "not set")
	}
	b.metadata = m
	return nil
}

func (b *Builder) SetIndicators(i Indicators) {
	b.indicators = i
	b.hasIndicators = true
}

func (b *Builder) SetCI(ci CiInfo) {
	b.ci = ci
	b.hasCI = true
}

// Build returns the Project. It fails only when indicators or CI were never
// supplied.
func (b *Builder) Build() (Project, error) {
	if !b.hasIndicators {
		return Project{}, invalid("indicators", "not set")
	}
	if !b.hasCI {
		return Project{}, invalid("ci", "not set")
	}
	return Project{
		name:        b.name,
		description: b.description,
		ownerLogin:  b.ownerLogin,
		url:         b.url,
		language:    b.language,
		updated:     b.updated,
		openIssues:  b.openIssues,
		metadata:    b.metadata,
		indicators:  b.indicators,
		ci:          b.ci,
	}, nil
}
