// Package project holds the validated project health record and the rules for
// building it: the metadata document parser, the record builder, and the
// activity classification used by the report.
package project

import (
	"encoding/json"
	"time"
)

// Unknown is the sentinel for absent language and metadata values.
const Unknown = "unknown"

// Indicators records where the governance artifacts of a repository live. An
// empty string means the artifact was not found.
type Indicators struct {
	ReadMeURL   string `json:"readMeUrl"`
	LicenseURL  string `json:"licenseUrl"`
	MetadataURL string `json:"metadataUrl"`
}

// HasReadMe reports whether a readme was found.
func (i Indicators) HasReadMe() bool { return i.ReadMeURL != "" }

// HasLicense reports whether a license file was found.
func (i Indicators) HasLicense() bool { return i.LicenseURL != "" }

// HasMetadata reports whether a metadata declaration file was found.
func (i Indicators) HasMetadata() bool { return i.MetadataURL != "" }

// CiInfo summarises continuous integration for a repository.
type CiInfo struct {
	HasTravis bool `json:"hasTravis"`
}

// Project is a validated, immutable health record for one repository. Values
// are only produced by Builder.Build; the zero value is never handed out.
type Project struct {
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
}

func (p Project) Name() string           { return p.name }
func (p Project) Description() string    { return p.description }
func (p Project) OwnerLogin() string     { return p.ownerLogin }
func (p Project) URL() string            { return p.url }
func (p Project) Language() string       { return p.language }
func (p Project) Updated() time.Time     { return p.updated }
func (p Project) OpenIssues() int        { return p.openIssues }
func (p Project) Metadata() Metadata     { return p.metadata }
func (p Project) Indicators() Indicators { return p.indicators }
func (p Project) CI() CiInfo             { return p.ci }

// projectJSON is the wire shape consumed by the HTML and JSON reports.
type projectJSON struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	OwnerLogin  string     `json:"ownerLogin"`
	URL         string     `json:"url"`
	Language    string     `json:"language"`
	Updated     time.Time  `json:"updated"`
	OpenIssues  int        `json:"openIssues"`
	Metadata    Metadata   `json:"metadata"`
	Indicators  Indicators `json:"indicators"`
	CI          CiInfo     `json:"ci"`
}

// MarshalJSON implements json.Marshaler.
func (p Project) MarshalJSON() ([]byte, error) {
	return json.Marshal(projectJSON{
		Name:        p.name,
		Description: p.description,
		OwnerLogin:  p.ownerLogin,
		URL:         p.url,
		Language:    p.language,
		Updated:     p.updated,
		OpenIssues:  p.openIssues,
		Metadata:    p.metadata,
		Indicators:  p.indicators,
		CI:          p.ci,
	})
}

// Activity buckets a project by how recently it was updated.
type Activity string

const (
	ActivityActive  Activity = "active"
	ActivityStale   Activity = "stale"
	ActivityDormant Activity = "dormant"
)

const (
	activeWindow = 28 * 24 * time.Hour
	staleWindow  = 90 * 24 * time.Hour
)

// Activity classifies the project relative to now: active within four weeks,
// stale within three months, dormant otherwise.
func (p Project) Activity(now time.Time) Activity {
	age := now.Sub(p.updated)
	switch {
	case age <= activeWindow:
		return ActivityActive
	case age <= staleWindow:
		return ActivityStale
	default:
		return ActivityDormant
	}
}
