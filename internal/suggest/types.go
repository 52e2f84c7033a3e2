// Package suggest turns a health snapshot into ranked, actionable
// recommendations for the maintainers of an organisation.
package suggest

import (
	"time"

	"github.com/blackwell-systems/healthcheck/internal/config"
	"github.com/blackwell-systems/healthcheck/internal/project"
	"github.com/blackwell-systems/healthcheck/internal/scanner"
)

// Priority levels for suggestions.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
)

// Categories.
const (
	CategoryDocumentation = "documentation"
	CategoryLicensing     = "licensing"
	CategoryMetadata      = "metadata"
	CategoryCI            = "ci"
	CategoryMaintenance   = "maintenance"
)

// Suggestion represents an actionable improvement recommendation. Project is
// empty for organisation-wide suggestions.
type Suggestion struct {
	Category    string  `json:"category"`
	Priority    int     `json:"priority"`
	Project     string  `json:"project,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImpactScore float64 `json:"impact_score"`
}

// AnalysisContext provides all data needed by suggest rules.
type AnalysisContext struct {
	Org      string           `json:"org"`
	Weights  config.Weights   `json:"weights"`
	Projects []ProjectContext `json:"projects"`
}

// ProjectContext is the per-project view the rules read.
type ProjectContext struct {
	Name            string           `json:"name"`
	URL             string           `json:"url"`
	HasReadMe       bool             `json:"has_readme"`
	HasLicense      bool             `json:"has_license"`
	HasMetadata     bool             `json:"has_metadata"`
	DefaultMetadata bool             `json:"default_metadata"`
	HasTravis       bool             `json:"has_travis"`
	OpenIssues      int              `json:"open_issues"`
	Activity        project.Activity `json:"activity"`
	Score           float64          `json:"score"`
}

// NewContext derives the analysis context from assembled projects.
func NewContext(org string, projects []project.Project, w config.Weights, now time.Time) *AnalysisContext {
	ctx := &AnalysisContext{
		Org:      org,
		Weights:  w,
		Projects: make([]ProjectContext, 0, len(projects)),
	}
	for _, p := range projects {
		ind := p.Indicators()
		ctx.Projects = append(ctx.Projects, ProjectContext{
			Name:            p.Name(),
			URL:             p.URL(),
			HasReadMe:       ind.HasReadMe(),
			HasLicense:      ind.HasLicense(),
			HasMetadata:     ind.HasMetadata(),
			DefaultMetadata: p.Metadata().IsDefault(),
			HasTravis:       p.CI().HasTravis,
			OpenIssues:      p.OpenIssues(),
			Activity:        p.Activity(now),
			Score:           scanner.ComputeHealth(p, w, now),
		})
	}
	return ctx
}

// Rule is a function that examines the analysis context and produces
// zero or more suggestions.
type Rule func(ctx *AnalysisContext) []Suggestion
