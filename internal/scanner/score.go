package scanner

import (
	"time"

	"github.com/blackwell-systems/healthcheck/internal/config"
	"github.com/blackwell-systems/healthcheck/internal/project"
)

// ComputeHealth calculates a 0-100 health score for a project.
//
// Scoring breakdown with the default weights:
//   - Readme present:     25 points
//   - License present:    25 points
//   - Metadata:           15 points (half when the file exists but could not
//     be parsed and the project fell back to default metadata)
//   - CI build history:   20 points
//   - Activity:           15 points when active, half when stale
//
// The result is normalised so that weights need not sum to 100.
func ComputeHealth(p project.Project, w config.Weights, now time.Time) float64 {
	total := w.ReadMe + w.License + w.Metadata + w.CI + w.Activity
	if total <= 0 {
		return 0
	}

	score := 0.0
	ind := p.Indicators()

	if ind.HasReadMe() {
		score += w.ReadMe
	}
	if ind.HasLicense() {
		score += w.License
	}

	// A declared metadata file that parsed earns full credit.
	if ind.HasMetadata() {
		if p.Metadata().IsDefault() {
			score += w.Metadata / 2
		} else {
			score += w.Metadata
		}
	}

	if p.CI().HasTravis {
		score += w.CI
	}

	switch p.Activity(now) {
	case project.ActivityActive:
		score += w.Activity
	case project.ActivityStale:
		score += w.Activity / 2
	}

	return score * 100 / total
}
