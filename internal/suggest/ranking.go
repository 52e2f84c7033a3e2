package suggest

import (
	"sort"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

// RankSuggestions sorts suggestions by ImpactScore in descending order. Ties
// go to the more urgent priority, then keep rule order.
func RankSuggestions(suggestions []Suggestion) []Suggestion {
	sorted := make([]Suggestion, len(suggestions))
	copy(sorted, suggestions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ImpactScore != sorted[j].ImpactScore {
			return sorted[i].ImpactScore > sorted[j].ImpactScore
		}
		return sorted[i].Priority < sorted[j].Priority
	})
	return sorted
}

// ComputeImpact calculates an impact score for a suggestion.
// Formula: (weight * activityFactor) / effort
//
// Parameters:
//   - weight: health score points the fix would earn
//   - activity: how recently the project changed; active projects count
//     fully, stale ones at 0.6 and dormant ones at 0.2
//   - effort: estimated minutes of effort to implement the suggestion
//
// Returns 0 if effort is zero to avoid division by zero.
func ComputeImpact(weight float64, activity project.Activity, effort float64) float64 {
	if effort <= 0 {
		return 0
	}
	return weight * activityFactor(activity) / effort
}

func activityFactor(a project.Activity) float64 {
	switch a {
	case project.ActivityActive:
		return 1.0
	case project.ActivityStale:
		return 0.6
	default:
		return 0.2
	}
}
