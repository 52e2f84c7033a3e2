package suggest

import (
	"fmt"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

// MissingLicense suggests adding a license. Without one the code cannot be
// reused, so it ranks critical for anything still maintained.
func MissingLicense(ctx *AnalysisContext) []Suggestion {
	var suggestions []Suggestion
	for _, p := range ctx.Projects {
		if p.HasLicense {
			continue
		}
		priority := PriorityCritical
		if p.Activity == project.ActivityDormant {
			priority = PriorityMedium
		}
		suggestions = append(suggestions, Suggestion{
			Category: CategoryLicensing,
			Priority: priority,
			Project:  p.Name,
			Title:    fmt.Sprintf("Add a LICENSE to %s", p.Name),
			Description: fmt.Sprintf(
				"Project %q has no license file at its root. "+
					"Without one nobody may legally reuse or redistribute the code.",
				p.Name,
			),
			ImpactScore: ComputeImpact(ctx.Weights.License, p.Activity, 5.0),
		})
	}
	return suggestions
}

// MissingReadMe suggests writing a readme for projects without one.
func MissingReadMe(ctx *AnalysisContext) []Suggestion {
	var suggestions []Suggestion
	for _, p := range ctx.Projects {
		if p.HasReadMe {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Category: CategoryDocumentation,
			Priority: PriorityHigh,
			Project:  p.Name,
			Title:    fmt.Sprintf("Write a README for %s", p.Name),
			Description: fmt.Sprintf(
				"Project %q has no README. Describe what it does, how to build it "+
					"and where to report issues.",
				p.Name,
			),
			ImpactScore: ComputeImpact(ctx.Weights.ReadMe, p.Activity, 30.0),
		})
	}
	return suggestions
}

// MalformedMetadata flags metadata files that exist but could not be read.
func MalformedMetadata(ctx *AnalysisContext) []Suggestion {
	var suggestions []Suggestion
	for _, p := range ctx.Projects {
		if !p.HasMetadata || !p.DefaultMetadata {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Category: CategoryMetadata,
			Priority: PriorityHigh,
			Project:  p.Name,
			Title:    fmt.Sprintf("Fix %s in %s", project.MetadataFile, p.Name),
			Description: fmt.Sprintf(
				"Project %q has a %s file that could not be read or does not declare both "+
					"a name and a vendor, so it is reported as unknown/unknown.",
				p.Name, project.MetadataFile,
			),
			ImpactScore: ComputeImpact(ctx.Weights.Metadata/2, p.Activity, 5.0),
		})
	}
	return suggestions
}

// MissingMetadata suggests declaring project metadata.
func MissingMetadata(ctx *AnalysisContext) []Suggestion {
	var suggestions []Suggestion
	for _, p := range ctx.Projects {
		if p.HasMetadata {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Category: CategoryMetadata,
			Priority: PriorityMedium,
			Project:  p.Name,
			Title:    fmt.Sprintf("Add %s to %s", project.MetadataFile, p.Name),
			Description: fmt.Sprintf(
				"Project %q declares no metadata. Add a %s file with \"name:\" and \"vendor:\" keys "+
					"so it is attributed correctly.",
				p.Name, project.MetadataFile,
			),
			ImpactScore: ComputeImpact(ctx.Weights.Metadata, p.Activity, 5.0),
		})
	}
	return suggestions
}

// MissingCI suggests enabling Travis for projects that still change.
func MissingCI(ctx *AnalysisContext) []Suggestion {
	var suggestions []Suggestion
	for _, p := range ctx.Projects {
		if p.HasTravis || p.Activity == project.ActivityDormant {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Category: CategoryCI,
			Priority: PriorityMedium,
			Project:  p.Name,
			Title:    fmt.Sprintf("Enable continuous integration for %s", p.Name),
			Description: fmt.Sprintf(
				"Project %q is %s but has never been built on Travis CI.",
				p.Name, p.Activity,
			),
			ImpactScore: ComputeImpact(ctx.Weights.CI, p.Activity, 20.0),
		})
	}
	return suggestions
}

// DormantWithOpenIssues flags dormant projects that still carry open issues.
func DormantWithOpenIssues(ctx *AnalysisContext) []Suggestion {
	var suggestions []Suggestion
	for _, p := range ctx.Projects {
		if p.Activity != project.ActivityDormant || p.OpenIssues == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Category: CategoryMaintenance,
			Priority: PriorityLow,
			Project:  p.Name,
			Title:    fmt.Sprintf("Triage or archive %s", p.Name),
			Description: fmt.Sprintf(
				"Project %q has not changed in over three months and has %d open issue(s). "+
					"Close what is obsolete or archive the repository.",
				p.Name, p.OpenIssues,
			),
			ImpactScore: 0.1 * float64(p.OpenIssues),
		})
	}
	return suggestions
}

// MetadataAdoption fires once when fewer than half of the projects declare
// usable metadata.
func MetadataAdoption(ctx *AnalysisContext) []Suggestion {
	if len(ctx.Projects) < 2 {
		return nil
	}
	declared := 0
	for _, p := range ctx.Projects {
		if !p.DefaultMetadata {
			declared++
		}
	}
	if declared*2 >= len(ctx.Projects) {
		return nil
	}
	return []Suggestion{{
		Category: CategoryMetadata,
		Priority: PriorityLow,
		Title:    fmt.Sprintf("Roll out %s across %s", project.MetadataFile, ctx.Org),
		Description: fmt.Sprintf(
			"Only %d of %d projects declare metadata. A template %s in new repositories "+
				"keeps vendor reports complete.",
			declared, len(ctx.Projects), project.MetadataFile,
		),
		ImpactScore: ComputeImpact(ctx.Weights.Metadata, project.ActivityActive, 60.0) * float64(len(ctx.Projects)-declared),
	}}
}
