package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

// Entry is one project row of a report.
type Entry struct {
	Project  project.Project
	Score    float64
	Activity project.Activity
}

// Report is everything a renderer needs for one run.
type Report struct {
	User      string
	UserURL   string
	Org       string
	RunID     string
	Generated time.Time
	Entries   []Entry
}

const dateLayout = "2006-01-02"

// RenderText writes the report as a styled table followed by a summary.
func RenderText(w io.Writer, r Report) error {
	if _, err := fmt.Fprintln(w, Section("Project Health: "+r.User)); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if len(r.Entries) == 0 {
		_, err := fmt.Fprintln(w, StyleMuted.Render(" No public projects found."))
		return err
	}

	tbl := NewTable("Project", "Language", "Updated", "Issues", "Readme", "License", "Metadata", "CI", "Activity", "Score")
	for _, e := range r.Entries {
		p := e.Project
		ind := p.Indicators()

		meta := Mark(ind.HasMetadata())
		if ind.HasMetadata() && p.Metadata().IsDefault() {
			meta = StyleWarning.Render("bad")
		}

		tbl.AddRow(
			p.Name(),
			p.Language(),
			p.Updated().Format(dateLayout),
			fmt.Sprintf("%d", p.OpenIssues()),
			Mark(ind.HasReadMe()),
			Mark(ind.HasLicense()),
			meta,
			Mark(p.CI().HasTravis),
			ActivityLabel(e.Activity),
			ScoreBar(e.Score, 10),
		)
	}
	if _, err := tbl.WriteTo(w); err != nil {
		return err
	}
	return renderSummary(w, r.Entries)
}

func renderSummary(w io.Writer, entries []Entry) error {
	var total float64
	var noReadMe, noLicense, noMeta, noCI int
	var active, stale, dormant int
	for _, e := range entries {
		total += e.Score
		ind := e.Project.Indicators()
		if !ind.HasReadMe() {
			noReadMe++
		}
		if !ind.HasLicense() {
			noLicense++
		}
		if !ind.HasMetadata() {
			noMeta++
		}
		if !e.Project.CI().HasTravis {
			noCI++
		}
		switch e.Activity {
		case project.ActivityActive:
			active++
		case project.ActivityStale:
			stale++
		default:
			dormant++
		}
	}

	fmt.Fprintln(w, Section("Summary"))
	fmt.Fprintln(w)

	line := func(label, value string) {
		fmt.Fprintf(w, " %s %s\n", StyleLabel.Render(label), StyleBold.Render(value))
	}
	line("Projects", fmt.Sprintf("%d", len(entries)))
	line("Mean score", fmt.Sprintf("%.0f", total/float64(len(entries))))
	line("Missing readme", fmt.Sprintf("%d", noReadMe))
	line("Missing license", fmt.Sprintf("%d", noLicense))
	line("Missing metadata", fmt.Sprintf("%d", noMeta))
	line("Without CI", fmt.Sprintf("%d", noCI))
	line("Active / stale / dormant", fmt.Sprintf("%d / %d / %d", active, stale, dormant))
	_, err := fmt.Fprintln(w)
	return err
}

type jsonReport struct {
	User      string            `json:"user"`
	Org       string            `json:"org"`
	Generated time.Time         `json:"generated"`
	RunID     string            `json:"run_id"`
	Projects  []project.Project `json:"projects"`
	Health    []jsonHealth      `json:"health"`
}

type jsonHealth struct {
	Name     string           `json:"name"`
	Score    float64          `json:"score"`
	Activity project.Activity `json:"activity"`
}

// RenderJSON writes the report as indented JSON. Projects appear in report
// order; health carries the derived score and activity per project.
func RenderJSON(w io.Writer, r Report) error {
	out := jsonReport{
		User:      r.User,
		Org:       r.Org,
		Generated: r.Generated,
		RunID:     r.RunID,
		Projects:  make([]project.Project, 0, len(r.Entries)),
		Health:    make([]jsonHealth, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		out.Projects = append(out.Projects, e.Project)
		out.Health = append(out.Health, jsonHealth{Name: e.Project.Name(), Score: e.Score, Activity: e.Activity})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
