package output

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/blackwell-systems/healthcheck/internal/ci"
)

//go:embed report.html.tmpl
var reportTemplate string

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"date":       func(e Entry) string { return e.Project.Updated().Format(dateLayout) },
	"score":      func(s float64) string { return fmt.Sprintf("%.0f", s) },
	"travisPage": func(e Entry) string { return ci.BuildPageURL(e.Project.OwnerLogin(), e.Project.Name()) },
	"travisBadge": func(e Entry) string {
		return ci.BadgeURL(e.Project.OwnerLogin(), e.Project.Name())
	},
}).Parse(reportTemplate))

// RenderHTML writes the report as a standalone HTML page, most recently
// updated projects first.
func RenderHTML(w io.Writer, r Report) error {
	entries := make([]Entry, len(r.Entries))
	copy(entries, r.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Project.Updated().After(entries[j].Project.Updated())
	})
	r.Entries = entries

	if err := htmlReport.Execute(w, r); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}
