package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

var reportNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func entry(t *testing.T, name string, age time.Duration, ind project.Indicators, travis bool, score float64) Entry {
	t.Helper()
	b, err := project.NewBuilder(project.Identity{
		Name:       name,
		OwnerLogin: "openplanets",
		URL:        "https://github.com/openplanets/" + name,
		Language:   "Java",
		Updated:    reportNow.Add(-age),
	}, project.WithClock(func() time.Time { return reportNow }))
	require.NoError(t, err)
	b.SetIndicators(ind)
	b.SetCI(project.CiInfo{HasTravis: travis})
	p, err := b.Build()
	require.NoError(t, err)
	return Entry{Project: p, Score: score, Activity: p.Activity(reportNow)}
}

func sampleReport(t *testing.T) Report {
	full := project.Indicators{
		ReadMeURL:   "https://github.com/openplanets/jhove#readme",
		LicenseURL:  "https://github.com/openplanets/jhove/blob/master/LICENSE",
		MetadataURL: "https://github.com/openplanets/jhove/blob/master/.opf.yml",
	}
	return Report{
		User:      "Open Planets Foundation",
		UserURL:   "https://github.com/openplanets",
		Org:       "openplanets",
		RunID:     "2f1c7f0e-7d1b-4a57-9a55-2f7d8d1e9c11",
		Generated: reportNow,
		Entries: []Entry{
			entry(t, "fido", 200*24*time.Hour, project.Indicators{}, false, 0),
			entry(t, "jhove", 24*time.Hour, full, true, 92.5),
		},
	}
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

func TestRenderText(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, sampleReport(t)))
	out := buf.String()

	assert.Contains(t, out, "Project Health: Open Planets Foundation")
	assert.Contains(t, out, "jhove")
	assert.Contains(t, out, "fido")
	assert.Contains(t, out, "2024-05-31")
	assert.Contains(t, out, "dormant")
	assert.Contains(t, out, "Summary")
	assert.Regexp(t, `Mean score\s+46`, out)
	assert.Regexp(t, `Missing readme\s+1`, out)
	assert.Regexp(t, `Without CI\s+1`, out)
	assert.Regexp(t, `Active / stale / dormant\s+1 / 0 / 1`, out)
}

func TestRenderText_Empty(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, Report{User: "nobody"}))
	assert.Contains(t, buf.String(), "No public projects found.")
	assert.NotContains(t, buf.String(), "Summary")
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, sampleReport(t)))

	var got struct {
		User      string           `json:"user"`
		Org       string           `json:"org"`
		Generated time.Time        `json:"generated"`
		RunID     string           `json:"run_id"`
		Projects  []map[string]any `json:"projects"`
		Health    []jsonHealth     `json:"health"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "Open Planets Foundation", got.User)
	assert.Equal(t, "openplanets", got.Org)
	assert.True(t, reportNow.Equal(got.Generated))
	assert.Equal(t, "2f1c7f0e-7d1b-4a57-9a55-2f7d8d1e9c11", got.RunID)

	require.Len(t, got.Projects, 2)
	assert.Equal(t, "fido", got.Projects[0]["name"], "report order is preserved")
	assert.Equal(t, map[string]any{"name": "unknown", "vendor": "unknown"}, got.Projects[0]["metadata"])
	assert.Equal(t, map[string]any{"hasTravis": true}, got.Projects[1]["ci"])

	require.Len(t, got.Health, 2)
	assert.Equal(t, jsonHealth{Name: "jhove", Score: 92.5, Activity: project.ActivityActive}, got.Health[1])
}

// ---------------------------------------------------------------------------
// HTML
// ---------------------------------------------------------------------------

func TestRenderHTML(t *testing.T) {
	r := sampleReport(t)
	r.Entries = append(r.Entries, entry(t, "<script>", 2*24*time.Hour, project.Indicators{}, false, 10))

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, r))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<a href="https://github.com/openplanets">Open Planets Foundation</a>`)
	assert.Contains(t, out, `https://travis-ci.org/openplanets/jhove.png`)
	assert.Contains(t, out, `<tr class="dormant">`)
	assert.NotContains(t, out, "<script>", "names are escaped")

	// Most recently updated first.
	jhove := strings.Index(out, ">jhove<")
	script := strings.Index(out, "&lt;script&gt;")
	fido := strings.Index(out, ">fido<")
	require.True(t, jhove > 0 && script > 0 && fido > 0)
	assert.Less(t, jhove, script)
	assert.Less(t, script, fido)

	// The caller's ordering is left alone.
	assert.Equal(t, "fido", r.Entries[0].Project.Name())
}
