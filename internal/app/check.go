package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/healthcheck/internal/ci"
	"github.com/blackwell-systems/healthcheck/internal/config"
	"github.com/blackwell-systems/healthcheck/internal/github"
	"github.com/blackwell-systems/healthcheck/internal/health"
	"github.com/blackwell-systems/healthcheck/internal/logging"
	"github.com/blackwell-systems/healthcheck/internal/output"
	"github.com/blackwell-systems/healthcheck/internal/project"
	"github.com/blackwell-systems/healthcheck/internal/scanner"
)

var (
	checkFlagOrg    string
	checkFlagHTML   bool
	checkFlagFile   string
	checkFlagVendor string
	checkFlagSort   string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the health of every public repository",
	Long: `Check lists the public repositories of the organisation, inspects each
for a readme, a license and a .opf.yml metadata file, asks Travis CI whether
it has builds, and renders the result as a table, JSON or an HTML page.

Private repositories are skipped. A missing, unreadable or malformed metadata
file falls back to unknown/unknown; any other failure aborts the report.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFlagOrg, "org", "", "Organisation or user to check (default from config)")
	checkCmd.Flags().BoolVar(&checkFlagHTML, "html", false, "Output as a standalone HTML page")
	checkCmd.Flags().StringVar(&checkFlagFile, "file", "", "Write the report to this file instead of stdout")
	checkCmd.Flags().StringVar(&checkFlagVendor, "vendor", "", "Only include projects whose metadata names this vendor")
	checkCmd.Flags().StringVar(&checkFlagSort, "sort", "updated", "Sort by: updated, name, score")

	rootCmd.AddCommand(checkCmd)
}

// session is the wiring shared by the commands that run an assembly.
type session struct {
	cfg    *config.Config
	log    zerolog.Logger
	github *github.Client
	asm    *health.Assembler
}

func newSession(org string) (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if org != "" {
		cfg.Org = org
	}

	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}
	log := logging.New(logging.Options{Level: level, Format: cfg.Log.Format})

	gh := github.NewClient(github.Options{
		BaseURL:  cfg.GitHub.BaseURL,
		Token:    cfg.GitHub.Token,
		User:     cfg.GitHub.User,
		Password: cfg.GitHub.Password,
		Timeout:  cfg.HTTPTimeout,
	})
	travis := ci.NewTravisClient(cfg.Travis.BaseURL, &http.Client{Timeout: cfg.HTTPTimeout})

	asm := health.New(gh, ci.NewResolver(travis),
		health.WithLogger(log),
		health.WithConcurrency(cfg.Concurrent),
	)
	return &session{cfg: cfg, log: log, github: gh, asm: asm}, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	switch checkFlagSort {
	case "updated", "name", "score":
	default:
		return fmt.Errorf("unknown sort key %q (want updated, name or score)", checkFlagSort)
	}
	if checkFlagHTML && flagJSON {
		return fmt.Errorf("--html and --json are mutually exclusive")
	}

	if err := checkOutputPath(checkFlagFile); err != nil {
		return err
	}

	s, err := newSession(checkFlagOrg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	user, err := s.github.User(ctx, s.cfg.Org)
	if err != nil {
		return err
	}
	snap, err := s.asm.Run(ctx, s.cfg.Org)
	if err != nil {
		return err
	}

	projects := project.FilterByVendor(snap.Projects, checkFlagVendor)
	report := output.Report{
		User:      user.DisplayName(),
		UserURL:   user.HTMLURL,
		Org:       snap.Org,
		RunID:     snap.RunID,
		Generated: snap.Generated,
		Entries:   entries(projects, s.cfg.Weights, snap.Generated),
	}
	sortEntries(report.Entries, checkFlagSort)

	stdout := cmd.OutOrStdout()
	colorTarget := stdout
	if checkFlagFile != "" {
		colorTarget = nil
	}
	output.SetNoColor(flagNoColor || !output.ColorEnabled(colorTarget, s.cfg.Output.Color))

	err = writeReport(stdout, checkFlagFile, func(w io.Writer) error {
		switch {
		case flagJSON:
			return output.RenderJSON(w, report)
		case checkFlagHTML:
			return output.RenderHTML(w, report)
		default:
			return output.RenderText(w, report)
		}
	})
	if err != nil {
		return err
	}

	if checkFlagFile != "" {
		s.log.Info().Str("file", checkFlagFile).Int("projects", len(report.Entries)).Msg("report written")
	}
	return nil
}

func entries(projects []project.Project, w config.Weights, now time.Time) []output.Entry {
	out := make([]output.Entry, 0, len(projects))
	for _, p := range projects {
		out = append(out, output.Entry{
			Project:  p,
			Score:    scanner.ComputeHealth(p, w, now),
			Activity: p.Activity(now),
		})
	}
	return out
}

func sortEntries(es []output.Entry, sortBy string) {
	sort.SliceStable(es, func(i, j int) bool {
		switch sortBy {
		case "name":
			return strings.ToLower(es[i].Project.Name()) < strings.ToLower(es[j].Project.Name())
		case "score":
			return es[i].Score > es[j].Score
		default: // "updated"
			return es[i].Project.Updated().After(es[j].Project.Updated())
		}
	})
}

// checkOutputPath refuses an existing path that is not a regular file.
func checkOutputPath(path string) error {
	if path == "" {
		return nil
	}
	if info, err := os.Stat(path); err == nil && !info.Mode().IsRegular() {
		return fmt.Errorf("output %s exists and is not a regular file", path)
	}
	return nil
}

// writeReport renders into memory and then writes the result to stdout, or
// creates or truncates path. A failed render leaves path untouched.
func writeReport(stdout io.Writer, path string, render func(io.Writer) error) error {
	if err := checkOutputPath(path); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if path == "" {
		if _, err := buf.WriteTo(stdout); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
