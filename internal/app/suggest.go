package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/healthcheck/internal/output"
	"github.com/blackwell-systems/healthcheck/internal/suggest"
)

var (
	suggestFlagOrg      string
	suggestFlagLimit    int
	suggestFlagCategory string
	suggestFlagProject  string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate ranked improvement recommendations",
	Long: `Run a check and turn the gaps it finds (missing readme, license or
metadata, unreadable metadata, no CI, dormant projects with open issues) into
recommendations ranked by impact.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestFlagOrg, "org", "", "Organisation or user to check (default from config)")
	suggestCmd.Flags().IntVar(&suggestFlagLimit, "limit", 10, "Maximum number of suggestions to show")
	suggestCmd.Flags().StringVar(&suggestFlagCategory, "category", "", "Filter by category (documentation, licensing, metadata, ci, maintenance)")
	suggestCmd.Flags().StringVar(&suggestFlagProject, "project", "", "Only show suggestions for this project")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	s, err := newSession(suggestFlagOrg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	snap, err := s.asm.Run(ctx, s.cfg.Org)
	if err != nil {
		return err
	}

	analysis := suggest.NewContext(snap.Org, snap.Projects, s.cfg.Weights, snap.Generated)
	suggestions := suggest.NewEngine().Run(analysis)

	if suggestFlagCategory != "" {
		suggestions = filterSuggestions(suggestions, func(sg suggest.Suggestion) bool { return sg.Category == suggestFlagCategory })
	}
	if suggestFlagProject != "" {
		suggestions = filterSuggestions(suggestions, func(sg suggest.Suggestion) bool { return sg.Project == suggestFlagProject })
	}
	if suggestFlagLimit > 0 && len(suggestions) > suggestFlagLimit {
		suggestions = suggestions[:suggestFlagLimit]
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	output.SetNoColor(flagNoColor || !output.ColorEnabled(out, s.cfg.Output.Color))
	renderSuggestions(out, suggestions)
	return nil
}

func filterSuggestions(suggestions []suggest.Suggestion, keep func(suggest.Suggestion) bool) []suggest.Suggestion {
	var filtered []suggest.Suggestion
	for _, s := range suggestions {
		if keep(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func renderSuggestions(w io.Writer, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, output.Section("Suggestions"))
		fmt.Fprintln(w)
		fmt.Fprintln(w, " No suggestions. Every project looks healthy!")
		return
	}

	fmt.Fprintln(w, output.Section("Improvement Suggestions"))
	fmt.Fprintln(w)

	for i, s := range suggestions {
		priorityStyled := stylePriority(s.Priority, priorityToLabel(s.Priority))

		fmt.Fprintf(w, " #%d %s %s\n", i+1, priorityStyled, output.StyleBold.Render(s.Title))
		fmt.Fprintf(w, "    Impact: %.1f  |  Category: %s\n", s.ImpactScore, s.Category)
		fmt.Fprintf(w, "    %s\n", s.Description)
		fmt.Fprintln(w)
	}
}

func priorityToLabel(priority int) string {
	switch priority {
	case suggest.PriorityCritical:
		return "[CRITICAL]"
	case suggest.PriorityHigh:
		return "[HIGH]"
	case suggest.PriorityMedium:
		return "[MEDIUM]"
	case suggest.PriorityLow:
		return "[LOW]"
	default:
		return "[UNKNOWN]"
	}
}

func stylePriority(priority int, label string) string {
	switch priority {
	case suggest.PriorityCritical, suggest.PriorityHigh:
		return output.StyleError.Render(label)
	case suggest.PriorityMedium:
		return output.StyleWarning.Render(label)
	default:
		return output.StyleMuted.Render(label)
	}
}
