package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/healthcheck/internal/project"
)

// ScoreBar renders a visual progress bar for a 0-100 score.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s", scoreStyle(score).Render(bar), StyleMuted.Render(fmt.Sprintf("%3.0f/100", score)))
}

func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return StyleSuccess
	case score >= 40:
		return StyleWarning
	default:
		return StyleError
	}
}

// Mark renders a present/missing indicator cell.
func Mark(ok bool) string {
	if ok {
		return StyleSuccess.Render("yes")
	}
	return StyleError.Render("---")
}

// ActivityLabel renders an activity band with its colour.
func ActivityLabel(a project.Activity) string {
	switch a {
	case project.ActivityActive:
		return StyleSuccess.Render(string(a))
	case project.ActivityStale:
		return StyleWarning.Render(string(a))
	default:
		return StyleMuted.Render(string(a))
	}
}

// Section returns a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
