package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/timeline"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// EventStatusIndicator returns a colored marker such as "✔ completed".
func EventStatusIndicator(s timeline.EventStatus) string {
	switch s {
	case timeline.EventCompleted:
		return StyleGreen.Render("✔ completed")
	case timeline.EventInProgress:
		return StyleYellowBold.Render("▶ in progress")
	case timeline.EventBlocked:
		return StyleRed.Render("✖ blocked")
	default:
		return StyleBlue.Render("○ pending")
	}
}

// RecordStatusPill returns a colored status indicator for a service record.
func RecordStatusPill(s domain.RecordStatus) string {
	switch s {
	case domain.RecordCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.RecordInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.RecordPending:
		return StyleBlue.Render("○ Pending")
	case domain.RecordCancelled:
		return StyleDim.Render("⊘ Cancelled")
	default:
		return StyleDim.Render(string(s))
	}
}

// CaseStatusPill returns a colored status indicator for a case.
func CaseStatusPill(s domain.CaseStatus) string {
	if s == domain.CaseClosed {
		return StyleDim.Render("✖ Closed")
	}
	return StyleGreen.Render("● Open")
}

// CategoryBadge renders a case category in purple, e.g. "Family".
func CategoryBadge(c domain.CaseCategory) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	s := strings.ToLower(string(c))
	return StylePurple.Render(strings.ToUpper(s[:1]) + s[1:])
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
