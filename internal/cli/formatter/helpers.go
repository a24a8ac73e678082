package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorDim).
	Padding(1, 2)

// RenderBox frames a case summary. The title, when set, is shown in capitals
// above the content.
func RenderBox(title, content string) string {
	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// CaseAge describes how long ago a case was opened relative to now. Dates in
// the future fall back to ShortDate.
func CaseAge(opened, now time.Time) string {
	days := int(math.Floor(now.Sub(opened).Hours() / 24))
	switch {
	case days < 0:
		return ShortDate(opened)
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 14:
		return fmt.Sprintf("%dd ago", days)
	case days < 60:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dmo ago", days/30)
	}
}

// ShortDate formats t as "Jan 2, 2006".
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Jan 2, 2006")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatDuration renders a duration in whole minutes, e.g. "1h 30m".
func FormatDuration(d time.Duration) string {
	min := int(d.Round(time.Minute).Minutes())
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
