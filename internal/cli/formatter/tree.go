package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// Status is an event or record status string; it picks the marker.
	Status string
	Detail string
	// Note is dimmed text printed under the item, aligned with its title.
	Note string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Completed items get a green ✔,
// in-progress items an amber ▶, blocked items a red ✖, and detail badges
// are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
		note    string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		prefix, notePrefix := "", ""
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
				notePrefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
				notePrefix += treeSpace
			} else {
				prefix += treeBranch
				notePrefix += treePipe
			}
		}

		title := item.Title
		statusPrefix := ""
		switch strings.ToLower(item.Status) {
		case "completed", "done":
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case "in_progress":
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		case "blocked":
			statusPrefix = StyleRed.Render("✖ ")
			title = StyleRed.Render(title)
		case "pending":
			statusPrefix = StyleBlue.Render("○ ")
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if item.Note != "" {
			lines[idx].note = notePrefix + "  " + Dim(item.Note)
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
		if li.note != "" {
			b.WriteString(li.note + "\n")
		}
	}

	return b.String()
}
