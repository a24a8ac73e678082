package formatter

import (
	"fmt"
	"strings"

	"github.com/legalaid/caseprogress/internal/timeline"
)

const branchBarWidth = 10

// FormatTimeline renders each branch as a tree of its events, main branch
// first, followed by the merge points.
func FormatTimeline(t timeline.Traffic) string {
	var b strings.Builder

	titles := make(map[string]string, t.EventCount())
	for _, br := range t.Branches() {
		for _, ev := range br.Events {
			titles[ev.ID] = ev.Title
		}
	}

	for i, br := range t.Branches() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(branchHeader(br) + "\n")
		if len(br.Events) == 0 {
			b.WriteString(Dim("   no events yet") + "\n")
			continue
		}
		items := make([]TreeItem, 0, len(br.Events))
		for j, ev := range br.Events {
			items = append(items, TreeItem{
				Title:  ev.Title,
				Level:  1,
				IsLast: j == len(br.Events)-1,
				Status: string(ev.Status),
				Detail: ShortDate(ev.Date),
				Note:   eventNote(ev, titles),
			})
		}
		b.WriteString(RenderTree(items))
	}

	if len(t.MergePoints) > 0 {
		b.WriteString("\n" + Header("Merge points") + "\n")
		for _, mp := range t.MergePoints {
			title := titles[mp.EventID]
			if title == "" {
				title = mp.EventID
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StylePurple.Render("⤶"), Bold(title), Dim("← "+strings.Join(mp.BranchIDs, ", "))))
		}
	}
	return b.String()
}

func branchHeader(br timeline.Branch) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		StyleHeader.Render(br.Title),
		Dim(br.ID),
		RenderProgress(br.Progress, branchBarWidth),
		EventStatusIndicator(br.Status))
}

// eventNote is the description plus the titles of the events it follows.
func eventNote(ev timeline.Event, titles map[string]string) string {
	note := ev.Description
	if len(ev.Dependencies) == 0 {
		return note
	}
	after := make([]string, 0, len(ev.Dependencies))
	for _, id := range ev.Dependencies {
		if t, ok := titles[id]; ok {
			after = append(after, t)
		} else {
			after = append(after, id)
		}
	}
	return note + " · after " + strings.Join(after, ", ")
}
