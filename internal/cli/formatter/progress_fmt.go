package formatter

import (
	"fmt"
	"strings"

	"github.com/legalaid/caseprogress/internal/app"
	"github.com/legalaid/caseprogress/internal/domain"
)

const caseProgressBarWidth = 20

// FormatCaseProgress renders the progress summary and the service checklist
// for one case.
func FormatCaseProgress(view *app.CaseProgressView) string {
	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("%s  %s  %s\n",
		TruncID(view.CaseID), CategoryBadge(view.Category), CaseStatusPill(view.CaseStatus)))
	if view.ClientName != "" {
		summary.WriteString(Dim("Client  ") + view.ClientName + "\n")
	}
	summary.WriteString(fmt.Sprintf("%s %s\n", Dim("Progress"), RenderProgress(view.Progress.TotalProgress, caseProgressBarWidth)))
	summary.WriteString(Dim(fmt.Sprintf("%d service records", view.RecordCount)))
	if view.ReadyForReview {
		summary.WriteString("\n" + StyleGreen.Render("✔ Ready for review: every required service is complete"))
	}

	var b strings.Builder
	b.WriteString(RenderBox(view.CaseTitle, summary.String()))
	b.WriteString("\n\n")
	b.WriteString(FormatServiceChecklist(view.Services))

	if len(view.Skipped) > 0 {
		names := make([]string, 0, len(view.Skipped))
		for _, st := range view.Skipped {
			names = append(names, string(st))
		}
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("⚠ Skipped %d record(s): %s",
			len(view.Skipped), strings.Join(names, ", "))) + "\n")
	}
	if n := outsideCatalog(view); n > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d record(s) use services outside this category's catalog", n)) + "\n")
	}
	return b.String()
}

// FormatServiceChecklist renders catalog lines as a table, required first.
func FormatServiceChecklist(lines []app.ServiceLine) string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		kind := StyleBlue.Render("required")
		if !l.Required {
			kind = Dim("optional")
		}
		state := StyleRed.Render("○ remaining")
		switch {
		case l.Completed:
			state = StyleGreen.Render("✔ done")
		case !l.Required:
			state = Dim("–")
		}
		rows = append(rows, []string{l.Label, kind, fmt.Sprintf("%g", l.Weight), state})
	}
	return RenderTableAligned([]string{"SERVICE", "KIND", "WEIGHT", "STATUS"}, rows, map[int]bool{2: true})
}

func outsideCatalog(view *app.CaseProgressView) int {
	n := 0
	for _, d := range view.Diagnostics {
		if !d.Malformed() {
			n++
		}
	}
	return n
}

// ServiceLabels joins service type labels with commas.
func ServiceLabels(types []domain.ServiceType) string {
	if len(types) == 0 {
		return Dim("none")
	}
	labels := make([]string, 0, len(types))
	for _, st := range types {
		labels = append(labels, st.Label())
	}
	return strings.Join(labels, ", ")
}
